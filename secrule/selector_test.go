package secrule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func TestSelectorFromParts(t *testing.T) {
	tests := []struct {
		name     string
		modifier *string
		key      *string
		expected Selector
		err      error
	}{
		{"include", nil, ptr("foo"), IncludeSelector("foo"), nil},
		{"none", nil, nil, Selector{}, nil},
		{"exclude", ptr("!"), ptr("foo"), ExcludeSelector("foo"), nil},
		{"exclude without key", ptr("!"), nil, Selector{}, ErrInvalidSelector},
		{"count", ptr("&"), ptr("foo"), CountSelector("foo"), nil},
		{"count all", ptr("&"), nil, CountAllSelector(), nil},
		{"unknown modifier", ptr("!&"), ptr("foo"), Selector{}, ErrInvalidModifier},
		{"unknown modifier without key", ptr("?"), nil, Selector{}, ErrInvalidModifier},
		{"explicit include modifier", ptr(""), ptr("foo"), Selector{}, ErrInvalidModifier},
		{"empty key", nil, ptr(""), Selector{}, ErrInvalidSelector},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			s, err := SelectorFromParts(tt.modifier, tt.key, "TEXT")

			// Assert
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
				var perr *ParseError
				require.True(t, errors.As(err, &perr))
				assert.Equal(t, "TEXT", perr.Text)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestSelectorFromPartsErrorCarriesText(t *testing.T) {
	_, err := SelectorFromParts(ptr("!"), nil, "!TX")

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "!TX", perr.Text)
}

func TestSelectorAccessors(t *testing.T) {
	tests := []struct {
		s       Selector
		variant SelectorVariant
		arg     string
		hasArg  bool
		typ     SelectorType
		hasType bool
		prefix  string
	}{
		{Selector{}, SelectorNone, "", false, 0, false, ""},
		{IncludeSelector("a"), SelectorInclude, "a", true, SelectorTypeInclude, true, ""},
		{ExcludeSelector("a"), SelectorExclude, "a", true, SelectorTypeExclude, true, "!"},
		{CountSelector("a"), SelectorCount, "a", true, SelectorTypeCount, true, "&"},
		{CountAllSelector(), SelectorCountAll, "", false, SelectorTypeCount, true, "&"},
	}

	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tt.variant, tt.s.Variant())

			arg, ok := tt.s.Arg()
			assert.Equal(tt.arg, arg)
			assert.Equal(tt.hasArg, ok)

			typ, ok := tt.s.SelectorType()
			assert.Equal(tt.typ, typ)
			assert.Equal(tt.hasType, ok)

			assert.Equal(tt.prefix, tt.s.Prefix())
		})
	}
}

func TestKeyedSelectorRequiresKey(t *testing.T) {
	assert.Panics(t, func() { ExcludeSelector("") })
	assert.Panics(t, func() { CountSelector("") })
	assert.Panics(t, func() { IncludeSelector("") })
}

func TestSelectorString(t *testing.T) {
	assert.Equal(t, "exclude(X-Forwarded-For)", ExcludeSelector("X-Forwarded-For").String())
	assert.Equal(t, "count_all", CountAllSelector().String())
	assert.Equal(t, "none", Selector{}.String())
}
