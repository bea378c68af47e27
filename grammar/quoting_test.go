package grammar

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		quote    byte
		expected string
	}{
		{"plain", `abc`, '"', `abc`},
		{"quote", `say "hi"`, '"', `say \"hi\"`},
		{"other quote untouched", `it's`, '"', `it's`},
		{"single quote", `it's`, '\'', `it\'s`},
		{"regex escape kept", `^\d+$`, '"', `^\d+$`},
		{"trailing backslash", `a\`, '"', `a\\`},
		{"double backslash", `a\\b`, '"', `a\\\b`},
		{"backslash before quote", `a\"`, '"', `a\\\"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Escape(tt.in, tt.quote))
			assert.Equal(t, tt.in, Unescape(tt.expected, tt.quote))
		})
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"@rx \"x\""`, Quote(`@rx "x"`, '"'))
	assert.Equal(t, `'it\'s'`, Quote(`it's`, '\''))
}

func TestNeedsQuoting(t *testing.T) {
	assert.True(t, NeedsQuoting(""))
	assert.True(t, NeedsQuoting("REQUEST_HEADERS:'User Agent'"))
	assert.True(t, NeedsQuoting(`"ARGS`))
	assert.False(t, NeedsQuoting("ARGS|!ARGS:foo"))
}

func TestActionArgNeedsQuoting(t *testing.T) {
	tests := []struct {
		in       string
		expected bool
	}{
		{"", true},
		{"403", false},
		{"a,b", true},
		{" lead", true},
		{"trail ", true},
		{"Bad request", false},
		{"'quoted'", true},
		{"'unterminated", true},
		{`it's`, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ActionArgNeedsQuoting(tt.in), "%q", tt.in)
	}
}

func TestUnquoteActionArg(t *testing.T) {
	arg, quoted := UnquoteActionArg(`'it\'s'`)
	assert.True(t, quoted)
	assert.Equal(t, "it's", arg)

	arg, quoted = UnquoteActionArg("'unterminated")
	assert.False(t, quoted)
	assert.Equal(t, "'unterminated", arg)

	arg, quoted = UnquoteActionArg("403")
	assert.False(t, quoted)
	assert.Equal(t, "403", arg)
}

// Property-based test: unescaping always undoes escaping
func TestEscape_PropertyInverse(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	str := gen.RegexMatch(`[ab\\"' d$]*`)

	properties.Property("double quote escaping round-trips", prop.ForAll(
		func(s string) bool {
			return Unescape(Escape(s, '"'), '"') == s
		},
		str,
	))

	properties.Property("single quote escaping round-trips", prop.ForAll(
		func(s string) bool {
			return Unescape(Escape(s, '\''), '\'') == s
		},
		str,
	))

	properties.Property("quoted args re-split to the same value", prop.ForAll(
		func(s string) bool {
			arg, quote, rest := nextArg(Quote(s, '"') + " tail")
			return arg == s && quote == '"' && rest == " tail"
		},
		str,
	))

	properties.TestingRun(t)
}
