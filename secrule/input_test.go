package secrule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secrulelang/grammar"
	"secrulelang/parsetree"
)

// inputsNode parses a rule with the given variables and returns its inputs node.
func inputsNode(t *testing.T, inputs string) *parsetree.Node {
	t.Helper()
	n, err := grammar.Parse("SecRule " + inputs + ` "@rx x"`)
	require.NoError(t, err)
	return n.Children[0]
}

func TestInputDeserialize(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected Input
	}{
		{"plain", "ARGS", Input{Name: InputArgs}},
		{"include", "ARGS:foo", Input{Name: InputArgs, Selector: IncludeSelector("foo")}},
		{"exclude", "!REQUEST_HEADERS:X-Forwarded-For", Input{Name: InputRequestHeaders, Selector: ExcludeSelector("X-Forwarded-For")}},
		{"count", "&TX:anomaly_score", Input{Name: InputTx, Selector: CountSelector("anomaly_score")}},
		{"count all", "&TX", Input{Name: InputTx, Selector: CountAllSelector()}},
		{"regex key", "ARGS:/^id_/", Input{Name: InputArgs, Selector: IncludeSelector("/^id_/")}},
		{"quoted key", `"REQUEST_COOKIES:'session id'"`, Input{Name: InputRequestCookies, Selector: IncludeSelector("'session id'")}},
		{"xpath", "XML:/*/@id", Input{Name: InputXML, Selector: IncludeSelector("/*/@id")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			n := inputsNode(t, tt.src)

			// Act
			ins, err := Deserialize[Inputs](n)

			// Assert
			require.NoError(t, err)
			require.Len(t, ins, 1)
			assert.Equal(t, tt.expected, ins[0])
		})
	}
}

func TestInputDeserializeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
		text string
	}{
		{"unknown input", "NOT_A_REAL_INPUT", ErrUnknownInput, "NOT_A_REAL_INPUT"},
		{"lowercase input", "args", ErrUnknownInput, "args"},
		{"exclude without key", "!TX", ErrInvalidSelector, "!TX"},
		{"double modifier", "!&ARGS:foo", ErrInvalidModifier, "!&ARGS:foo"},
		{"second input fails", "ARGS|!TX", ErrInvalidSelector, "!TX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			n := inputsNode(t, tt.src)

			// Act
			ins, err := Deserialize[Inputs](n)

			// Assert
			assert.Nil(t, ins)
			require.True(t, errors.Is(err, tt.err), "got %v", err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.text, perr.Text)
		})
	}
}

func TestInputInvalidSelectorPosition(t *testing.T) {
	n := inputsNode(t, "ARGS|!TX")

	_, err := Deserialize[Inputs](n)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, parsetree.Input, perr.Kind)
	assert.Equal(t, parsetree.Position{Line: 1, Column: 14, Offset: 13}, perr.Pos)
}

func TestInputDeserializeWrongKind(t *testing.T) {
	var in Input
	err := in.Deserialize(parsetree.Leaf(parsetree.Operator, "@rx x", parsetree.Position{Line: 1, Column: 1}))

	assert.True(t, errors.Is(err, ErrUnexpectedNode))
	assert.Equal(t, Input{}, in)
}

func TestInputDeserializeMissingName(t *testing.T) {
	pos := parsetree.Position{Line: 1, Column: 1}
	n := parsetree.New(parsetree.Input, "!", pos, parsetree.Leaf(parsetree.InputModifier, "!", pos))

	_, err := Deserialize[Input](n)

	assert.True(t, errors.Is(err, ErrMissingNode))
}

func TestInputDeserializeLeftoverChild(t *testing.T) {
	pos := parsetree.Position{Line: 1, Column: 1}
	n := parsetree.New(parsetree.Input, "ARGS", pos,
		parsetree.Leaf(parsetree.InputName, "ARGS", pos),
		parsetree.Leaf(parsetree.InputName, "TX", pos),
	)

	_, err := Deserialize[Input](n)

	assert.True(t, errors.Is(err, ErrUnexpectedNode))
}

func TestInputSerialize(t *testing.T) {
	tests := []struct {
		in       Input
		expected string
	}{
		{Input{Name: InputArgs}, "ARGS"},
		{Input{Name: InputArgs, Selector: IncludeSelector("foo")}, "ARGS:foo"},
		{Input{Name: InputRequestHeaders, Selector: ExcludeSelector("X-Forwarded-For")}, "!REQUEST_HEADERS:X-Forwarded-For"},
		{Input{Name: InputTx, Selector: CountSelector("score")}, "&TX:score"},
		{Input{Name: InputTx, Selector: CountAllSelector()}, "&TX"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.in.String())
	}
}

func TestInputsRoundTrip(t *testing.T) {
	// Arrange
	n := inputsNode(t, "ARGS_GET|&FILES")

	// Act
	ins, err := Deserialize[Inputs](n)
	require.NoError(t, err)
	again, err := Deserialize[Inputs](inputsNode(t, ins.String()))
	require.NoError(t, err)

	// Assert
	assert.Equal(t, Inputs{{Name: InputArgsGet}, {Name: InputFiles, Selector: CountAllSelector()}}, ins)
	assert.Equal(t, "ARGS_GET|&FILES", ins.String())
	assert.Equal(t, ins, again)
}
