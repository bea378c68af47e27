package secrule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secrulelang/grammar"
	"secrulelang/parsetree"
)

func operatorNode(t *testing.T, op string) *parsetree.Node {
	t.Helper()
	n, err := grammar.Parse("SecRule ARGS " + grammar.Quote(op, '"'))
	require.NoError(t, err)
	return n.Children[1]
}

func TestOperatorDeserialize(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected Operator
	}{
		{"named", "@pm nikto sqlmap", Operator{Type: OpPm, Arg: "nikto sqlmap"}},
		{"negated", "!@within GET POST", Operator{Negated: true, Type: OpWithin, Arg: "GET POST"}},
		{"implicit rx", `^\d+$`, Operator{Type: OpRx, Arg: `^\d+$`}},
		{"negated implicit rx", "!admin", Operator{Negated: true, Type: OpRx, Arg: "admin"}},
		{"no argument", "@detectSQLi", Operator{Type: OpDetectSQLi}},
		{"empty", "", Operator{Type: OpRx}},
		{"leading space kept", "@rx  a", Operator{Type: OpRx, Arg: " a"}},
		{"quotes", `@rx "x"`, Operator{Type: OpRx, Arg: `"x"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := Deserialize[Operator](operatorNode(t, tt.src))

			require.NoError(t, err)
			assert.Equal(t, tt.expected, op)
		})
	}
}

func TestOperatorDeserializeUnknown(t *testing.T) {
	_, err := Deserialize[Operator](operatorNode(t, "@notAnOperator x"))

	require.True(t, errors.Is(err, ErrUnknownOperator))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "@notAnOperator", perr.Text)
	assert.Equal(t, parsetree.OperatorName, perr.Kind)
}

func TestOperatorDeserializeIsCaseSensitive(t *testing.T) {
	_, err := Deserialize[Operator](operatorNode(t, "@RX x"))

	assert.True(t, errors.Is(err, ErrUnknownOperator))
}

func TestOperatorSerialize(t *testing.T) {
	tests := []struct {
		op       Operator
		expected string
	}{
		{Operator{Type: OpRx, Arg: "a"}, "@rx a"},
		{Operator{Negated: true, Type: OpStreq, Arg: "POST"}, "!@streq POST"},
		{Operator{Type: OpUnconditionalMatch}, "@unconditionalMatch"},
		{Operator{Negated: true, Type: OpRx, Arg: " a"}, "!@rx  a"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.op.String())
	}
}
