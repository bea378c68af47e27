package secrule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secrulelang/grammar"
	"secrulelang/parsetree"
)

func actionsNode(t *testing.T, actions string) *parsetree.Node {
	t.Helper()
	n, err := grammar.Parse(`SecRule ARGS "@rx a" ` + grammar.Quote(actions, '"'))
	require.NoError(t, err)
	return n.Children[2]
}

func TestActionsDeserialize(t *testing.T) {
	// Arrange
	n := actionsNode(t, "id:1,phase:2,deny,t:none,msg:'Bad request',allow,allow:phase")

	// Act
	as, err := Deserialize[Actions](n)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, Actions{
		{Type: ActionID, Arg: "1", HasArg: true},
		{Type: ActionPhase, Arg: "2", HasArg: true},
		{Type: ActionDeny},
		{Type: ActionTransform, Arg: "none", HasArg: true},
		{Type: ActionMsg, Arg: "Bad request", HasArg: true, Quoted: true},
		{Type: ActionAllow},
		{Type: ActionAllow, Arg: "phase", HasArg: true},
	}, as)
}

func TestActionsDeserializeEmpty(t *testing.T) {
	as, err := Deserialize[Actions](actionsNode(t, ""))

	require.NoError(t, err)
	assert.Empty(t, as)
}

func TestActionQuotedArgUnescaped(t *testing.T) {
	as, err := Deserialize[Actions](actionsNode(t, `msg:'it\'s, here'`))

	require.NoError(t, err)
	require.Len(t, as, 1)
	assert.Equal(t, "it's, here", as[0].Arg)
	assert.True(t, as[0].Quoted)
}

func TestActionsDeserializeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
	}{
		{"unknown action", "id:1,bogus", ErrUnknownAction},
		{"case sensitive", "ID:1", ErrUnknownAction},
		{"flag with argument", "deny:1", ErrInvalidAction},
		{"missing argument", "id", ErrInvalidAction},
		{"unterminated quote", "msg:'oops", ErrInvalidAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			as, err := Deserialize[Actions](actionsNode(t, tt.src))

			assert.Nil(t, as)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
		})
	}
}

func TestActionSerialize(t *testing.T) {
	tests := []struct {
		a        Action
		expected string
	}{
		{Action{Type: ActionDeny}, "deny"},
		{Action{Type: ActionID, Arg: "1", HasArg: true}, "id:1"},
		{Action{Type: ActionMsg, Arg: "plain", HasArg: true, Quoted: true}, "msg:'plain'"},
		{Action{Type: ActionMsg, Arg: "a,b", HasArg: true}, "msg:'a,b'"},
		{Action{Type: ActionMsg, Arg: "it's", HasArg: true, Quoted: true}, `msg:'it\'s'`},
		{Action{Type: ActionMsg, Arg: "", HasArg: true}, "msg:''"},
		{Action{Type: ActionMsg, Arg: "'x", HasArg: true}, `msg:'\'x'`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.a.String())
	}
}

func TestActionsArgs(t *testing.T) {
	as := Actions{
		{Type: ActionTransform, Arg: "none", HasArg: true},
		{Type: ActionID, Arg: "1", HasArg: true},
		{Type: ActionTransform, Arg: "lowercase", HasArg: true},
	}

	assert.Equal(t, []string{"none", "lowercase"}, as.Args(ActionTransform))
	assert.Nil(t, as.Args(ActionTag))
	assert.True(t, as.Has(ActionID))
	assert.False(t, as.Has(ActionChain))
	assert.Equal(t, "t:none,id:1,t:lowercase", as.String())
}
