package secrule

import (
	"errors"
	"fmt"

	"secrulelang/parsetree"
)

// Sentinel errors for deserialization failures. Use errors.Is to classify an error returned by Deserialize or ParseRule.
var (
	// ErrUnexpectedNode indicates an adapter was handed a parse tree node of the wrong kind.
	ErrUnexpectedNode = errors.New("unexpected parse tree node")

	// ErrMissingNode indicates a mandatory child node was absent.
	ErrMissingNode = errors.New("missing parse tree node")

	// ErrUnknownInput indicates a variable name that is not in the input vocabulary.
	ErrUnknownInput = errors.New("unknown input")

	// ErrInvalidSelector indicates a modifier and key combination that does not form a selector, e.g. !TX.
	ErrInvalidSelector = errors.New("invalid input selector")

	// ErrInvalidModifier indicates a modifier that is not one of the selector modifiers.
	ErrInvalidModifier = errors.New("invalid input modifier")

	// ErrUnknownOperator indicates an operator name that is not in the operator vocabulary.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrUnknownAction indicates an action name that is not in the action vocabulary.
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidAction indicates an action given an argument it does not take, or missing one it requires.
	ErrInvalidAction = errors.New("invalid action")
)

// ParseError is a deserialization failure of a single parse tree node.
type ParseError struct {
	Err  error              // One of the sentinel errors.
	Kind parsetree.Kind     // Kind of the offending node. For ErrMissingNode, the kind that was expected.
	Text string             // Source text for diagnostics.
	Pos  parsetree.Position // Where Text starts.
}

func (e *ParseError) Error() string {
	switch e.Err {
	case ErrUnexpectedNode:
		return fmt.Sprintf("%s %s at %s", e.Err, e.Kind, e.Pos)
	case ErrMissingNode:
		return fmt.Sprintf("%s: expected %s in %q at %s", e.Err, e.Kind, e.Text, e.Pos)
	}
	return fmt.Sprintf("%s %q at %s", e.Err, e.Text, e.Pos)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(err error, n *parsetree.Node, text string) *ParseError {
	return &ParseError{Err: err, Kind: n.Kind, Text: text, Pos: n.Pos}
}

// Component identifies one of the three children of a SecRule.
type Component int

// Components of a SecRule, in source order.
const (
	_ Component = iota
	ComponentInputs
	ComponentOperator
	ComponentActions
)

func (c Component) String() string {
	switch c {
	case ComponentInputs:
		return "variables"
	case ComponentOperator:
		return "operator"
	case ComponentActions:
		return "actions"
	}
	return fmt.Sprintf("component(%d)", int(c))
}

// RuleError is a SecRule deserialization failure attributed to one of its components. It wraps the component's own error.
type RuleError struct {
	Component Component
	Err       error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Component, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}
