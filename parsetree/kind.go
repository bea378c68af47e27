package parsetree

import "fmt"

// Kind tags a parse tree node with the grammar construct it was matched by.
type Kind int

// Kinds produced by the SecRule-lang grammar.
// Ensure this is in sync with kindNames.
const (
	_ Kind = iota
	Rule
	Inputs
	Input
	InputModifier
	InputName
	InputSelector
	Operator
	OperatorNegation
	OperatorName
	OperatorArg
	Actions
	Action
	ActionName
	ActionArg
	_lastKind
)

var kindNames = [...]string{
	Rule:             "rule",
	Inputs:           "inputs",
	Input:            "input",
	InputModifier:    "input_modifier",
	InputName:        "input_name",
	InputSelector:    "input_selector",
	Operator:         "operator",
	OperatorNegation: "operator_negation",
	OperatorName:     "operator_name",
	OperatorArg:      "operator_arg",
	Actions:          "actions",
	Action:           "action",
	ActionName:       "action_name",
	ActionArg:        "action_arg",
}

func (k Kind) String() string {
	if k <= 0 || k >= _lastKind {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}
