package secrule

import (
	"io"
	"strconv"

	"secrulelang/grammar"
	"secrulelang/parsetree"
)

// SecRule is a complete rule directive: the variables to inspect, one operator and the actions to take.
type SecRule struct {
	Inputs   Inputs
	Operator Operator
	Actions  Actions
}

// ParseRule parses the text of a single SecRule directive.
func ParseRule(src string) (SecRule, error) {
	n, err := grammar.Parse(src)
	if err != nil {
		return SecRule{}, err
	}

	var r SecRule
	if err := r.Deserialize(n); err != nil {
		return SecRule{}, err
	}
	return r, nil
}

// NodeKind implements NodeDeserializer.
func (*SecRule) NodeKind() parsetree.Kind {
	return parsetree.Rule
}

// Deserialize implements NodeDeserializer. The first failing component is reported as a *RuleError.
func (r *SecRule) Deserialize(n *parsetree.Node) error {
	if err := claim(n, parsetree.Rule); err != nil {
		return err
	}

	c := n.Cursor()
	var out SecRule

	if err := component(c, n, ComponentInputs, &out.Inputs); err != nil {
		return err
	}
	if err := component(c, n, ComponentOperator, &out.Operator); err != nil {
		return err
	}
	if err := component(c, n, ComponentActions, &out.Actions); err != nil {
		return err
	}

	if err := expectDone(c); err != nil {
		return err
	}

	*r = out
	return nil
}

func component(c *parsetree.Cursor, parent *parsetree.Node, which Component, into NodeDeserializer) error {
	child := c.Next()
	if child == nil {
		return &RuleError{Component: which, Err: &ParseError{Err: ErrMissingNode, Kind: into.NodeKind(), Text: parent.Text, Pos: parent.Pos}}
	}
	if err := into.Deserialize(child); err != nil {
		return &RuleError{Component: which, Err: err}
	}
	return nil
}

// Serialize implements Serializer. The output is a single line:
//
//	SecRule INPUTS "OPERATOR" "ACTIONS"
//
// Variables are only quoted when they have to be, and an empty action list is left out.
func (r SecRule) Serialize(w io.Writer) error {
	inputs := Render(r.Inputs)
	if grammar.NeedsQuoting(inputs) {
		inputs = grammar.Quote(inputs, '"')
	}

	if err := writeAll(w, "SecRule ", inputs, " ", grammar.Quote(Render(r.Operator), '"')); err != nil {
		return err
	}

	if len(r.Actions) == 0 {
		return nil
	}
	return writeAll(w, " ", grammar.Quote(Render(r.Actions), '"'))
}

func (r SecRule) String() string {
	return Render(r)
}

// ID is the rule's id action.
func (r SecRule) ID() (int, bool) {
	args := r.Actions.Args(ActionID)
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	return id, err == nil
}

// Phase is the rule's phase action, 1 to 5. The aliases request, response and logging are understood.
func (r SecRule) Phase() (int, bool) {
	args := r.Actions.Args(ActionPhase)
	if len(args) == 0 {
		return 0, false
	}
	return parsePhase(args[0])
}

func parsePhase(s string) (int, bool) {
	switch s {
	case "request":
		return 2, true
	case "response":
		return 4, true
	case "logging":
		return 5, true
	}

	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 5 {
		return 0, false
	}
	return p, true
}

// IsChained reports whether the next rule is a continuation of this one.
func (r SecRule) IsChained() bool {
	return r.Actions.Has(ActionChain)
}

// Transformations are the t: arguments in order, e.g. none, lowercase.
func (r SecRule) Transformations() []string {
	return r.Actions.Args(ActionTransform)
}

// Msg is the rule's msg action.
func (r SecRule) Msg() (string, bool) {
	args := r.Actions.Args(ActionMsg)
	if len(args) == 0 {
		return "", false
	}
	return args[0], true
}

// Tags are the tag arguments in order.
func (r SecRule) Tags() []string {
	return r.Actions.Args(ActionTag)
}
