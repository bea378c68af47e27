package secrule

import (
	"errors"
	"io"

	"secrulelang/parsetree"
)

// Input is one variable reference of a rule, e.g. !REQUEST_HEADERS:User-Agent.
// Whether a selector makes sense for the input type is left to package validate.
type Input struct {
	Name     InputType
	Selector Selector
}

// NodeKind implements NodeDeserializer.
func (*Input) NodeKind() parsetree.Kind {
	return parsetree.Input
}

// Deserialize implements NodeDeserializer.
func (in *Input) Deserialize(n *parsetree.Node) error {
	if err := claim(n, parsetree.Input); err != nil {
		return err
	}

	c := n.Cursor()

	var modifier *string
	if m := c.NextIf(parsetree.InputModifier); m != nil {
		modifier = &m.Text
	}

	name := c.NextIf(parsetree.InputName)
	if name == nil {
		return &ParseError{Err: ErrMissingNode, Kind: parsetree.InputName, Text: n.Text, Pos: n.Pos}
	}

	var key *string
	if k := c.NextIf(parsetree.InputSelector); k != nil {
		key = &k.Text
	}

	if err := expectDone(c); err != nil {
		return err
	}

	t, ok := InputTypeFromName(name.Text)
	if !ok {
		return newParseError(ErrUnknownInput, name, name.Text)
	}

	sel, err := SelectorFromParts(modifier, key, n.Text)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Kind, perr.Pos = n.Kind, n.Pos
		}
		return err
	}

	*in = Input{Name: t, Selector: sel}
	return nil
}

// Serialize implements Serializer.
func (in Input) Serialize(w io.Writer) error {
	key, hasKey := in.Selector.Arg()
	if !hasKey {
		return writeAll(w, in.Selector.Prefix(), in.Name.Name())
	}
	return writeAll(w, in.Selector.Prefix(), in.Name.Name(), ":", key)
}

func (in Input) String() string {
	return Render(in)
}

// Inputs is the ordered variable list of a rule.
type Inputs []Input

// NodeKind implements NodeDeserializer.
func (*Inputs) NodeKind() parsetree.Kind {
	return parsetree.Inputs
}

// Deserialize implements NodeDeserializer.
func (ins *Inputs) Deserialize(n *parsetree.Node) error {
	if err := claim(n, parsetree.Inputs); err != nil {
		return err
	}

	out := make(Inputs, 0, len(n.Children))
	for _, child := range n.Children {
		var in Input
		if err := in.Deserialize(child); err != nil {
			return err
		}
		out = append(out, in)
	}

	if len(out) == 0 {
		return &ParseError{Err: ErrMissingNode, Kind: parsetree.Input, Text: n.Text, Pos: n.Pos}
	}

	*ins = out
	return nil
}

// Serialize implements Serializer.
func (ins Inputs) Serialize(w io.Writer) error {
	for i, in := range ins {
		if i > 0 {
			if _, err := io.WriteString(w, "|"); err != nil {
				return err
			}
		}
		if err := in.Serialize(w); err != nil {
			return err
		}
	}
	return nil
}

func (ins Inputs) String() string {
	return Render(ins)
}
