package secrule

import (
	"io"
	"strings"

	"secrulelang/parsetree"
)

// NodeDeserializer is implemented by model types that are built from exactly one kind of parse tree node.
// Deserialize is all-or-nothing: on error the receiver is left unchanged.
type NodeDeserializer interface {
	NodeKind() parsetree.Kind
	Deserialize(n *parsetree.Node) error
}

// Serializer renders a model value as canonical SecRule-lang text.
type Serializer interface {
	Serialize(w io.Writer) error
}

// Deserialize builds a T from a parse tree node.
func Deserialize[T any, PT interface {
	*T
	NodeDeserializer
}](n *parsetree.Node) (T, error) {
	var v T
	if err := PT(&v).Deserialize(n); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Render serializes a value to a string.
func Render(s Serializer) string {
	var b strings.Builder
	s.Serialize(&b) // strings.Builder never fails
	return b.String()
}

// claim checks that the adapter for kind was invoked on a node of that kind.
func claim(n *parsetree.Node, kind parsetree.Kind) error {
	if n == nil {
		return &ParseError{Err: ErrMissingNode, Kind: kind}
	}
	if n.Kind != kind {
		return newParseError(ErrUnexpectedNode, n, n.Text)
	}
	return nil
}

// expectDone fails if a node has children its adapter did not consume.
func expectDone(c *parsetree.Cursor) error {
	if n := c.Peek(); n != nil {
		return newParseError(ErrUnexpectedNode, n, n.Text)
	}
	return nil
}

// writeAll writes strings in order, stopping at the first error.
func writeAll(w io.Writer, ss ...string) error {
	for _, s := range ss {
		if s == "" {
			continue
		}
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}
