// Package parsetree holds the generic, kind-tagged tree the grammar produces and the typed model consumes.
package parsetree

import "fmt"

// Position is a location in rule source text. Line and Column are 1-based.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is one matched grammar construct.
type Node struct {
	Kind     Kind
	Text     string
	Pos      Position
	Children []*Node
}

// New creates a node with the given children.
func New(kind Kind, text string, pos Position, children ...*Node) *Node {
	return &Node{Kind: kind, Text: text, Pos: pos, Children: children}
}

// Leaf creates a node without children.
func Leaf(kind Kind, text string, pos Position) *Node {
	return &Node{Kind: kind, Text: text, Pos: pos}
}

// Cursor returns a cursor over the node's children.
func (n *Node) Cursor() *Cursor {
	return &Cursor{nodes: n.Children}
}

func (n *Node) String() string {
	return fmt.Sprintf("%s<%q>", n.Kind, n.Text)
}

// Dump renders the tree one node per line, indented by depth. Used in test failure messages.
func (n *Node) Dump() string {
	var b []byte
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		for i := 0; i < depth; i++ {
			b = append(b, "  "...)
		}
		b = append(b, n.String()...)
		b = append(b, '\n')
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(n, 0)
	return string(b)
}
