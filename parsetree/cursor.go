package parsetree

// Cursor walks a node's children in grammar order. Every child is consumed at most once.
type Cursor struct {
	nodes []*Node
	pos   int
}

// Peek returns the next child without consuming it, or nil when there are no more children.
func (c *Cursor) Peek() *Node {
	if c.pos >= len(c.nodes) {
		return nil
	}
	return c.nodes[c.pos]
}

// Next consumes and returns the next child, or nil when there are no more children.
func (c *Cursor) Next() *Node {
	n := c.Peek()
	if n != nil {
		c.pos++
	}
	return n
}

// NextIf consumes the next child only if it has the given kind.
func (c *Cursor) NextIf(kind Kind) *Node {
	n := c.Peek()
	if n == nil || n.Kind != kind {
		return nil
	}
	c.pos++
	return n
}

// Done reports whether all children were consumed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.nodes)
}

// Remaining is the number of children not yet consumed.
func (c *Cursor) Remaining() int {
	return len(c.nodes) - c.pos
}
