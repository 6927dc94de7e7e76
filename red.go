package tombi

// RedNode is a lazy facade over a GreenNode: it carries the absolute
// byte offset of its own start and a parent pointer, computing child
// positions on demand instead of storing them (spec §4.2, §9 "Green/red
// tree" design note). Red nodes are cheap to create and thrown away
// freely; the green tree underneath is the only thing that is shared.
type RedNode struct {
	green  *GreenNode
	parent *RedNode
	offset int // absolute byte offset of this node's first character
}

// RedToken is the token-level counterpart of RedNode.
type RedToken struct {
	green  *GreenToken
	parent *RedNode
	offset int
}

// NewRoot builds the red facade for a freshly parsed green tree.
func NewRoot(green *GreenNode) *RedNode {
	return &RedNode{green: green, offset: 0}
}

func (n *RedNode) Kind() Kind      { return n.green.Kind }
func (n *RedNode) Green() *GreenNode { return n.green }
func (n *RedNode) Parent() *RedNode { return n.parent }
func (n *RedNode) StartOffset() int { return n.offset }
func (n *RedNode) EndOffset() int   { return n.offset + n.green.len }
func (n *RedNode) Text() string     { return textOf(GreenElement{Node: n.green}) }

func textOf(e GreenElement) string {
	if e.Token != nil {
		return e.Token.Text
	}
	var sb []byte
	for _, c := range e.Node.Children {
		sb = append(sb, textOf(c)...)
	}
	return string(sb)
}

// Children returns the direct child elements as red facades, computing
// each one's absolute offset from the running total of prior siblings'
// widths.
func (n *RedNode) Children() []RedElement {
	out := make([]RedElement, 0, len(n.green.Children))
	off := n.offset
	for _, c := range n.green.Children {
		if c.Node != nil {
			out = append(out, RedElement{Node: &RedNode{green: c.Node, parent: n, offset: off}})
		} else {
			out = append(out, RedElement{Token: &RedToken{green: c.Token, parent: n, offset: off}})
		}
		off += c.width()
	}
	return out
}

// ChildNodes filters Children to interior nodes matching kind, in
// document order.
func (n *RedNode) ChildNodes(kind Kind) []*RedNode {
	var out []*RedNode
	for _, c := range n.Children() {
		if c.Node != nil && c.Node.Kind() == kind {
			out = append(out, c.Node)
		}
	}
	return out
}

// FirstChildNode returns the first direct child node of the given kind,
// or nil.
func (n *RedNode) FirstChildNode(kind Kind) *RedNode {
	for _, c := range n.Children() {
		if c.Node != nil && c.Node.Kind() == kind {
			return c.Node
		}
	}
	return nil
}

// FirstChildToken returns the first direct child token of the given
// kind, or nil. Trivia tokens are included; callers filter as needed.
func (n *RedNode) FirstChildToken(kind Kind) *RedToken {
	for _, c := range n.Children() {
		if c.Token != nil && c.Token.Kind() == kind {
			return c.Token
		}
	}
	return nil
}

// NonTrivia returns Children with whitespace/newline/comment elements
// removed, the view typed AST accessors in ast.go build on.
func (n *RedNode) NonTrivia() []RedElement {
	all := n.Children()
	out := all[:0:0]
	for _, c := range all {
		if c.Kind().isTrivia() {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (t *RedToken) Kind() Kind  { return t.green.Kind }
func (t *RedToken) Text() string { return t.green.Text }
func (t *RedToken) StartOffset() int { return t.offset }
func (t *RedToken) EndOffset() int   { return t.offset + t.green.width() }

// RedElement is either a *RedNode or a *RedToken, mirroring GreenElement.
type RedElement struct {
	Node  *RedNode
	Token *RedToken
}

func (e RedElement) Kind() Kind {
	if e.Node != nil {
		return e.Node.Kind()
	}
	return e.Token.Kind()
}

func (e RedElement) StartOffset() int {
	if e.Node != nil {
		return e.Node.StartOffset()
	}
	return e.Token.StartOffset()
}

// PositionAt computes the UTF-16 line/column Position of byte offset
// off within source, by scanning from the start. Callers that need many
// positions from the same source should cache this; the red tree itself
// stores only byte offsets (spec §9 "Green/red tree" design note), so
// diagnostics convert to line/column lazily, once, at report time.
func PositionAt(source string, off int) Position {
	lx := newLexer(source)
	for lx.pos < off && !lx.atEnd() {
		lx.advance()
	}
	return Position{Line: lx.line, Col: lx.col}
}

// RangeIn returns n's Range within source.
func (n *RedNode) RangeIn(source string) Range {
	return Range{Start: PositionAt(source, n.StartOffset()), End: PositionAt(source, n.EndOffset())}
}

// RangeIn returns t's Range within source.
func (t *RedToken) RangeIn(source string) Range {
	return Range{Start: PositionAt(source, t.StartOffset()), End: PositionAt(source, t.EndOffset())}
}

// RangeIn returns e's Range within source.
func (e RedElement) RangeIn(source string) Range {
	if e.Node != nil {
		return e.Node.RangeIn(source)
	}
	return e.Token.RangeIn(source)
}

// can_cast/cast pattern: Cast reports whether n's kind matches one of
// wanted, allowing typed AST wrappers to validate before constructing
// themselves (spec §4.2 "typed casts").
func canCast(k Kind, wanted ...Kind) bool {
	for _, w := range wanted {
		if k == w {
			return true
		}
	}
	return false
}
