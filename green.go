package tombi

// GreenToken is an immutable leaf: a kind plus its exact source text
// (including any content the lexer consumed, e.g. string quotes).
type GreenToken struct {
	Kind Kind
	Text string
}

func (t *GreenToken) width() int { return len(t.Text) }

// GreenNode is an immutable interior node: a kind plus an ordered list
// of children, each either a GreenToken or another GreenNode. Green
// nodes carry no absolute position — that is the red tree's job.
type GreenNode struct {
	Kind     Kind
	Children []GreenElement
	len      int
}

// GreenElement is either a *GreenNode or a *GreenToken.
type GreenElement struct {
	Node  *GreenNode
	Token *GreenToken
}

func nodeElem(n *GreenNode) GreenElement  { return GreenElement{Node: n} }
func tokenElem(t *GreenToken) GreenElement { return GreenElement{Token: t} }

func (e GreenElement) width() int {
	if e.Node != nil {
		return e.Node.len
	}
	if e.Token != nil {
		return e.Token.width()
	}
	return 0
}

func (e GreenElement) kind() Kind {
	if e.Node != nil {
		return e.Node.Kind
	}
	return e.Token.Kind
}

// GreenBuilder assembles a green tree from a flat event stream: the
// parser calls StartNode/Token/FinishNode in the order it descends and
// ascends the grammar, and Finish returns the completed root. This is
// the builder contract of spec §4.2 ("events: start node, token, finish
// node"), grounded on Rowan-style CST construction.
type GreenBuilder struct {
	stack []*frame
}

type frame struct {
	kind     Kind
	children []GreenElement
}

func NewGreenBuilder() *GreenBuilder {
	return &GreenBuilder{}
}

// StartNode opens a new interior node of the given kind.
func (b *GreenBuilder) StartNode(kind Kind) {
	b.stack = append(b.stack, &frame{kind: kind})
}

// Token appends a leaf token to the node currently being built.
func (b *GreenBuilder) Token(kind Kind, text string) {
	top := b.current()
	top.children = append(top.children, tokenElem(&GreenToken{Kind: kind, Text: text}))
}

// FinishNode closes the innermost open node, attaching it to its parent
// (or leaving it as the completed root if the stack is now empty).
func (b *GreenBuilder) FinishNode() *GreenNode {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	n := &GreenNode{Kind: top.kind, Children: top.children}
	for _, c := range top.children {
		n.len += c.width()
	}

	if len(b.stack) > 0 {
		parent := b.current()
		parent.children = append(parent.children, nodeElem(n))
	}
	return n
}

func (b *GreenBuilder) current() *frame {
	return b.stack[len(b.stack)-1]
}

// Finish completes the build. It panics if nodes remain unclosed, which
// indicates a parser bug (mismatched Start/Finish calls), not a
// recoverable TOML-source error.
func (b *GreenBuilder) Finish(root *GreenNode) *GreenNode {
	if len(b.stack) != 0 {
		panic("tombi: GreenBuilder.Finish called with unclosed nodes")
	}
	return root
}
