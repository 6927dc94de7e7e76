package tombi

import (
	"fmt"
	"strconv"
)

// This file builds small green-tree fragments programmatically, for
// callers that synthesize or rewrite TOML without going through the
// parser; no package in this module calls them. Grounded on the teacher's
// mutate.go constructors (NewString/NewInteger/NewFloat/NewBool/
// NewKeyValue/NewTable), rebuilt to emit GreenNode/GreenToken values
// instead of the old flat AST structs.

func leaf(kind Kind, text string) *GreenNode {
	return &GreenNode{Kind: kind, Children: []GreenElement{tokenElem(&GreenToken{Kind: kind, Text: text})}, len: len(text)}
}

func wrap(kind Kind, inner *GreenNode) *GreenNode {
	n := &GreenNode{Kind: kind, Children: []GreenElement{nodeElem(inner)}}
	n.len = inner.len
	return n
}

// NewStringValue builds a StringValue node holding a quoted basic
// string literal for s.
func NewStringValue(s string) *GreenNode {
	tok := escapeBasicString(s)
	return wrap(KindStringValue, leaf(KindBasicStringTok, tok))
}

// NewIntegerValue builds an IntegerValue node for n in base 10.
func NewIntegerValue(n int64) *GreenNode {
	return wrap(KindIntegerValue, leaf(KindIntegerDecTok, strconv.FormatInt(n, 10)))
}

// NewFloatValue builds a FloatValue node for f, using Go's shortest
// round-tripping decimal representation.
func NewFloatValue(f float64) *GreenNode {
	text := strconv.FormatFloat(f, 'g', -1, 64)
	return wrap(KindFloatValue, leaf(KindFloatTok, text))
}

// NewBooleanValue builds a Boolean node.
func NewBooleanValue(b bool) *GreenNode {
	text := "false"
	if b {
		text = "true"
	}
	return wrap(KindBoolean, leaf(KindBooleanTok, text))
}

// NewKeyPart builds a single Keys segment for name, quoting it only if
// it cannot be written as a bare key.
func NewKeyPart(name string) *GreenNode {
	if isBareKeyStr(name) {
		return leaf(KindBareKeyTok, name)
	}
	return wrap(KindQuotedKey, leaf(KindBasicStringTok, escapeBasicString(name)))
}

// NewKeys builds a dotted Keys node from path segments, inserting '.'
// tokens between them.
func NewKeys(path []string) *GreenNode {
	n := &GreenNode{Kind: KindKeys}
	for i, part := range path {
		if i > 0 {
			n.Children = append(n.Children, tokenElem(&GreenToken{Kind: KindDot, Text: "."}))
			n.len++
		}
		seg := NewKeyPart(part)
		wrapped := seg
		if seg.Kind != KindBareKeyTok {
			wrapped = seg
		} else {
			wrapped = wrap(KindBareKey, seg)
		}
		n.Children = append(n.Children, nodeElem(wrapped))
		n.len += wrapped.len
	}
	return n
}

// NewKeyValue builds `path = value`, with single spaces around '='
// matching the teacher's default formatting.
func NewKeyValue(path []string, value *GreenNode) *GreenNode {
	n := &GreenNode{Kind: KindKeyValue}
	keys := NewKeys(path)
	n.Children = append(n.Children,
		nodeElem(keys),
		tokenElem(&GreenToken{Kind: KindWhitespace, Text: " "}),
		tokenElem(&GreenToken{Kind: KindEquals, Text: "="}),
		tokenElem(&GreenToken{Kind: KindWhitespace, Text: " "}),
		nodeElem(value),
	)
	for _, c := range n.Children {
		n.len += c.width()
	}
	return n
}

// NewTableHeader builds a `[path]\n` Table node with no body, used as
// an insertion point that the caller then appends KeyValue children to.
func NewTableHeader(path []string) *GreenNode {
	n := &GreenNode{Kind: KindTable}
	n.Children = append(n.Children,
		tokenElem(&GreenToken{Kind: KindLBracket, Text: "["}),
		nodeElem(NewKeys(path)),
		tokenElem(&GreenToken{Kind: KindRBracket, Text: "]"}),
		tokenElem(&GreenToken{Kind: KindNewline, Text: "\n"}),
	)
	for _, c := range n.Children {
		n.len += c.width()
	}
	return n
}

// AppendChild returns a new GreenNode equal to n with child appended —
// green nodes are immutable, so edits always produce a new node rather
// than mutating in place (spec §4.2).
func AppendChild(n *GreenNode, child GreenElement) *GreenNode {
	children := make([]GreenElement, len(n.Children)+1)
	copy(children, n.Children)
	children[len(n.Children)] = child
	out := &GreenNode{Kind: n.Kind, Children: children}
	for _, c := range children {
		out.len += c.width()
	}
	return out
}

// ReplaceChild returns a new GreenNode equal to n with the child at idx
// replaced.
func ReplaceChild(n *GreenNode, idx int, child GreenElement) (*GreenNode, error) {
	if idx < 0 || idx >= len(n.Children) {
		return nil, fmt.Errorf("tombi: ReplaceChild index %d out of range [0,%d)", idx, len(n.Children))
	}
	children := make([]GreenElement, len(n.Children))
	copy(children, n.Children)
	children[idx] = child
	out := &GreenNode{Kind: n.Kind, Children: children}
	for _, c := range children {
		out.len += c.width()
	}
	return out, nil
}
