package tombi

// This file provides typed views over red nodes: thin wrappers that
// validate a node's Kind before exposing grammar-shaped accessors, the
// "typed casts" contract of spec §4.2.

// Root wraps KindRoot: the top-level sequence of tables, array-of-table
// headers, and top-level key/values.
type Root struct{ *RedNode }

func CastRoot(n *RedNode) (Root, bool) {
	if !canCast(n.Kind(), KindRoot) {
		return Root{}, false
	}
	return Root{n}, true
}

// Items returns every Table, ArrayOfTable, and KeyValue production in
// document order, skipping trivia.
func (r Root) Items() []RedElement {
	var out []RedElement
	for _, c := range r.NonTrivia() {
		if c.Node == nil {
			continue
		}
		switch c.Node.Kind() {
		case KindTable, KindArrayOfTable, KindKeyValue:
			out = append(out, c)
		}
	}
	return out
}

// Table wraps KindTable: `[a.b.c]` plus the key/values and nested
// productions following it, up to the next header or EOF.
type Table struct{ *RedNode }

func CastTable(n *RedNode) (Table, bool) {
	if !canCast(n.Kind(), KindTable) {
		return Table{}, false
	}
	return Table{n}, true
}

func (t Table) Header() (Keys, bool) {
	if kn := t.FirstChildNode(KindKeys); kn != nil {
		return Keys{kn}, true
	}
	return Keys{}, false
}

func (t Table) KeyValues() []KeyValue {
	var out []KeyValue
	for _, n := range t.ChildNodes(KindKeyValue) {
		out = append(out, KeyValue{n})
	}
	return out
}

// ArrayOfTable wraps KindArrayOfTable: `[[a.b]]`.
type ArrayOfTable struct{ *RedNode }

func CastArrayOfTable(n *RedNode) (ArrayOfTable, bool) {
	if !canCast(n.Kind(), KindArrayOfTable) {
		return ArrayOfTable{}, false
	}
	return ArrayOfTable{n}, true
}

func (a ArrayOfTable) Header() (Keys, bool) {
	if kn := a.FirstChildNode(KindKeys); kn != nil {
		return Keys{kn}, true
	}
	return Keys{}, false
}

func (a ArrayOfTable) KeyValues() []KeyValue {
	var out []KeyValue
	for _, n := range a.ChildNodes(KindKeyValue) {
		out = append(out, KeyValue{n})
	}
	return out
}

// KeyValue wraps KindKeyValue: `keys = value`.
type KeyValue struct{ *RedNode }

func CastKeyValue(n *RedNode) (KeyValue, bool) {
	if !canCast(n.Kind(), KindKeyValue) {
		return KeyValue{}, false
	}
	return KeyValue{n}, true
}

func (kv KeyValue) Keys() (Keys, bool) {
	if kn := kv.FirstChildNode(KindKeys); kn != nil {
		return Keys{kn}, true
	}
	return Keys{}, false
}

// Value returns the single value-shaped child node of kv (everything
// after the keys, skipping the '=' token and trivia).
func (kv KeyValue) Value() (RedElement, bool) {
	seenEquals := false
	for _, c := range kv.NonTrivia() {
		if c.Kind() == KindKeys {
			continue
		}
		if c.Kind() == KindEquals {
			seenEquals = true
			continue
		}
		if seenEquals {
			return c, true
		}
	}
	return RedElement{}, false
}

// Keys wraps KindKeys: one or more dotted key parts.
type Keys struct{ *RedNode }

func CastKeys(n *RedNode) (Keys, bool) {
	if !canCast(n.Kind(), KindKeys) {
		return Keys{}, false
	}
	return Keys{n}, true
}

// Parts returns each dotted segment as a KeyPart, in left-to-right
// order.
func (k Keys) Parts() []KeyPart {
	var out []KeyPart
	for _, c := range k.Children() {
		if c.Node == nil {
			continue
		}
		switch c.Node.Kind() {
		case KindBareKey:
			out = append(out, KeyPart{RedNode: c.Node, Quoted: false})
		case KindQuotedKey:
			out = append(out, KeyPart{RedNode: c.Node, Quoted: true})
		}
	}
	return out
}

// KeyPart is one segment of a (possibly dotted) key, bare or quoted.
// Grounded on the teacher's KeyPart{Text,Unquoted,IsQuoted,DotBefore,DotAfter}.
type KeyPart struct {
	*RedNode
	Quoted bool
}

// Name returns the segment's logical name: the raw text for a bare
// key, or the unescaped content for a quoted key.
func (k KeyPart) Name() string {
	// The key's own token, without the trivia the parser attaches after it.
	text := k.Text()
	if tok := firstTokenChild(k.RedNode); tok != nil {
		text = tok.Text()
	}
	if !k.Quoted {
		return text
	}
	if len(text) >= 2 && text[0] == '"' {
		v, _ := unescapeBasic(text)
		return v
	}
	return unescapeLiteral(text)
}

// Array wraps KindArray: `[ v, v, ... ]`.
type Array struct{ *RedNode }

func CastArray(n *RedNode) (Array, bool) {
	if !canCast(n.Kind(), KindArray) {
		return Array{}, false
	}
	return Array{n}, true
}

func (a Array) Values() []RedElement {
	var out []RedElement
	for _, c := range a.NonTrivia() {
		switch c.Kind() {
		case KindLBracket, KindRBracket, KindComma:
			continue
		default:
			out = append(out, c)
		}
	}
	return out
}

// InlineTable wraps KindInlineTable: `{ k = v, ... }`.
type InlineTable struct{ *RedNode }

func CastInlineTable(n *RedNode) (InlineTable, bool) {
	if !canCast(n.Kind(), KindInlineTable) {
		return InlineTable{}, false
	}
	return InlineTable{n}, true
}

func (it InlineTable) KeyValues() []KeyValue {
	var out []KeyValue
	for _, n := range it.ChildNodes(KindKeyValue) {
		out = append(out, KeyValue{n})
	}
	return out
}
