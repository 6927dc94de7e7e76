package doctree

import (
	tombi "github.com/maurice/tombi"
)

// Document is the result of building a document tree from a parsed
// CST: the merged root table plus every diagnostic raised along the
// way. Construction never aborts on a conflict — it records the
// diagnostic and keeps descending, matching spec §4.4's "errors are
// collected, not fatal".
type Document struct {
	Root        *Table
	Diagnostics []*Diagnostic
}

type builder struct {
	root   *Table
	source string
	diags  []*Diagnostic
}

// Build performs the single descent over a parsed tombi CST that
// applies TOML's header/dotted-key/array-of-tables merge semantics,
// per spec §4.4. Grounded on the teacher's validate.go top-level
// validate(doc) loop, generalized from "record a conflict message" to
// "build and return a merged tree plus diagnostics".
func Build(root *tombi.RedNode) *Document {
	b := &builder{root: newTable(KindRoot, tombi.Range{}), source: root.Text()}
	rootAst, ok := tombi.CastRoot(root)
	if !ok {
		return &Document{Root: b.root}
	}

	current := b.root
	for _, item := range rootAst.Items() {
		switch item.Kind() {
		case tombi.KindTable:
			table, _ := tombi.CastTable(item.Node)
			current = b.enterTableHeader(table)
		case tombi.KindArrayOfTable:
			aot, _ := tombi.CastArrayOfTable(item.Node)
			current = b.enterArrayOfTableHeader(aot)
		case tombi.KindKeyValue:
			kv, _ := tombi.CastKeyValue(item.Node)
			b.assignKeyValue(current, nil, kv)
		}
	}
	return &Document{Root: b.root, Diagnostics: b.diags}
}

func (b *builder) enterTableHeader(table tombi.Table) *Table {
	header, ok := table.Header()
	if !ok {
		return b.root
	}
	names := partNames(header)
	r := table.RangeIn(b.source)
	target := b.resolveTarget(b.root, names, KindTable, r)
	for _, kv := range table.KeyValues() {
		b.assignKeyValue(target, nil, kv)
	}
	return target
}

func (b *builder) enterArrayOfTableHeader(aot tombi.ArrayOfTable) *Table {
	header, ok := aot.Header()
	if !ok {
		return b.root
	}
	names := partNames(header)
	r := aot.RangeIn(b.source)
	target := b.resolveArrayTarget(names, r)
	for _, kv := range aot.KeyValues() {
		b.assignKeyValue(target, nil, kv)
	}
	return target
}

// resolveTarget walks parts from node, creating ParentTable entries for
// every segment but the last (ParentKey entries when kind is ParentKey,
// i.e. for a dotted key's prefix), and creating/merging the last as
// kind. Array-of-tables segments are followed into their last element,
// per TOML's "a dotted reference into an array of tables means its last
// table".
func (b *builder) resolveTarget(node *Table, parts []string, kind TableKind, r tombi.Range) *Table {
	for i, part := range parts {
		last := i == len(parts)-1
		segKind := KindParentTable
		if last || kind == KindParentKey {
			segKind = kind
		}
		node = b.stepInto(node, part, segKind, parts[:i+1], r)
	}
	return node
}

func (b *builder) resolveArrayTarget(parts []string, r tombi.Range) *Table {
	if len(parts) == 0 {
		return b.root
	}
	node := b.resolveTarget(b.root, parts[:len(parts)-1], KindParentTable, r)
	last := parts[len(parts)-1]

	existing, ok := node.Get(last)
	var arr []Value
	if ok {
		if existing.Kind != ValueArray {
			b.diags = append(b.diags, newConflict(parts, r))
		} else {
			arr = existing.Array
		}
	}
	newTbl := newTable(KindTable, r)
	arr = append(arr, Value{Kind: ValueTable, Table: newTbl, Range: r})
	node.set(last, Value{Kind: ValueArray, Array: arr, Range: r}, KindParentKey)
	return newTbl
}

func (b *builder) stepInto(node *Table, part string, kind TableKind, path []string, r tombi.Range) *Table {
	existing, ok := node.Get(part)
	if !ok {
		newTbl := newTable(kind, r)
		node.set(part, Value{Kind: ValueTable, Table: newTbl, Range: r}, kind)
		return newTbl
	}

	if existing.Kind == ValueArray && len(existing.Array) > 0 {
		last := existing.Array[len(existing.Array)-1]
		if last.Kind == ValueTable {
			return last.Table
		}
	}

	if existing.Kind != ValueTable {
		b.diags = append(b.diags, newConflict(path, r))
		return newTable(kind, r)
	}

	existingKind, _ := node.kindOf(part)
	if !mergeAllowed(existingKind, kind) && existingKind != kind {
		b.diags = append(b.diags, newConflict(path, r))
	} else if kind == KindTable || kind == KindInlineTable {
		node.set(part, existing, kind)
	}
	return existing.Table
}

// assignKeyValue resolves kv's (possibly dotted) key against target and
// stores its value, reporting a DuplicateKey diagnostic if the final
// segment already holds a leaf value.
func (b *builder) assignKeyValue(target *Table, prefix []string, kv tombi.KeyValue) {
	keys, ok := kv.Keys()
	if !ok {
		return
	}
	r := kv.RangeIn(b.source)
	parts := partNames(keys)
	fullPath := append(append([]string{}, prefix...), parts...)

	node := b.resolveTarget(target, parts[:len(parts)-1], KindParentKey, r)
	last := parts[len(parts)-1]

	if _, exists := node.Get(last); exists {
		b.diags = append(b.diags, newDuplicateKey(fullPath, r))
		return
	}

	valElem, ok := kv.Value()
	if !ok {
		node.set(last, Value{Kind: ValueIncomplete, Range: r}, KindKeyValue)
		b.diags = append(b.diags, newIncomplete(fullPath, r))
		return
	}

	v := b.buildValue(valElem, fullPath)
	valKind := KindKeyValue
	if v.Kind == ValueTable {
		valKind = KindInlineTable
	}
	node.set(last, v, valKind)
}

func (b *builder) buildValue(elem tombi.RedElement, path []string) Value {
	if elem.Node == nil {
		return Value{Kind: ValueIncomplete}
	}
	n := elem.Node
	r := elem.RangeIn(b.source)
	// lit is the value's own token text, without the trivia the parser
	// attaches after it.
	lit := n.Text()
	for _, c := range n.Children() {
		if c.Token != nil {
			lit = c.Token.Text()
			break
		}
	}
	switch n.Kind() {
	case tombi.KindStringValue:
		return Value{Kind: ValueString, Str: tombi.DecodeString(n), Text: n.Text(), Range: r}
	case tombi.KindIntegerValue:
		return Value{Kind: ValueInteger, Int: tombi.DecodeInteger(n), Text: n.Text(), Range: r}
	case tombi.KindFloatValue:
		return Value{Kind: ValueFloat, Float: tombi.DecodeFloat(n), Text: n.Text(), Range: r}
	case tombi.KindBoolean:
		return Value{Kind: ValueBoolean, Bool: lit == "true", Text: n.Text(), Range: r}
	case tombi.KindOffsetDateTimeValue:
		return Value{Kind: ValueOffsetDateTime, Text: lit, Range: r}
	case tombi.KindLocalDateTimeValue:
		return Value{Kind: ValueLocalDateTime, Text: lit, Range: r}
	case tombi.KindLocalDateValue:
		return Value{Kind: ValueLocalDate, Text: lit, Range: r}
	case tombi.KindLocalTimeValue:
		return Value{Kind: ValueLocalTime, Text: lit, Range: r}
	case tombi.KindArray:
		arr, _ := tombi.CastArray(n)
		var out []Value
		for i, v := range arr.Values() {
			out = append(out, b.buildValue(v, append(path, indexSegment(i))))
		}
		return Value{Kind: ValueArray, Array: out, Range: r}
	case tombi.KindInlineTable:
		it, _ := tombi.CastInlineTable(n)
		tbl := newTable(KindInlineTable, r)
		for _, kv := range it.KeyValues() {
			b.assignKeyValue(tbl, nil, kv)
		}
		return Value{Kind: ValueTable, Table: tbl, Range: r}
	case tombi.KindErrorNode:
		b.diags = append(b.diags, newIncomplete(path, r))
		return Value{Kind: ValueIncomplete, Range: r}
	default:
		return Value{Kind: ValueIncomplete, Range: r}
	}
}

func partNames(keys tombi.Keys) []string {
	parts := keys.Parts()
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.Name()
	}
	return out
}

func indexSegment(i int) string {
	digits := "0123456789"
	if i < 10 {
		return string(digits[i])
	}
	// Array indices large enough to need more than one digit are rare in
	// diagnostic paths; fall back to a simple base-10 conversion.
	var buf []byte
	for i > 0 {
		buf = append([]byte{digits[i%10]}, buf...)
		i /= 10
	}
	return string(buf)
}
