package doctree

import tombi "github.com/maurice/tombi"

// TableKind classifies how a Table entry came to exist, the lattice
// spec §4.4 calls for: six kinds whose pairwise merge rule is a lookup
// table, not nested conditionals. Grounded on the teacher's validate.go
// tableState, which tracked the same distinctions through ad hoc
// path-string maps (isAOT/isExplicit/isDotted flags) — here made
// explicit as a closed enumeration.
type TableKind int

const (
	KindRoot TableKind = iota
	KindTable
	KindInlineTable
	KindParentTable // an implicit table created by a longer header's prefix, e.g. `a` from `[a.b]`
	KindParentKey   // an implicit table created by a dotted key's prefix, e.g. `a` from `a.b = 1`
	KindKeyValue    // a table synthesized to hold one already-assigned key's value (used only for conflict reporting)
)

// entry is one named child of a Table: its value plus the TableKind
// under which it was created, needed to resolve merges correctly when
// the same key is revisited by a later header or dotted key.
type entry struct {
	key   string
	value Value
	kind  TableKind
}

// Table is an ordered map from key to Value, preserving TOML's
// insertion order (needed for stable completion/hover and for
// round-tripping to encoders that care about key order).
type Table struct {
	Kind    TableKind
	Range   tombi.Range
	order   []string
	entries map[string]entry
}

func newTable(kind TableKind, r tombi.Range) *Table {
	return &Table{Kind: kind, Range: r, entries: make(map[string]entry)}
}

// Get returns the value stored at key and whether it exists.
func (t *Table) Get(key string) (Value, bool) {
	e, ok := t.entries[key]
	return e.value, ok
}

// Keys returns keys in insertion order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *Table) kindOf(key string) (TableKind, bool) {
	e, ok := t.entries[key]
	return e.kind, ok
}

// set inserts or overwrites key with value/kind, preserving original
// insertion position on overwrite.
func (t *Table) set(key string, value Value, kind TableKind) {
	if _, exists := t.entries[key]; !exists {
		t.order = append(t.order, key)
	}
	t.entries[key] = entry{key: key, value: value, kind: kind}
}

// subTable returns the *Table stored at key if its value is itself a
// table, or nil.
func (t *Table) subTable(key string) *Table {
	e, ok := t.entries[key]
	if !ok || e.value.Kind != ValueTable {
		return nil
	}
	return e.value.Table
}
