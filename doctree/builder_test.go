package doctree

import (
	"testing"

	tombi "github.com/maurice/tombi"
)

func build(t *testing.T, src string) *Document {
	t.Helper()
	res := tombi.Parse(src)
	if len(res.Errors) != 0 {
		t.Fatalf("parse errors for %q: %+v", src, res.Errors)
	}
	return Build(res.Root)
}

func TestBuildSimpleKeyValues(t *testing.T) {
	doc := build(t, "a = 1\nb = \"x\"\n")
	if len(doc.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", doc.Diagnostics)
	}
	v, ok := doc.Root.Get("a")
	if !ok || v.Kind != ValueInteger || v.Int != 1 {
		t.Errorf("got a = %+v", v)
	}
	v, ok = doc.Root.Get("b")
	if !ok || v.Kind != ValueString || v.Str != "x" {
		t.Errorf("got b = %+v", v)
	}
}

func TestBuildDottedKeyCreatesParent(t *testing.T) {
	doc := build(t, "a.b.c = 1\n")
	a, ok := doc.Root.Get("a")
	if !ok || a.Kind != ValueTable {
		t.Fatalf("expected a to be a table, got %+v", a)
	}
	bb, ok := a.Table.Get("b")
	if !ok || bb.Kind != ValueTable {
		t.Fatalf("expected a.b to be a table, got %+v", bb)
	}
	c, ok := bb.Table.Get("c")
	if !ok || c.Int != 1 {
		t.Fatalf("expected a.b.c = 1, got %+v", c)
	}
}

func TestBuildTableHeaderThenNested(t *testing.T) {
	doc := build(t, "[a]\nx = 1\n\n[a.b]\ny = 2\n")
	a, ok := doc.Root.Get("a")
	if !ok || a.Kind != ValueTable {
		t.Fatalf("expected [a] table, got %+v", a)
	}
	x, _ := a.Table.Get("x")
	if x.Int != 1 {
		t.Errorf("a.x = %+v, want 1", x)
	}
	b, ok := a.Table.Get("b")
	if !ok || b.Kind != ValueTable {
		t.Fatalf("expected a.b table, got %+v", b)
	}
	y, _ := b.Table.Get("y")
	if y.Int != 2 {
		t.Errorf("a.b.y = %+v, want 2", y)
	}
}

func TestBuildArrayOfTables(t *testing.T) {
	doc := build(t, "[[fruit]]\nname = \"apple\"\n\n[[fruit]]\nname = \"banana\"\n")
	v, ok := doc.Root.Get("fruit")
	if !ok || v.Kind != ValueArray || len(v.Array) != 2 {
		t.Fatalf("expected fruit array of 2, got %+v", v)
	}
	first, _ := v.Array[0].Table.Get("name")
	second, _ := v.Array[1].Table.Get("name")
	if first.Str != "apple" || second.Str != "banana" {
		t.Errorf("got names %q, %q", first.Str, second.Str)
	}
}

func TestBuildDuplicateKeyIsDiagnostic(t *testing.T) {
	doc := build(t, "a = 1\na = 2\n")
	if len(doc.Diagnostics) != 1 || doc.Diagnostics[0].Kind != DuplicateKey {
		t.Fatalf("expected one DuplicateKey diagnostic, got %+v", doc.Diagnostics)
	}
}

func TestBuildRedefinedTableIsConflict(t *testing.T) {
	doc := build(t, "[a]\nx = 1\n\n[a]\ny = 2\n")
	var found bool
	for _, d := range doc.Diagnostics {
		if d.Kind == ConflictTable {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a ConflictTable diagnostic, got %+v", doc.Diagnostics)
	}
}

func TestBuildInlineTable(t *testing.T) {
	doc := build(t, "point = { x = 1, y = 2 }\n")
	v, ok := doc.Root.Get("point")
	if !ok || v.Kind != ValueTable {
		t.Fatalf("expected point table, got %+v", v)
	}
	x, _ := v.Table.Get("x")
	y, _ := v.Table.Get("y")
	if x.Int != 1 || y.Int != 2 {
		t.Errorf("got x=%+v y=%+v", x, y)
	}
}

func TestBuildArrayValues(t *testing.T) {
	doc := build(t, "xs = [1, 2, 3]\n")
	v, ok := doc.Root.Get("xs")
	if !ok || v.Kind != ValueArray || len(v.Array) != 3 {
		t.Fatalf("expected array of 3, got %+v", v)
	}
	for i, want := range []int64{1, 2, 3} {
		if v.Array[i].Int != want {
			t.Errorf("xs[%d] = %d, want %d", i, v.Array[i].Int, want)
		}
	}
}
