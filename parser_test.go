package tombi

import "testing"

func TestParseRoundTripsText(t *testing.T) {
	srcs := []string{
		"a = 1\nb = \"two\"\n",
		"[table]\nx = 1\n\n[table.nested]\ny = 2\n",
		"[[arr]]\nn = 1\n\n[[arr]]\nn = 2\n",
		"arr = [1, 2, 3]\n",
		"inline = { a = 1, b = 2 }\n",
		"# leading comment\nkey = \"value\" # trailing\n",
		"a.b.c = 1\n",
	}
	for _, src := range srcs {
		res := Parse(src)
		if got := res.Root.Text(); got != src {
			t.Errorf("lossless round trip failed:\n got: %q\nwant: %q", got, src)
		}
	}
}

func TestParseTableHeaderDistinguishesArrayOfTables(t *testing.T) {
	res := Parse("[a]\n[[b]]\n")
	root, ok := CastRoot(res.Root)
	if !ok {
		t.Fatalf("root cast failed")
	}
	items := root.Items()
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}
	if items[0].Kind() != KindTable {
		t.Errorf("first item kind = %v, want Table", items[0].Kind())
	}
	if items[1].Kind() != KindArrayOfTable {
		t.Errorf("second item kind = %v, want ArrayOfTable", items[1].Kind())
	}
}

func TestParseKeyValueAccessors(t *testing.T) {
	res := Parse("a.b = 1\n")
	root, _ := CastRoot(res.Root)
	items := root.Items()
	if len(items) != 1 {
		t.Fatalf("want 1 item, got %d", len(items))
	}
	kv, ok := CastKeyValue(items[0].Node)
	if !ok {
		t.Fatalf("expected KeyValue")
	}
	keys, ok := kv.Keys()
	if !ok {
		t.Fatalf("expected Keys")
	}
	parts := keys.Parts()
	if len(parts) != 2 || parts[0].Name() != "a" || parts[1].Name() != "b" {
		t.Errorf("got parts %+v", parts)
	}
	val, ok := kv.Value()
	if !ok || val.Kind() != KindIntegerValue {
		t.Errorf("got value kind %v", val.Kind())
	}
}

func TestParseRecoversFromGarbageLine(t *testing.T) {
	res := Parse("a = 1\n@@@\nb = 2\n")
	if len(res.Errors) == 0 {
		t.Fatalf("expected at least one recorded error")
	}
	root, _ := CastRoot(res.Root)
	var kvs int
	for _, item := range root.Items() {
		if item.Kind() == KindKeyValue {
			kvs++
		}
	}
	if kvs != 2 {
		t.Errorf("expected both surrounding key/values to survive recovery, got %d", kvs)
	}
}

func TestParseInlineTableAndArray(t *testing.T) {
	res := Parse("a = [1, 2]\nb = { x = 1 }\n")
	root, _ := CastRoot(res.Root)
	items := root.Items()
	kv0, _ := CastKeyValue(items[0].Node)
	v0, _ := kv0.Value()
	arr, ok := CastArray(v0.Node)
	if !ok || len(arr.Values()) != 2 {
		t.Fatalf("expected array of 2 values, got %+v", arr)
	}

	kv1, _ := CastKeyValue(items[1].Node)
	v1, _ := kv1.Value()
	it, ok := CastInlineTable(v1.Node)
	if !ok || len(it.KeyValues()) != 1 {
		t.Fatalf("expected inline table with 1 key/value, got %+v", it)
	}
}
