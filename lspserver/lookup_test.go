package lspserver

import (
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/require"

	tombi "github.com/maurice/tombi"
	"github.com/maurice/tombi/doctree"
)

func buildDoc(t *testing.T, src string) *doctree.Document {
	t.Helper()
	res := tombi.Parse(src)
	require.Empty(t, res.Errors)
	return doctree.Build(res.Root)
}

func TestFindPathTopLevelKey(t *testing.T) {
	doc := buildDoc(t, "name = \"tombi\"\n")
	path, value, ok := findPath(doc.Root, tombi.Position{Line: 1, Col: 10}, nil)
	require.True(t, ok)
	require.Equal(t, []string{"name"}, path)
	require.Equal(t, "tombi", value.Str)
}

func TestFindPathNestedTable(t *testing.T) {
	doc := buildDoc(t, "[a.b]\nc = 1\n")
	path, value, ok := findPath(doc.Root, tombi.Position{Line: 2, Col: 1}, nil)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b", "c"}, path)
	require.Equal(t, int64(1), value.Int)
}

func TestFindPathArrayElement(t *testing.T) {
	doc := buildDoc(t, "xs = [1, 2, 3]\n")
	path, value, ok := findPath(doc.Root, tombi.Position{Line: 1, Col: 7}, nil)
	require.True(t, ok)
	require.Equal(t, []string{"xs", "0"}, path)
	require.Equal(t, int64(1), value.Int)
}

func TestSchemaAtWalksProperties(t *testing.T) {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"a": {
				Type:       "object",
				Properties: map[string]*jsonschema.Schema{"b": {Type: "integer"}},
			},
		},
	}
	got := schemaAt(schema, []string{"a", "b"})
	require.NotNil(t, got)
	require.Equal(t, "integer", got.Type)
}

func TestSchemaAtMissingPathReturnsNil(t *testing.T) {
	schema := &jsonschema.Schema{Type: "object", Properties: map[string]*jsonschema.Schema{}}
	require.Nil(t, schemaAt(schema, []string{"missing"}))
}
