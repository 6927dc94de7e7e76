package schemastore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStoreLoadSchemasAndMatch(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeTemp(t, dir, "schema.json", `{"type":"object"}`)
	catalogPath := writeTemp(t, dir, "catalog.json", `{"schemas":[{"url":"`+schemaPath+`","fileMatch":["**/*.toml"]}]}`)

	store, err := NewStore(16)
	require.NoError(t, err)
	require.NoError(t, store.LoadConfig(Config{CatalogURLs: []string{catalogPath}}))

	schema, ok := store.TryGetDocumentSchema("project/config.toml")
	require.True(t, ok)
	require.Equal(t, "object", schema.Type)
}

func TestStoreFallsBackToRootSchema(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeTemp(t, dir, "root.json", `{"type":"object","x-tombi-toml-version":"1.1"}`)

	store, err := NewStore(16)
	require.NoError(t, err)
	require.NoError(t, store.LoadConfig(Config{RootSchemaURL: schemaPath}))

	schema, ok := store.TryGetDocumentSchema("anything.toml")
	require.True(t, ok)
	require.Equal(t, "1.1", schema.TOMLVersion)
}

func TestStoreOfflineRejectsHTTP(t *testing.T) {
	store, err := NewStore(16)
	require.NoError(t, err)
	require.NoError(t, store.LoadConfig(Config{Offline: true, RootSchemaURL: "https://example.com/schema.json"}))

	_, ok := store.TryGetDocumentSchema("anything.toml")
	require.False(t, ok)
}
