package schemastore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogMatch(t *testing.T) {
	c := &Catalog{Schemas: []CatalogEntry{
		{URL: "file:///cargo.json", FileMatch: []string{"**/Cargo.toml"}},
		{URL: "file:///pyproject.json", FileMatch: []string{"pyproject.toml"}},
	}}

	entry, ok := c.match("/home/user/project/Cargo.toml")
	require.True(t, ok)
	require.Equal(t, "file:///cargo.json", entry.URL)

	entry, ok = c.match("pyproject.toml")
	require.True(t, ok)
	require.Equal(t, "file:///pyproject.json", entry.URL)

	_, ok = c.match("config.toml")
	require.False(t, ok)
}

func TestReferableResolvesOnce(t *testing.T) {
	calls := 0
	r := Unresolved[string]("#/defs/foo")
	resolve := func(ref string) (string, error) {
		calls++
		return "resolved:" + ref, nil
	}

	v1, err := r.Resolve(resolve)
	require.NoError(t, err)
	require.Equal(t, "resolved:#/defs/foo", v1)

	v2, err := r.Resolve(resolve)
	require.NoError(t, err)
	require.Equal(t, v1, v2)
	require.Equal(t, 1, calls)
	require.True(t, r.IsResolved())
}
