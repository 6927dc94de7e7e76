package completion

import (
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/require"

	"github.com/maurice/tombi/schemastore"
)

func TestCompleteProposesRequiredFirst(t *testing.T) {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"zeta":  {},
			"alpha": {},
		},
		Required: []string{"zeta"},
	}
	items := Complete(&schemastore.ValueSchema{Schema: schema}, Context{})
	require.Len(t, items, 2)
	require.Equal(t, "zeta", items[0].Label)
	require.Equal(t, "alpha", items[1].Label)
}

func TestCompleteFiltersByPrefix(t *testing.T) {
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":    {},
			"version": {},
		},
	}
	items := Complete(&schemastore.ValueSchema{Schema: schema}, Context{Prefix: "na"})
	require.Len(t, items, 1)
	require.Equal(t, "name", items[0].Label)
}

func TestCompleteDotTriggerHint(t *testing.T) {
	schema := &jsonschema.Schema{Type: "object", Properties: map[string]*jsonschema.Schema{"a": {}}}
	items := Complete(&schemastore.ValueSchema{Schema: schema}, Context{TriggerChar: '.'})
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Hint)
	require.NotNil(t, items[0].Hint.DotTrigger)
}

func TestCompleteEnumValues(t *testing.T) {
	schema := &jsonschema.Schema{Enum: []any{"debug", "info", "error"}}
	items := Complete(&schemastore.ValueSchema{Schema: schema}, Context{})
	require.Len(t, items, 3)
}
