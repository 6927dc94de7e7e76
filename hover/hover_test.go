package hover

import (
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/require"

	"github.com/maurice/tombi/doctree"
	"github.com/maurice/tombi/schemastore"
)

func TestHoverNil(t *testing.T) {
	require.Nil(t, Hover(doctree.Value{}, nil, nil))
}

func TestHoverBasicType(t *testing.T) {
	schema := &jsonschema.Schema{Type: "string", Description: "a name"}
	c := Hover(doctree.Value{Kind: doctree.ValueString, Str: "x"}, &schemastore.ValueSchema{Schema: schema}, []string{"name"})
	require.NotNil(t, c)
	require.Equal(t, "String", c.ValueType.String())
	require.Equal(t, "a name", c.Description)
	require.Equal(t, []string{"name"}, c.Path)
}

func TestHoverSimplifiesNestedOneOf(t *testing.T) {
	schema := &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{OneOf: []*jsonschema.Schema{{Type: "string"}, {Type: "integer"}}},
			{Type: "null"},
		},
	}
	c := Hover(doctree.Value{Kind: doctree.ValueString}, &schemastore.ValueSchema{Schema: schema}, nil)
	require.NotNil(t, c)
	require.True(t, c.ValueType.Nullable)
	require.ElementsMatch(t, []string{"string", "integer"}, c.ValueType.Names)
}

func TestValueTypeStringRendersExclusiveOr(t *testing.T) {
	v := ValueType{Names: []string{"string", "integer"}, Nullable: true}
	require.Equal(t, "(String ^ Integer)?", v.String())
}

func TestSimplifyIsFixedPoint(t *testing.T) {
	schema := &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{OneOf: []*jsonschema.Schema{{Type: "string"}, {Type: "boolean"}}},
			{Type: "null"},
		},
	}
	first := Simplify(schema)

	again := &jsonschema.Schema{}
	if len(first.Names) == 1 {
		again.Type = first.Names[0]
	} else {
		for _, n := range first.Names {
			again.OneOf = append(again.OneOf, &jsonschema.Schema{Type: n})
		}
	}
	if first.Nullable {
		again.OneOf = append(again.OneOf, &jsonschema.Schema{Type: "null"})
	}
	second := Simplify(again)

	require.ElementsMatch(t, first.Names, second.Names)
	require.Equal(t, first.Nullable, second.Nullable)
}

func TestHoverDeprecatedFlag(t *testing.T) {
	schema := &jsonschema.Schema{Type: "string", Deprecated: true}
	c := Hover(doctree.Value{Kind: doctree.ValueString}, &schemastore.ValueSchema{Schema: schema}, nil)
	require.True(t, c.Deprecated)
}
