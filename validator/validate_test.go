package validator

import (
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/require"

	tombi "github.com/maurice/tombi"
	"github.com/maurice/tombi/doctree"
	"github.com/maurice/tombi/schemastore"
)

func buildDoc(t *testing.T, src string) *doctree.Document {
	t.Helper()
	res := tombi.Parse(src)
	require.Empty(t, res.Errors)
	return doctree.Build(res.Root)
}

func rootValue(doc *doctree.Document) doctree.Value {
	return doctree.Value{Kind: doctree.ValueTable, Table: doc.Root}
}

func vs(schema *jsonschema.Schema) *schemastore.ValueSchema {
	return &schemastore.ValueSchema{Schema: schema}
}

func TestValidateMissingRequired(t *testing.T) {
	doc := buildDoc(t, "a = 1\n")
	schema := &jsonschema.Schema{Type: "object", Required: []string{"a", "b"}}
	diags := Validate(rootValue(doc), vs(schema), nil)
	require.Len(t, diags, 1)
	require.Equal(t, []string{"b"}, diags[0].Path)
}

func TestValidateAdditionalPropertiesFalse(t *testing.T) {
	doc := buildDoc(t, "a = 1\nb = 2\n")
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{"a": {Type: "integer"}},
		AdditionalProperties: &jsonschema.Schema{
			Not: &jsonschema.Schema{},
		},
	}
	diags := Validate(rootValue(doc), vs(schema), nil)
	require.Len(t, diags, 1)
	require.Equal(t, []string{"b"}, diags[0].Path)
}

func TestValidateEnum(t *testing.T) {
	doc := buildDoc(t, "level = \"debug\"\n")
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{"level": {Enum: []any{"info", "warn", "error"}}},
	}
	diags := Validate(rootValue(doc), vs(schema), nil)
	require.Len(t, diags, 1)
	require.Equal(t, []string{"level"}, diags[0].Path)
}

func TestValidateOneOfExactlyOneMatch(t *testing.T) {
	doc := buildDoc(t, "x = 1\n")
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"x": {OneOf: []*jsonschema.Schema{{Type: "string"}, {Type: "integer"}}},
		},
	}
	diags := Validate(rootValue(doc), vs(schema), nil)
	require.Empty(t, diags)
}

func TestValidateOneOfNoMatch(t *testing.T) {
	doc := buildDoc(t, "x = 1.5\n")
	schema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"x": {OneOf: []*jsonschema.Schema{{Type: "string"}, {Type: "boolean"}}},
		},
	}
	diags := Validate(rootValue(doc), vs(schema), nil)
	require.Len(t, diags, 1)
}

func TestValidateArrayOrderLint(t *testing.T) {
	doc := buildDoc(t, "xs = [3, 1, 2]\n")
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{"xs": {Type: "array"}},
	}
	root := vs(schema)
	rootProp := &schemastore.ValueSchema{Schema: schema.Properties["xs"], ArrayValuesOrder: schemastore.ArrayValuesAscending}

	xs, _ := doc.Root.Get("xs")
	diags := Validate(xs, rootProp, []string{"xs"})
	require.Len(t, diags, 1)
	require.Equal(t, SeverityWarning, diags[0].Severity)
	_ = root
}
