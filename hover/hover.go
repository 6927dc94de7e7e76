// Package hover builds hover content for a cursor position inside a
// TOML document, driven by the schema in scope at that position, per
// spec §4.6's hover contract.
package hover

import (
	tombi "github.com/maurice/tombi"
	"github.com/maurice/tombi/doctree"
	"github.com/maurice/tombi/schemastore"
)

// Content is the rendered hover payload for one position.
type Content struct {
	Path        []string
	ValueType   ValueType
	Title       string
	Description string
	Deprecated  bool
	SchemaURL   string
	Range       tombi.Range
}

// Hover builds Content for value at path, described by schema. It
// returns nil when there is nothing worth surfacing (no schema, and
// the value carries no type information of its own). Without a schema,
// the content holds only the path, the value's own type and its range.
func Hover(value doctree.Value, schema *schemastore.ValueSchema, path []string) *Content {
	if schema == nil || schema.Schema == nil {
		name, ok := map[doctree.ValueKind]string{
			doctree.ValueString: "string", doctree.ValueInteger: "integer",
			doctree.ValueFloat: "float", doctree.ValueBoolean: "boolean",
			doctree.ValueOffsetDateTime: "OffsetDateTime", doctree.ValueLocalDateTime: "LocalDateTime",
			doctree.ValueLocalDate: "LocalDate", doctree.ValueLocalTime: "LocalTime",
			doctree.ValueArray: "array", doctree.ValueTable: "table",
		}[value.Kind]
		if !ok {
			return nil
		}
		return &Content{Path: append([]string{}, path...), ValueType: ValueType{Names: []string{name}}, Range: value.Range}
	}
	c := &Content{
		Path:        append([]string{}, path...),
		ValueType:   Simplify(schema.Schema),
		Title:       schema.Title,
		Description: schema.Description,
		Deprecated:  schema.Deprecated,
		SchemaURL:   schema.SourceURL,
		Range:       value.Range,
	}
	return c
}
