// Package completion proposes completions for a cursor position inside
// a TOML document, driven entirely by the schema in scope at that
// position, per spec §4.6's completion contract.
package completion

import (
	"fmt"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"

	tombi "github.com/maurice/tombi"
	"github.com/maurice/tombi/schemastore"
)

// Hint carries edit-range metadata for trigger-character completions,
// restored from crates/tombi-lsp/tests/test_completion_edit.rs per
// SPEC_FULL.md §D.4: a completion triggered by typing '.' or '=' needs
// the exact replacement range, not just an insertion point, so the
// editor doesn't leave a stray character behind.
type Hint struct {
	DotTrigger   *tombi.Range
	EqualTrigger *tombi.Range
}

// Item is one completion proposal.
type Item struct {
	Label      string
	SortKey    string
	Detail     string
	InsertText string
	Deprecated bool
	Hint       *Hint
}

// Context describes where completion was requested: the dotted path of
// the enclosing table/key and whatever prefix has already been typed.
type Context struct {
	Path        []string
	Prefix      string
	TriggerChar byte // '.', '=', or 0
	EditRange   tombi.Range
}

// Complete proposes completions for ctx against schema, which must
// describe the table ctx.Path leads to, the one whose keys are being
// completed (the caller navigates the schema down to that sub-schema
// before calling Complete; lspserver does so with schemaAt).
func Complete(schema *schemastore.ValueSchema, ctx Context) []Item {
	if schema == nil || schema.Schema == nil {
		return nil
	}
	items := proposeProperties(schema.Schema, ctx)
	items = append(items, proposeEnumValues(schema.Schema, ctx)...)

	sort.Slice(items, func(i, j int) bool {
		if items[i].SortKey != items[j].SortKey {
			return items[i].SortKey < items[j].SortKey
		}
		return items[i].Label < items[j].Label
	})
	return items
}

func proposeProperties(s *jsonschema.Schema, ctx Context) []Item {
	var out []Item
	for name, prop := range s.Properties {
		if !hasPrefix(name, ctx.Prefix) {
			continue
		}
		out = append(out, Item{
			Label:      name,
			SortKey:    sortKeyFor(name, s),
			Detail:     prop.Description,
			InsertText: name,
			Deprecated: prop.Deprecated,
			Hint:       triggerHint(ctx),
		})
	}
	return out
}

// sortKeyFor ranks required properties before optional ones; within
// each group the key is the property name, so proposals are
// alphabetical there, not in declaration order.
func sortKeyFor(name string, s *jsonschema.Schema) string {
	for _, req := range s.Required {
		if req == name {
			return "0:" + name
		}
	}
	return "1:" + name
}

func proposeEnumValues(s *jsonschema.Schema, ctx Context) []Item {
	var out []Item
	for _, v := range s.Enum {
		label := fmt.Sprintf("%v", v)
		if !hasPrefix(label, ctx.Prefix) {
			continue
		}
		out = append(out, Item{Label: label, SortKey: "0:" + label, InsertText: label, Hint: triggerHint(ctx)})
	}
	return out
}

func triggerHint(ctx Context) *Hint {
	switch ctx.TriggerChar {
	case '.':
		return &Hint{DotTrigger: &ctx.EditRange}
	case '=':
		return &Hint{EqualTrigger: &ctx.EditRange}
	default:
		return nil
	}
}

func hasPrefix(s, prefix string) bool {
	if len(prefix) > len(s) {
		return false
	}
	return s[:len(prefix)] == prefix
}
