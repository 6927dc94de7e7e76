package lspserver

import (
	"github.com/google/jsonschema-go/jsonschema"

	tombi "github.com/maurice/tombi"
	"github.com/maurice/tombi/doctree"
)

// findPath locates the deepest doctree.Value whose range contains pos,
// returning the dotted path (table keys and array indices) that leads
// to it. Used by completion/hover to turn a cursor position into the
// accessor path those packages expect.
func findPath(table *doctree.Table, pos tombi.Position, prefix []string) ([]string, doctree.Value, bool) {
	for _, key := range table.Keys() {
		value, _ := table.Get(key)
		if !posInRange(pos, value.Range) {
			continue
		}
		path := append(append([]string{}, prefix...), key)

		switch value.Kind {
		case doctree.ValueTable:
			if sub, subVal, ok := findPath(value.Table, pos, path); ok {
				return sub, subVal, true
			}
			return path, value, true
		case doctree.ValueArray:
			for i, item := range value.Array {
				if !posInRange(pos, item.Range) {
					continue
				}
				itemPath := append(append([]string{}, path...), indexSegment(i))
				if item.Kind == doctree.ValueTable {
					if sub, subVal, ok := findPath(item.Table, pos, itemPath); ok {
						return sub, subVal, true
					}
				}
				return itemPath, item, true
			}
			return path, value, true
		default:
			return path, value, true
		}
	}
	return nil, doctree.Value{}, false
}

func indexSegment(i int) string {
	digits := "0123456789"
	if i < 10 {
		return string(digits[i])
	}
	var buf []byte
	for i > 0 {
		buf = append([]byte{digits[i%10]}, buf...)
		i /= 10
	}
	return string(buf)
}

// schemaAt walks path against root's properties/items, returning the
// sub-schema describing the value at that accessor path, or nil if the
// schema doesn't describe anything that deep.
func schemaAt(root *jsonschema.Schema, path []string) *jsonschema.Schema {
	cur := root
	for _, seg := range path {
		if cur == nil {
			return nil
		}
		if prop, ok := cur.Properties[seg]; ok {
			cur = prop
			continue
		}
		if cur.Items != nil {
			cur = cur.Items
			continue
		}
		return nil
	}
	return cur
}
