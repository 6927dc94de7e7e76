// Command tombi-encode reads tagged JSON from stdin (the format
// tombi-decode produces) and writes it to stdout as TOML text.
// Rewired from the teacher's cmd/encoder/main.go, which only handled a
// flat set of top-level scalars; this generalizes to nested tables and
// arrays of tables, since SPEC_FULL.md's round-trip contract requires
// a document tree of arbitrary depth, not just flat key/value pairs.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

func main() {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading stdin: %v\n", err)
		os.Exit(1)
	}

	var input map[string]any
	if err := json.Unmarshal(data, &input); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	var b strings.Builder
	writeTable(&b, nil, input)
	fmt.Print(b.String())
}

// writeTable emits path's header (skipped at the root), its scalar
// key/value lines, then recurses into sub-tables and arrays of tables.
func writeTable(b *strings.Builder, path []string, data map[string]any) {
	keys := sortedKeys(data)

	var scalars, tables, tableArrays []string
	for _, key := range keys {
		switch v := classify(data[key]); v {
		case kindScalar, kindScalarArray:
			scalars = append(scalars, key)
		case kindTable:
			tables = append(tables, key)
		case kindTableArray:
			tableArrays = append(tableArrays, key)
		}
	}

	if len(path) > 0 && (len(scalars) > 0 || (len(tables) == 0 && len(tableArrays) == 0)) {
		fmt.Fprintf(b, "[%s]\n", strings.Join(path, "."))
	}
	for _, key := range scalars {
		fmt.Fprintf(b, "%s = %s\n", key, formatValue(data[key]))
	}
	if len(scalars) > 0 {
		b.WriteString("\n")
	}

	for _, key := range tables {
		writeTable(b, append(append([]string{}, path...), key), data[key].(map[string]any))
	}
	for _, key := range tableArrays {
		elemPath := append(append([]string{}, path...), key)
		for _, elem := range data[key].([]any) {
			fmt.Fprintf(b, "[[%s]]\n", strings.Join(elemPath, "."))
			writeTableBody(b, elemPath, elem.(map[string]any))
		}
	}
}

// writeTableBody writes an array-of-tables element's own key/value
// lines after its [[path]] header, then its nested tables and arrays of
// tables under headers that extend path.
func writeTableBody(b *strings.Builder, path []string, data map[string]any) {
	keys := sortedKeys(data)
	var scalars, tables []string
	for _, key := range keys {
		switch classify(data[key]) {
		case kindScalar, kindScalarArray:
			scalars = append(scalars, key)
		default:
			tables = append(tables, key)
		}
	}
	for _, key := range scalars {
		fmt.Fprintf(b, "%s = %s\n", key, formatValue(data[key]))
	}
	b.WriteString("\n")
	nested := make(map[string]any, len(tables))
	for _, key := range tables {
		nested[key] = data[key]
	}
	if len(nested) > 0 {
		// No scalars in nested, so writeTable emits no header for path itself.
		writeTable(b, path, nested)
	}
}

type kind int

const (
	kindScalar kind = iota
	kindScalarArray
	kindTable
	kindTableArray
)

func classify(v any) kind {
	switch x := v.(type) {
	case map[string]any:
		// A tagged scalar {"type": ..., "value": ...} as tombi-decode
		// writes it; a table's entries are never bare strings.
		_, isType := x["type"].(string)
		_, isValue := x["value"].(string)
		if isType && isValue && len(x) == 2 {
			return kindScalar
		}
		return kindTable
	case []any:
		if len(x) > 0 {
			if m, ok := x[0].(map[string]any); ok && classify(m) == kindTable {
				return kindTableArray
			}
		}
		return kindScalarArray
	default:
		return kindScalar
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case map[string]any:
		if typ, ok := x["type"].(string); ok {
			if val, ok := x["value"].(string); ok {
				return formatTagged(typ, val)
			}
		}
	case []any:
		items := make([]string, len(x))
		for i, elem := range x {
			items[i] = formatValue(elem)
		}
		return "[" + strings.Join(items, ", ") + "]"
	}
	return `""`
}

func formatTagged(typ, value string) string {
	switch typ {
	case "string":
		return `"` + escapeString(value) + `"`
	case "integer", "float", "bool":
		return value
	case "datetime", "datetime-local", "date-local", "time-local":
		return value
	default:
		return `"` + escapeString(value) + `"`
	}
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
