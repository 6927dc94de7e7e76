// Command tombi-decode reads a TOML document from stdin and writes it
// to stdout as tagged JSON (each scalar tagged with its TOML type),
// rewired from the teacher's cmd/decoder/main.go onto tombi.Parse and
// doctree.Build instead of the flat AST the teacher walked.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	tombi "github.com/maurice/tombi"
	"github.com/maurice/tombi/doctree"
)

func main() {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading stdin: %v\n", err)
		os.Exit(1)
	}

	res := tombi.Parse(string(data))
	if len(res.Errors) > 0 {
		fmt.Fprintf(os.Stderr, "%v\n", res.Errors[0])
		os.Exit(1)
	}

	doc := doctree.Build(res.Root)
	if len(doc.Diagnostics) > 0 {
		fmt.Fprintf(os.Stderr, "%v\n", doc.Diagnostics[0])
		os.Exit(1)
	}

	out, err := json.Marshal(tableToTagged(doc.Root))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error marshaling JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func tableToTagged(t *doctree.Table) map[string]any {
	out := make(map[string]any, len(t.Keys()))
	for _, key := range t.Keys() {
		v, _ := t.Get(key)
		out[key] = valueToTagged(v)
	}
	return out
}

func valueToTagged(v doctree.Value) any {
	switch v.Kind {
	case doctree.ValueString:
		return tagged("string", v.Str)
	case doctree.ValueInteger:
		return tagged("integer", strconv.FormatInt(v.Int, 10))
	case doctree.ValueFloat:
		return tagged("float", strconv.FormatFloat(v.Float, 'g', -1, 64))
	case doctree.ValueBoolean:
		return tagged("bool", strconv.FormatBool(v.Bool))
	case doctree.ValueOffsetDateTime:
		return tagged("datetime", v.Text)
	case doctree.ValueLocalDateTime:
		return tagged("datetime-local", v.Text)
	case doctree.ValueLocalDate:
		return tagged("date-local", v.Text)
	case doctree.ValueLocalTime:
		return tagged("time-local", v.Text)
	case doctree.ValueArray:
		arr := make([]any, 0, len(v.Array))
		for _, elem := range v.Array {
			arr = append(arr, valueToTagged(elem))
		}
		return arr
	case doctree.ValueTable:
		return tableToTagged(v.Table)
	default:
		return nil
	}
}

func tagged(typ, val string) map[string]string {
	return map[string]string{"type": typ, "value": val}
}
