package hover

import (
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// ValueType is the simplified, display-ready shape of a schema: a flat
// set of primitive type names plus a nullable flag. Spec §8/§9's
// "simplification property" requires this to be a fixed point: running
// simplify again on its own output must not change it.
type ValueType struct {
	Names    []string
	Nullable bool
}

// Simplify reduces s to a ValueType by repeatedly flattening nested
// oneOf branches that name only a bare type, and by folding a `null`
// branch into the Nullable flag instead of listing it as a type name.
// Mirrors schemastore's internal simplifyOneOf, kept separate because
// hover's output shape (a flat display string) differs from
// schemastore's internal schema-branch bookkeeping.
func Simplify(s *jsonschema.Schema) ValueType {
	if s == nil {
		return ValueType{}
	}
	names, nullable := simplify(s)
	return ValueType{Names: dedupe(names), Nullable: nullable}
}

func simplify(s *jsonschema.Schema) ([]string, bool) {
	if len(s.OneOf) == 0 && len(s.AnyOf) == 0 {
		return typeNames(s), isNullOnly(s)
	}

	branches := s.OneOf
	if len(branches) == 0 {
		branches = s.AnyOf
	}

	var names []string
	nullable := false
	changed := true
	for changed {
		changed = false
		var next []*jsonschema.Schema
		for _, b := range branches {
			if b == nil {
				continue
			}
			if len(b.OneOf) > 0 && isBareBranch(b) {
				next = append(next, b.OneOf...)
				changed = true
				continue
			}
			if isNullOnly(b) {
				nullable = true
				continue
			}
			next = append(next, b)
		}
		branches = next
	}
	for _, b := range branches {
		names = append(names, typeNames(b)...)
	}
	return names, nullable
}

func isBareBranch(s *jsonschema.Schema) bool {
	return s.Title == "" && s.Description == "" && s.Ref == ""
}

func isNullOnly(s *jsonschema.Schema) bool {
	if s.Type == "null" {
		return true
	}
	return len(s.Types) == 1 && s.Types[0] == "null"
}

func typeNames(s *jsonschema.Schema) []string {
	if s.Type != "" {
		return []string{s.Type}
	}
	if len(s.Types) > 0 {
		out := make([]string, 0, len(s.Types))
		for _, t := range s.Types {
			if t != "null" {
				out = append(out, t)
			}
		}
		return out
	}
	return nil
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// String renders the ValueType the way hover text displays it, per spec
// §8 seed scenario 6: type names are capitalized, more than one name is
// joined with " ^ " (exclusive-or, since oneOf branches are mutually
// exclusive) and parenthesized, and a trailing "?" marks nullable —
// e.g. "String" or "(String ^ Integer)?".
func (v ValueType) String() string {
	names := make([]string, len(v.Names))
	for i, n := range v.Names {
		names[i] = capitalize(n)
	}

	var out string
	switch len(names) {
	case 0:
		out = ""
	case 1:
		out = names[0]
	default:
		out = "(" + strings.Join(names, " ^ ") + ")"
	}
	if v.Nullable {
		out += "?"
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
