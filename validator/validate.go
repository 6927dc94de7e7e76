// Package validator checks a doctree.Table/Value tree for conformance
// against a schemastore.ValueSchema, per spec §4.6. Grounded on the
// teacher's validate.go descent shape (one function per TOML
// production, collecting diagnostics rather than failing fast).
package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	tombi "github.com/maurice/tombi"
	"github.com/maurice/tombi/doctree"
	"github.com/maurice/tombi/schemastore"
)

// Severity distinguishes hard schema violations from lints like
// ArrayNotSorted (SPEC_FULL.md §D.1), which never blocks validation.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is a single schema-conformance failure.
type Diagnostic struct {
	Severity Severity
	Path     []string
	Range    tombi.Range
	Message  string
}

func (d *Diagnostic) Error() string { return fmt.Sprintf("%s: %s", joinPath(d.Path), d.Message) }

func errDiag(path []string, r tombi.Range, format string, args ...any) *Diagnostic {
	return &Diagnostic{Severity: SeverityError, Path: path, Range: r, Message: fmt.Sprintf(format, args...)}
}

func warnDiag(path []string, r tombi.Range, format string, args ...any) *Diagnostic {
	return &Diagnostic{Severity: SeverityWarning, Path: path, Range: r, Message: fmt.Sprintf(format, args...)}
}

// Validate walks value against schema, returning every diagnostic
// found. It never stops at the first error, matching spec §4.6's
// "collect, don't abort" contract, shared with doctree.Build and the
// teacher's validate.go.
func Validate(value doctree.Value, schema *schemastore.ValueSchema, path []string) []*Diagnostic {
	if schema == nil || schema.Schema == nil {
		return nil
	}
	var diags []*Diagnostic
	validateAgainst(value, schema.Schema, schema, path, &diags)
	return diags
}

func validateAgainst(value doctree.Value, s *jsonschema.Schema, root *schemastore.ValueSchema, path []string, diags *[]*Diagnostic) {
	if value.IsIncomplete() {
		return
	}
	checkType(value, s, path, diags)
	if len(s.Enum) > 0 {
		checkEnum(value, s.Enum, path, diags)
	}
	if s.Const != nil {
		checkConst(value, *s.Const, path, diags)
	}
	if len(s.AllOf) > 0 {
		for _, branch := range s.AllOf {
			validateAgainst(value, branch, root, path, diags)
		}
	}
	if len(s.OneOf) > 0 || len(s.AnyOf) > 0 {
		*diags = append(*diags, evalBranches(value, s, root, path)...)
	}

	switch value.Kind {
	case doctree.ValueTable:
		validateObject(value, s, root, path, diags)
	case doctree.ValueArray:
		validateArray(value, s, root, path, diags)
	case doctree.ValueString:
		validateString(value, s, path, diags)
	case doctree.ValueInteger, doctree.ValueFloat:
		validateNumber(value, s, path, diags)
	}
}

// checkType implements spec §4.6 step 3, "dispatch on schema kind: exact
// type": if s declares a type (singular Type or the multi-type Types), the
// value's kind must be one of them, or it's a diagnostic. A schema with
// neither field set is unconstrained and always passes.
func checkType(value doctree.Value, s *jsonschema.Schema, path []string, diags *[]*Diagnostic) {
	var want []string
	if s.Type != "" {
		want = append(want, s.Type)
	}
	want = append(want, s.Types...)
	if len(want) == 0 {
		return
	}
	for _, t := range want {
		if kindMatchesType(value.Kind, t) {
			return
		}
	}
	*diags = append(*diags, errDiag(path, value.Range, "value is %s, want %s", kindName(value.Kind), strings.Join(want, " or ")))
}

// kindMatchesType reports whether a doctree value of kind k satisfies JSON
// Schema type keyword t. TOML's datetime kinds are represented as JSON
// Schema strings with a format hint (spec §4.6), and "integer" is the
// subset of "number" that JSON Schema itself specifies, so an integer value
// satisfies a "number" schema.
func kindMatchesType(k doctree.ValueKind, t string) bool {
	switch t {
	case "string":
		switch k {
		case doctree.ValueString, doctree.ValueOffsetDateTime, doctree.ValueLocalDateTime,
			doctree.ValueLocalDate, doctree.ValueLocalTime:
			return true
		}
		return false
	case "integer":
		return k == doctree.ValueInteger
	case "number":
		return k == doctree.ValueInteger || k == doctree.ValueFloat
	case "boolean":
		return k == doctree.ValueBoolean
	case "object":
		return k == doctree.ValueTable
	case "array":
		return k == doctree.ValueArray
	case "null":
		return false
	default:
		return true
	}
}

func kindName(k doctree.ValueKind) string {
	switch k {
	case doctree.ValueString:
		return "a string"
	case doctree.ValueInteger:
		return "an integer"
	case doctree.ValueFloat:
		return "a float"
	case doctree.ValueBoolean:
		return "a boolean"
	case doctree.ValueOffsetDateTime, doctree.ValueLocalDateTime, doctree.ValueLocalDate, doctree.ValueLocalTime:
		return "a datetime"
	case doctree.ValueArray:
		return "an array"
	case doctree.ValueTable:
		return "a table"
	default:
		return "incomplete"
	}
}

func checkEnum(value doctree.Value, enum []any, path []string, diags *[]*Diagnostic) {
	for _, want := range enum {
		if valueEquals(value, want) {
			return
		}
	}
	*diags = append(*diags, errDiag(path, value.Range, "value does not match any enum member"))
}

func checkConst(value doctree.Value, want any, path []string, diags *[]*Diagnostic) {
	if !valueEquals(value, want) {
		*diags = append(*diags, errDiag(path, value.Range, "value does not match const"))
	}
}

func valueEquals(value doctree.Value, want any) bool {
	switch w := want.(type) {
	case string:
		return value.Kind == doctree.ValueString && value.Str == w
	case bool:
		return value.Kind == doctree.ValueBoolean && value.Bool == w
	case float64:
		switch value.Kind {
		case doctree.ValueInteger:
			return float64(value.Int) == w
		case doctree.ValueFloat:
			return value.Float == w
		}
	}
	return false
}

func validateObject(value doctree.Value, s *jsonschema.Schema, root *schemastore.ValueSchema, path []string, diags *[]*Diagnostic) {
	for _, req := range s.Required {
		if _, ok := value.Table.Get(req); !ok {
			*diags = append(*diags, errDiag(append(append([]string{}, path...), req), value.Range, "missing required key %q", req))
		}
	}
	if s.MinProperties != nil && len(value.Table.Keys()) < *s.MinProperties {
		*diags = append(*diags, errDiag(path, value.Range, "table has fewer than %d properties", *s.MinProperties))
	}
	if s.MaxProperties != nil && len(value.Table.Keys()) > *s.MaxProperties {
		*diags = append(*diags, errDiag(path, value.Range, "table has more than %d properties", *s.MaxProperties))
	}

	var patternRes []*regexp.Regexp
	var patternSchemas []*jsonschema.Schema
	for pattern, sub := range s.PatternProperties {
		if re, err := regexp.Compile(pattern); err == nil {
			patternRes = append(patternRes, re)
			patternSchemas = append(patternSchemas, sub)
		}
	}

	for _, key := range value.Table.Keys() {
		child, _ := value.Table.Get(key)
		childPath := append(append([]string{}, path...), key)

		if propSchema, ok := s.Properties[key]; ok {
			validateAgainst(child, propSchema, root, childPath, diags)
			continue
		}

		matched := false
		for i, re := range patternRes {
			if re.MatchString(key) {
				validateAgainst(child, patternSchemas[i], root, childPath, diags)
				matched = true
			}
		}
		if matched {
			continue
		}

		if s.AdditionalProperties != nil && isFalseSchema(s.AdditionalProperties) {
			*diags = append(*diags, errDiag(childPath, child.Range, "key %q is not allowed by the schema", key))
		} else if s.AdditionalProperties != nil {
			validateAgainst(child, s.AdditionalProperties, root, childPath, diags)
		}
	}
}

// isFalseSchema reports whether s represents JSON Schema's literal
// `false` (a schema matching nothing), jsonschema-go's encoding of
// which is an empty Schema with Not set to an empty schema.
func isFalseSchema(s *jsonschema.Schema) bool {
	return s.Not != nil && s.Not.Type == "" && len(s.Not.Properties) == 0 && s.Not.Not == nil
}

func validateArray(value doctree.Value, s *jsonschema.Schema, root *schemastore.ValueSchema, path []string, diags *[]*Diagnostic) {
	if s.MinItems != nil && len(value.Array) < *s.MinItems {
		*diags = append(*diags, errDiag(path, value.Range, "array has fewer than %d items", *s.MinItems))
	}
	if s.MaxItems != nil && len(value.Array) > *s.MaxItems {
		*diags = append(*diags, errDiag(path, value.Range, "array has more than %d items", *s.MaxItems))
	}
	if s.UniqueItems && hasDuplicateValues(value.Array) {
		*diags = append(*diags, errDiag(path, value.Range, "array items must be unique"))
	}
	if s.Items != nil {
		for i, item := range value.Array {
			validateAgainst(item, s.Items, root, append(append([]string{}, path...), indexSegment(i)), diags)
		}
	}
	if root != nil {
		*diags = append(*diags, checkArrayOrder(value, root, path)...)
	}
}

// checkArrayOrder implements the x-tombi-array-values-order lint
// restored per SPEC_FULL.md §D.1: a warning, never an error.
func checkArrayOrder(value doctree.Value, root *schemastore.ValueSchema, path []string) []*Diagnostic {
	if root.ArrayValuesOrder == schemastore.ArrayValuesUnordered {
		return nil
	}
	ascending := root.ArrayValuesOrder == schemastore.ArrayValuesAscending
	for i := 1; i < len(value.Array); i++ {
		if !orderedPair(value.Array[i-1], value.Array[i], ascending) {
			return []*Diagnostic{warnDiag(path, value.Range, "array values are not sorted %s", orderName(ascending))}
		}
	}
	return nil
}

func orderName(ascending bool) string {
	if ascending {
		return "ascending"
	}
	return "descending"
}

func orderedPair(a, b doctree.Value, ascending bool) bool {
	av, aok := numericOf(a)
	bv, bok := numericOf(b)
	if !aok || !bok {
		return true // non-numeric arrays are not lint-checked
	}
	if ascending {
		return av <= bv
	}
	return av >= bv
}

func numericOf(v doctree.Value) (float64, bool) {
	switch v.Kind {
	case doctree.ValueInteger:
		return float64(v.Int), true
	case doctree.ValueFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

func hasDuplicateValues(values []doctree.Value) bool {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		key := fmt.Sprintf("%d:%v:%v:%v", v.Kind, v.Str, v.Int, v.Float)
		if seen[key] {
			return true
		}
		seen[key] = true
	}
	return false
}

func validateString(value doctree.Value, s *jsonschema.Schema, path []string, diags *[]*Diagnostic) {
	if s.MinLength != nil && len(value.Str) < *s.MinLength {
		*diags = append(*diags, errDiag(path, value.Range, "string is shorter than %d characters", *s.MinLength))
	}
	if s.MaxLength != nil && len(value.Str) > *s.MaxLength {
		*diags = append(*diags, errDiag(path, value.Range, "string is longer than %d characters", *s.MaxLength))
	}
	if s.Pattern != "" {
		if re, err := regexp.Compile(s.Pattern); err == nil && !re.MatchString(value.Str) {
			*diags = append(*diags, errDiag(path, value.Range, "string does not match pattern %q", s.Pattern))
		}
	}
	// The schema's format keyword is not checked: no format value,
	// including partial-date-time/partial-time, is mapped to a TOML
	// date/time kind here or in hover.
}

func validateNumber(value doctree.Value, s *jsonschema.Schema, path []string, diags *[]*Diagnostic) {
	n, _ := numericOf(value)
	if s.Minimum != nil && n < *s.Minimum {
		*diags = append(*diags, errDiag(path, value.Range, "value is less than minimum %v", *s.Minimum))
	}
	if s.Maximum != nil && n > *s.Maximum {
		*diags = append(*diags, errDiag(path, value.Range, "value is greater than maximum %v", *s.Maximum))
	}
	if s.ExclusiveMinimum != nil && n <= *s.ExclusiveMinimum {
		*diags = append(*diags, errDiag(path, value.Range, "value is not greater than exclusive minimum %v", *s.ExclusiveMinimum))
	}
	if s.ExclusiveMaximum != nil && n >= *s.ExclusiveMaximum {
		*diags = append(*diags, errDiag(path, value.Range, "value is not less than exclusive maximum %v", *s.ExclusiveMaximum))
	}
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

func joinPath(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}
