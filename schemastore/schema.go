// Package schemastore loads, caches, and resolves JSON Schema documents
// that describe the shape of a TOML document, per spec §4.5. Grounded
// on google/jsonschema-go's typed Schema struct (used as-is across the
// MacroPower-x, bennypowers-cem pack repos) rather than hand-rolling a
// schema decoder.
package schemastore

import (
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// Referable wraps a value that may still be an unresolved `$ref`. Spec
// §9 calls for lazy resolution: a schema is stored as written until
// something actually needs to walk through its `$ref`, at which point
// it is resolved once and the result cached in place.
type Referable[T any] struct {
	mu       sync.Mutex
	resolved bool
	ref      string
	value    T
}

// Unresolved constructs a Referable still pointing at ref.
func Unresolved[T any](ref string) *Referable[T] {
	return &Referable[T]{ref: ref}
}

// Resolved constructs a Referable that already holds its value.
func Resolved[T any](v T) *Referable[T] {
	return &Referable[T]{resolved: true, value: v}
}

// Ref returns the `$ref` string, or "" if this Referable is already
// resolved (or was constructed as resolved from the start).
func (r *Referable[T]) Ref() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolved {
		return ""
	}
	return r.ref
}

// IsResolved reports whether Get can be called without a resolver.
func (r *Referable[T]) IsResolved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved
}

// Resolve fills in value via resolve if not already resolved, caching
// a successful result. Calls are serialized, so once one succeeds
// resolve is not called again; a failed resolution is not cached, and
// the next caller retries it.
func (r *Referable[T]) Resolve(resolve func(ref string) (T, error)) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolved {
		return r.value, nil
	}
	v, err := resolve(r.ref)
	if err != nil {
		var zero T
		return zero, err
	}
	r.value = v
	r.resolved = true
	return r.value, nil
}

// Hint carries cheap-to-render metadata inlined alongside an unresolved
// $ref. Nothing in this module sets ValueSchema.Hint, and neither
// completion nor hover reads it. Restored from the original
// tombi-schema-store/src/store.rs per SPEC_FULL.md §D.3.
type Hint struct {
	Title       string
	Description string
	Deprecated  bool
}

// ArrayValuesOrder is the x-tombi-array-values-order extension:
// SPEC_FULL.md §D.1 restores it from crates/ast-editor/src/rule/
// array_values_order.rs as a lint, not a hard validation failure.
type ArrayValuesOrder int

const (
	ArrayValuesUnordered ArrayValuesOrder = iota
	ArrayValuesAscending
	ArrayValuesDescending
)

// ValueSchema wraps a *jsonschema.Schema with the tombi-specific
// extensions SPEC_FULL.md §D restores: x-tombi-toml-version and
// x-tombi-array-values-order. The underlying Schema struct (Type,
// Properties, Items, Required, Enum, Const, AllOf/AnyOf/OneOf, Ref,
// PatternProperties, AdditionalProperties, Minimum/Maximum, Pattern,
// Format, Title, Description, Deprecated) is jsonschema-go's own and is
// not duplicated here.
type ValueSchema struct {
	*jsonschema.Schema

	SourceURL        string
	TOMLVersion      string // x-tombi-toml-version, "" if unset
	ArrayValuesOrder ArrayValuesOrder
	Hint             *Hint // set only when this schema is still an unresolved $ref
}

// simplifyOneOf flattens a *jsonschema.Schema's OneOf branch list into
// a flat branch list when every branch names exactly a JSON Schema `type` and nothing
// else — the fixed-point rule spec §8/§9 describes for hover/completion
// ValueType display, folding nested oneOf([oneOf(...), ...]) down to one
// flat oneOf and keeping a trailing "nullable" marker when null
// participates.
func simplifyOneOf(branches []*jsonschema.Schema) ([]*jsonschema.Schema, bool) {
	var out []*jsonschema.Schema
	nullable := false
	changed := true
	for changed {
		changed = false
		var next []*jsonschema.Schema
		for _, b := range branches {
			if b == nil {
				continue
			}
			if len(b.OneOf) > 0 && isTypeOnly(b) {
				next = append(next, b.OneOf...)
				changed = true
				continue
			}
			if isNullType(b) {
				nullable = true
				changed = changed || false
				continue
			}
			next = append(next, b)
		}
		branches = next
	}
	out = branches
	return out, nullable
}

func isTypeOnly(s *jsonschema.Schema) bool {
	return s.Title == "" && s.Description == "" && s.Ref == ""
}

func isNullType(s *jsonschema.Schema) bool {
	if s.Type == "null" {
		return true
	}
	for _, t := range s.Types {
		if t == "null" && len(s.Types) == 1 {
			return true
		}
	}
	return false
}
