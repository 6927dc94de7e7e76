// Package doctree builds the merged document tree from a tombi CST:
// the "second parse" that applies TOML's table/dotted-key/array-of-
// tables merge semantics over the lossless syntax tree, grounded on
// the teacher's validate.go tableState/docValidator descent.
package doctree

import tombi "github.com/maurice/tombi"

// ValueKind discriminates the tagged Value union.
type ValueKind int

const (
	ValueIncomplete ValueKind = iota
	ValueString
	ValueInteger
	ValueFloat
	ValueBoolean
	ValueOffsetDateTime
	ValueLocalDateTime
	ValueLocalDate
	ValueLocalTime
	ValueArray
	ValueTable
)

// Value is a single leaf or container value in the document tree. Only
// the field matching Kind is populated; Incomplete marks a position the
// parser could not produce a value for (a parse error already recorded
// against the underlying CST), so downstream consumers can still walk
// the tree instead of aborting.
type Value struct {
	Kind    ValueKind
	Str     string
	Int     int64
	Float   float64
	Bool    bool
	Text    string // raw source text for date/time values, kept verbatim
	Array   []Value
	Table   *Table
	Range   tombi.Range
}

func (v Value) IsIncomplete() bool { return v.Kind == ValueIncomplete }
