package doctree

import (
	"fmt"

	tombi "github.com/maurice/tombi"
)

// DiagnosticKind identifies the class of merge-time error.
type DiagnosticKind int

const (
	ConflictTable DiagnosticKind = iota
	DuplicateKey
	IncompleteNode
)

// Diagnostic is a single document-tree construction error: a redefined
// table, a key assigned twice within the same table, or a value the
// parser could not complete. Embeds tombi.Range per SPEC_FULL.md §B.
type Diagnostic struct {
	Kind    DiagnosticKind
	Path    []string
	Range   tombi.Range
	Message string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s", d.Range.Start.Line, d.Range.Start.Col, d.Message)
}

func newConflict(path []string, r tombi.Range) *Diagnostic {
	return &Diagnostic{
		Kind:    ConflictTable,
		Path:    path,
		Range:   r,
		Message: fmt.Sprintf("table %q is already defined and cannot be redefined here", joinPath(path)),
	}
}

func newDuplicateKey(path []string, r tombi.Range) *Diagnostic {
	return &Diagnostic{
		Kind:    DuplicateKey,
		Path:    path,
		Range:   r,
		Message: fmt.Sprintf("key %q is already defined in this table", joinPath(path)),
	}
}

func newIncomplete(path []string, r tombi.Range) *Diagnostic {
	return &Diagnostic{
		Kind:    IncompleteNode,
		Path:    path,
		Range:   r,
		Message: fmt.Sprintf("value at %q could not be parsed", joinPath(path)),
	}
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
