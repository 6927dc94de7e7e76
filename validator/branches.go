package validator

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/google/jsonschema-go/jsonschema"

	tombi "github.com/maurice/tombi"
	"github.com/maurice/tombi/doctree"
	"github.com/maurice/tombi/schemastore"
)

// evalBranches validates value against s's oneOf/anyOf branches
// concurrently (spec §9 "async fan-out over oneOf", wired to
// golang.org/x/sync/errgroup per SPEC_FULL.md §C) but always reports in
// branch order, not completion order, so two runs against identical
// input produce byte-identical diagnostics.
func evalBranches(value doctree.Value, s *jsonschema.Schema, root *schemastore.ValueSchema, path []string) []*Diagnostic {
	if len(s.OneOf) > 0 {
		matches, _ := runBranches(value, s.OneOf, root, path)
		return reportOneOf(matches, path, value.Range)
	}
	if len(s.AnyOf) > 0 {
		matches, _ := runBranches(value, s.AnyOf, root, path)
		return reportAnyOf(matches, path, value.Range)
	}
	return nil
}

// runBranches validates value against every branch concurrently,
// returning per-branch results indexed by branch position so callers
// can report deterministically regardless of goroutine completion
// order.
func runBranches(value doctree.Value, branches []*jsonschema.Schema, root *schemastore.ValueSchema, path []string) ([]bool, [][]*Diagnostic) {
	matches := make([]bool, len(branches))
	allDiags := make([][]*Diagnostic, len(branches))
	var mu sync.Mutex

	var g errgroup.Group
	for i, branch := range branches {
		i, branch := i, branch
		g.Go(func() error {
			var d []*Diagnostic
			validateAgainst(value, branch, root, path, &d)
			mu.Lock()
			matches[i] = len(d) == 0
			allDiags[i] = d
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // validateAgainst never returns an error; branches only ever disagree via diagnostics

	return matches, allDiags
}

func reportOneOf(matches []bool, path []string, r tombi.Range) []*Diagnostic {
	matchCount := 0
	for _, m := range matches {
		if m {
			matchCount++
		}
	}
	switch matchCount {
	case 1:
		return nil
	case 0:
		return []*Diagnostic{errDiag(path, r, "value does not match any of the %d oneOf branches", len(matches))}
	default:
		return []*Diagnostic{errDiag(path, r, "value matches %d oneOf branches, want exactly 1", matchCount)}
	}
}

func reportAnyOf(matches []bool, path []string, r tombi.Range) []*Diagnostic {
	for _, m := range matches {
		if m {
			return nil
		}
	}
	return []*Diagnostic{errDiag(path, r, "value does not match any of the %d anyOf branches", len(matches))}
}
