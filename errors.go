package tombi

import "fmt"

// ParseError is a single lex/parse failure, carrying enough position
// information to render a caret diagnostic. Grounded on the teacher's
// parser.go ParseError{Message,Line,Column,Source}, generalized to a
// full Range instead of a single point.
type ParseError struct {
	Message string
	Range   Range
	Source  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Range.Start.Line, e.Range.Start.Col, e.Message)
}

func newParseError(msg string, r Range, source string) *ParseError {
	return &ParseError{Message: msg, Range: r, Source: source}
}
