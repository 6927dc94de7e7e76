package lspserver

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	tombi "github.com/maurice/tombi"
)

// toProtocolPosition converts a 1-indexed, UTF-16-column tombi.Position
// into LSP's 0-indexed protocol.Position.
func toProtocolPosition(p tombi.Position) protocol.Position {
	return protocol.Position{Line: uint32(p.Line - 1), Character: uint32(p.Col - 1)}
}

// toProtocolRange converts a tombi.Range to its LSP equivalent.
func toProtocolRange(r tombi.Range) protocol.Range {
	return protocol.Range{Start: toProtocolPosition(r.Start), End: toProtocolPosition(r.End)}
}

// posLessOrEqual orders Positions by line then column.
func posLessOrEqual(a, b tombi.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Col <= b.Col
}

// posInRange reports whether pos falls within r, counting both r.Start
// and r.End as inside.
func posInRange(pos tombi.Position, r tombi.Range) bool {
	return posLessOrEqual(r.Start, pos) && posLessOrEqual(pos, r.End)
}
