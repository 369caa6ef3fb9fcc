// Package span splits a node's extent into the per-line column ranges the
// editor's highlight API addresses.
package span

import "github.com/bethropolis/tide-nvim/internal/types"

// Decompose returns one ColumnRange per line from start.Line to end.Line.
//
// A single-line span maps to {start.Line, start.Col, end.Col}. A multi-line
// span opens on its first line from start.Col, covers every intermediate line
// fully and closes on the last line at end.Col. start must not sort after end.
func Decompose(start, end types.Position) []types.ColumnRange {
	if start.Line == end.Line {
		return []types.ColumnRange{{Line: start.Line, StartCol: start.Col, EndCol: end.Col}}
	}

	ranges := make([]types.ColumnRange, 0, end.Line-start.Line+1)
	ranges = append(ranges, types.ColumnRange{Line: start.Line, StartCol: start.Col, EndCol: types.EndOfLine})
	for line := start.Line + 1; line < end.Line; line++ {
		ranges = append(ranges, types.ColumnRange{Line: line, StartCol: 0, EndCol: types.EndOfLine})
	}
	return append(ranges, types.ColumnRange{Line: end.Line, StartCol: 0, EndCol: end.Col})
}
