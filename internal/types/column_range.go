package types

import "fmt"

// EndOfLine marks a ColumnRange that runs to the end of its line.
// The value is the sentinel nvim_buf_add_highlight accepts for col_end.
const EndOfLine = -1

// ColumnRange is one line's share of a span.
type ColumnRange struct {
	Line     int
	StartCol int
	EndCol   int // EndOfLine for an open range
}

// Open reports whether the range extends to the end of its line.
func (r ColumnRange) Open() bool {
	return r.EndCol == EndOfLine
}

func (r ColumnRange) String() string {
	if r.Open() {
		return fmt.Sprintf("%d:%d-$", r.Line, r.StartCol)
	}
	return fmt.Sprintf("%d:%d-%d", r.Line, r.StartCol, r.EndCol)
}
