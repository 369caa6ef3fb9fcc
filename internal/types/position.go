// internal/types/position.go
package types

// Position is a location in a buffer snapshot.
// Line is the 0-based line index.
// Col is the 0-based byte offset within the line, the same unit tree-sitter
// points and nvim_buf_add_highlight use.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p sorts strictly before other (line, then column).
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}
