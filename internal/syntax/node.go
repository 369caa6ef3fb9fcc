// Package syntax is the boundary to the parser: the tree and node views the
// highlighter reads, and a tree-sitter backed implementation of them.
package syntax

import (
	"context"

	"github.com/bethropolis/tide-nvim/internal/syntax/lang"
	"github.com/bethropolis/tide-nvim/internal/types"
)

// Node is a read-only view of one element of a syntax tree.
// A Node is only valid until its Tree is closed.
type Node interface {
	Kind() string
	ChildCount() int
	Child(i int) Node
	Start() types.Position
	End() types.Position
}

// Tree is the result of parsing one buffer snapshot.
type Tree interface {
	Root() Node
	Close()
}

// Parser parses a whole document. It always yields a tree for valid input;
// syntax errors surface as error-kind nodes.
type Parser interface {
	Parse(ctx context.Context, language *lang.Language, src []byte) (Tree, error)
}

// IsLeaf reports whether n has no children.
func IsLeaf(n Node) bool {
	return n.ChildCount() == 0
}
