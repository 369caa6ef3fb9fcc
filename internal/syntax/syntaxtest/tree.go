// Package syntaxtest builds in-memory syntax trees for tests.
package syntaxtest

import (
	"github.com/bethropolis/tide-nvim/internal/syntax"
	"github.com/bethropolis/tide-nvim/internal/types"
)

// Node is a hand-built syntax.Node.
type Node struct {
	Type     string
	StartPos types.Position
	EndPos   types.Position
	Children []*Node
}

var _ syntax.Node = (*Node)(nil)

func (n *Node) Kind() string { return n.Type }
func (n *Node) ChildCount() int { return len(n.Children) }
func (n *Node) Child(i int) syntax.Node { return n.Children[i] }
func (n *Node) Start() types.Position { return n.StartPos }
func (n *Node) End() types.Position { return n.EndPos }

// Leaf builds a childless node spanning (sl, sc) to (el, ec).
func Leaf(kind string, sl, sc, el, ec int) *Node {
	return &Node{
		Type:     kind,
		StartPos: types.Position{Line: sl, Col: sc},
		EndPos:   types.Position{Line: el, Col: ec},
	}
}

// Branch builds an inner node spanning its first to last child.
func Branch(kind string, children ...*Node) *Node {
	n := &Node{Type: kind, Children: children}
	if len(children) > 0 {
		n.StartPos = children[0].StartPos
		n.EndPos = children[len(children)-1].EndPos
	}
	return n
}

// Tree is a syntax.Tree over a Node that records whether it was closed.
type Tree struct {
	RootNode *Node
	Closed   bool
}

func (t *Tree) Root() syntax.Node { return t.RootNode }
func (t *Tree) Close() { t.Closed = true }

// Count returns the number of nodes in the subtree rooted at n.
func Count(n *Node) int {
	total := 1
	for _, c := range n.Children {
		total += Count(c)
	}
	return total
}
