// Package walk traverses syntax trees in level order.
//
// A Walker keeps a queue of pending nodes seeded with its root. Each call to
// Next removes the earliest queued node, appends that node's children to the
// back of the queue and returns it, so a tree is visited breadth-first.
// Walkers are single use; construct a new one from any node to restart.
package walk

import (
	"github.com/bethropolis/tide-nvim/internal/syntax"
)

// Walker yields every node reachable from its root exactly once.
type Walker struct {
	queue      []syntax.Node
	leavesOnly bool
}

// New returns a walker over root and all of its descendants.
func New(root syntax.Node) *Walker {
	return &Walker{queue: []syntax.Node{root}}
}

// Leaves returns a walker that only yields nodes without children.
func Leaves(root syntax.Node) *Walker {
	w := New(root)
	w.leavesOnly = true
	return w
}

// Next returns the next node, or false once the tree is exhausted.
func (w *Walker) Next() (syntax.Node, bool) {
	for len(w.queue) > 0 {
		n := w.queue[0]
		w.queue[0] = nil
		w.queue = w.queue[1:]

		count := n.ChildCount()
		for i := 0; i < count; i++ {
			w.queue = append(w.queue, n.Child(i))
		}
		if w.leavesOnly && count > 0 {
			continue
		}
		return n, true
	}
	return nil, false
}

// Each calls fn for every remaining node until fn returns false.
func (w *Walker) Each(fn func(syntax.Node) bool) {
	for n, ok := w.Next(); ok; n, ok = w.Next() {
		if !fn(n) {
			return
		}
	}
}

// Collect drains the walker into a slice.
func Collect(w *Walker) []syntax.Node {
	var nodes []syntax.Node
	w.Each(func(n syntax.Node) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}
