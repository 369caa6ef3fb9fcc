package highlight

import (
	"fmt"

	"github.com/bethropolis/tide-nvim/internal/span"
	"github.com/bethropolis/tide-nvim/internal/syntax"
	"github.com/bethropolis/tide-nvim/internal/types"
	"github.com/bethropolis/tide-nvim/internal/walk"
)

// PaintInstruction is one highlight call. It holds plain values only, so it
// stays valid after the tree it came from is closed.
type PaintInstruction struct {
	Buffer    int
	Namespace int
	Group     Group
	Range     types.ColumnRange
}

func (p PaintInstruction) String() string {
	return fmt.Sprintf("buf=%d ns=%d %s %s", p.Buffer, p.Namespace, p.Group, p.Range)
}

// Compute walks the leaves under root in level order and returns their paint
// instructions: per leaf, one per line it spans, first line to last.
func Compute(root syntax.Node, classifier *Classifier, buffer, namespace int) []PaintInstruction {
	var out []PaintInstruction
	walk.Leaves(root).Each(func(leaf syntax.Node) bool {
		group := classifier.Classify(leaf.Kind())
		for _, r := range span.Decompose(leaf.Start(), leaf.End()) {
			out = append(out, PaintInstruction{
				Buffer:    buffer,
				Namespace: namespace,
				Group:     group,
				Range:     r,
			})
		}
		return true
	})
	return out
}
