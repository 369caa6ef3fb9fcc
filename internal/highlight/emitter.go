package highlight

import (
	"github.com/bethropolis/tide-nvim/internal/logger"
)

// Painter is the editor call the emitter drives.
type Painter interface {
	AddHighlight(buffer, namespace int, group string, line, startCol, endCol int) error
}

// EmitStats summarises one Emit call.
type EmitStats struct {
	Painted int
	Skipped int // Normal instructions left unpainted
	Failed  int
}

// Emitter sends paint instructions to a Painter in order.
type Emitter struct {
	painter     Painter
	paintNormal bool
}

// NewEmitter creates an emitter. With paintNormal false, instructions
// classified as Normal are not sent.
func NewEmitter(painter Painter, paintNormal bool) *Emitter {
	return &Emitter{painter: painter, paintNormal: paintNormal}
}

// Emit issues one paint call per instruction. A failed call is logged and
// skipped; the rest of the instructions are still sent.
func (e *Emitter) Emit(instructions []PaintInstruction) EmitStats {
	var stats EmitStats
	for _, in := range instructions {
		if in.Group == Normal && !e.paintNormal {
			stats.Skipped++
			continue
		}
		err := e.painter.AddHighlight(in.Buffer, in.Namespace, string(in.Group),
			in.Range.Line, in.Range.StartCol, in.Range.EndCol)
		if err != nil {
			stats.Failed++
			logger.WarnTagf("pass", "Paint failed for %s: %v", in, err)
			continue
		}
		stats.Painted++
	}
	return stats
}
