package app

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/bethropolis/tide-nvim/internal/highlight"
	"github.com/bethropolis/tide-nvim/internal/logger"
	"github.com/bethropolis/tide-nvim/internal/syntax/lang"
)

// recompute runs one pass. A failed pass is logged; the loop keeps going.
func (a *App) recompute(ctx context.Context, reason string) {
	start := time.Now()
	stats, err := a.pass(ctx)
	if err != nil {
		logger.WarnTagf("pass", "Highlight pass after %q failed: %v", reason, err)
		return
	}
	a.passes.Add(1)
	logger.DebugTagf("pass", "Pass after %q in %v: painted=%d skipped=%d failed=%d",
		reason, time.Since(start), stats.Painted, stats.Skipped, stats.Failed)
}

// pass reads the buffer, parses it and repaints it from scratch.
func (a *App) pass(ctx context.Context) (highlight.EmitStats, error) {
	buffer := a.cfg.Nvim.Buffer

	src, err := a.readBuffer(buffer)
	if err != nil {
		return highlight.EmitStats{}, err
	}

	language := a.resolveLanguage(buffer)
	if language == nil {
		return highlight.EmitStats{}, fmt.Errorf("%w %d (fallback %q)", errNoLanguage, buffer, a.cfg.Highlight.Language)
	}

	tree, err := a.parser.Parse(ctx, language, src)
	if err != nil {
		return highlight.EmitStats{}, err
	}
	instructions := highlight.Compute(tree.Root(), a.classifier, buffer, a.namespace)
	tree.Close()

	if a.namespace != highlight.UngroupedNamespace {
		if err := a.editor.ClearNamespace(buffer, a.namespace); err != nil {
			logger.WarnTagf("pass", "Clearing namespace %d failed: %v", a.namespace, err)
		}
	}
	return highlight.NewEmitter(a.editor, a.cfg.Highlight.PaintNormal).Emit(instructions), nil
}

// readBuffer fetches the whole buffer as newline-terminated text.
func (a *App) readBuffer(buffer int) ([]byte, error) {
	count, err := a.editor.BufferLineCount(buffer)
	if err != nil {
		return nil, fmt.Errorf("line count of buffer %d: %w", buffer, err)
	}
	lines, err := a.editor.BufferLines(buffer, 0, count, true)
	if err != nil {
		return nil, fmt.Errorf("lines of buffer %d: %w", buffer, err)
	}
	if len(lines) == 0 {
		return nil, nil
	}
	src := bytes.Join(lines, []byte("\n"))
	return append(src, '\n'), nil
}

func (a *App) resolveLanguage(buffer int) *lang.Language {
	name, err := a.editor.BufferName(buffer)
	if err != nil {
		logger.DebugTagf("pass", "No name for buffer %d: %v", buffer, err)
	}
	return lang.Resolve(name, a.cfg.Highlight.Language)
}
