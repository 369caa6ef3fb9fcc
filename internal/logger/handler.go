package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // attribute key the Tagf helpers attach and the filter reads

// debugFilter traces every filtering decision to stderr. Toggled by SetDebugFilter.
var debugFilter bool

// SetDebugFilter enables tracing of the filtering handler itself.
func SetDebugFilter(on bool) {
	debugFilter = on
}

func debugFilterf(format string, args ...any) {
	if debugFilter {
		fmt.Fprintf(os.Stderr, "[log filter] "+format+"\n", args...)
	}
}

// filteringHandler wraps a base slog.Handler and drops records by tag,
// package or file according to Config.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{
		baseHandler: base,
		cfg:         cfg,
	}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// allowed applies an enable/disable pair of sets to key.
// Disabled wins; an enabled set, when present, must contain key.
func allowed(enabled, disabled map[string]struct{}, key string) bool {
	key = strings.ToLower(key)
	if _, found := disabled[key]; found {
		return false
	}
	if enabled != nil {
		_, found := enabled[key]
		return found
	}
	return true
}

// recordSource resolves the package directory and base file name of the
// record's caller.
func recordSource(r slog.Record) (pkg, file string, ok bool) {
	if r.PC == 0 {
		return "", "", false
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "", "", false
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File), true
}

func recordTag(r slog.Record) (string, bool) {
	var tag string
	var found bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = a.Value.String()
			found = true
			return false
		}
		return true
	})
	return tag, found
}

// Handle drops filtered records and forwards the rest.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}

	if pkg, file, ok := recordSource(r); ok {
		if !allowed(h.cfg.enabledPackagesSet, h.cfg.disabledPackagesSet, pkg) {
			debugFilterf("dropped %q: package %s", r.Message, pkg)
			return nil
		}
		if !allowed(h.cfg.enabledFilesSet, h.cfg.disabledFilesSet, file) {
			debugFilterf("dropped %q: file %s", r.Message, file)
			return nil
		}
	}

	tag, tagged := recordTag(r)
	switch {
	case tagged && !allowed(h.cfg.enabledTagsSet, h.cfg.disabledTagsSet, tag):
		debugFilterf("dropped %q: tag %s", r.Message, tag)
		return nil
	case !tagged && h.cfg.enabledTagsSet != nil:
		// Only tagged messages pass once specific tags are enabled.
		debugFilterf("dropped %q: untagged", r.Message)
		return nil
	}

	return h.baseHandler.Handle(ctx, r)
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
}
