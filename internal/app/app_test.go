package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tide-nvim/internal/config"
	"github.com/bethropolis/tide-nvim/internal/event"
	"github.com/bethropolis/tide-nvim/internal/syntax"
	"github.com/bethropolis/tide-nvim/internal/syntax/lang"
)

const (
	greeting = "command " + config.DefaultGreeting
	farewell = "command " + config.DefaultFarewell
)

// countingParser wraps the tree-sitter parser and counts parses.
type countingParser struct {
	inner *syntax.TreeSitterParser
	calls int
}

func (p *countingParser) Parse(ctx context.Context, language *lang.Language, src []byte) (syntax.Tree, error) {
	p.calls++
	return p.inner.Parse(ctx, language, src)
}

func newTestApp(t *testing.T, cfg *config.Config, editor *fakeEditor) (*App, *countingParser) {
	t.Helper()
	lang.RegisterDefaults()
	parser := &countingParser{inner: syntax.NewTreeSitterParser()}
	t.Cleanup(parser.inner.Close)
	dial := func(context.Context) (Editor, error) { return editor, nil }
	return New(cfg, dial, parser), parser
}

func keywordsOnly() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Highlight.PaintNormal = false
	return cfg
}

func TestNotificationRereadsCurrentText(t *testing.T) {
	editor := newFakeEditor("x = 1\n", "def g():\n  pass\n")
	a, parser := newTestApp(t, keywordsOnly(), editor)

	editor.notify(event.TopicTextChanged)
	editor.disconnect()

	require.NoError(t, a.Run(context.Background()))

	want := []string{
		greeting,
		"read 0 0:1",
		"paint 0 -1 Identifier 0:0-1",
		"subscribe text-changed",
		"subscribe cursor-moved",
		"subscribe insert-enter",
		"read 0 0:2",
		"paint 0 -1 Keyword 0:0-3",
		"paint 0 -1 Identifier 0:4-5",
		farewell,
		"close",
	}
	if diff := cmp.Diff(want, editor.Calls()); diff != "" {
		t.Errorf("call sequence mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, parser.calls)
	assert.EqualValues(t, 2, a.Passes())
	assert.Equal(t, StateTerminated, a.State())
}

func TestEveryTopicTriggersOnePass(t *testing.T) {
	editor := newFakeEditor("def f():\n  pass\n")
	a, _ := newTestApp(t, keywordsOnly(), editor)

	editor.notify(event.TopicTextChanged)
	editor.notify(event.TopicCursorMoved)
	editor.notify(event.TopicInsertEnter)
	editor.notify("buf-enter") // never subscribed
	editor.disconnect()

	require.NoError(t, a.Run(context.Background()))
	assert.EqualValues(t, 4, a.Passes())
	assert.Len(t, editor.CallsWithPrefix("read "), 4)
}

func TestConnectFailureStopsBeforeAnything(t *testing.T) {
	lang.RegisterDefaults()
	parser := &countingParser{inner: syntax.NewTreeSitterParser()}
	defer parser.inner.Close()
	dial := func(context.Context) (Editor, error) { return nil, errors.New("no such socket") }

	a := New(config.NewDefaultConfig(), dial, parser)
	err := a.Run(context.Background())

	assert.ErrorIs(t, err, ErrConnect)
	assert.ErrorContains(t, err, "no such socket")
	assert.Zero(t, parser.calls)
	assert.Zero(t, a.Passes())
	assert.Equal(t, StateTerminated, a.State())
}

func TestSubscribeFailureIsFatal(t *testing.T) {
	editor := newFakeEditor("def f():\n  pass\n")
	editor.failSubscribe["cursor-moved"] = true
	a, _ := newTestApp(t, keywordsOnly(), editor)

	err := a.Run(context.Background())

	assert.ErrorIs(t, err, ErrSubscribe)
	assert.Equal(t, []string{"subscribe text-changed", "subscribe cursor-moved"}, editor.CallsWithPrefix("subscribe "))
	assert.Equal(t, []string{"close"}, editor.CallsWithPrefix("close"))
	assert.EqualValues(t, 1, a.Passes(), "the initial pass runs before subscribing")
}

func TestPaintFailuresDoNotAbortPass(t *testing.T) {
	editor := newFakeEditor("def f():\n  pass\n")
	editor.failPaintLine[0] = true
	a, _ := newTestApp(t, keywordsOnly(), editor)

	editor.notify(event.TopicTextChanged)
	editor.disconnect()

	require.NoError(t, a.Run(context.Background()))
	assert.Len(t, editor.CallsWithPrefix("paint "), 4, "both leaves attempted in both passes")
	assert.EqualValues(t, 2, a.Passes())
}

func TestReadFailureSkipsPass(t *testing.T) {
	editor := newFakeEditor("def f():\n  pass\n")
	editor.failLines = true
	a, parser := newTestApp(t, keywordsOnly(), editor)

	editor.notify(event.TopicTextChanged)
	editor.disconnect()

	require.NoError(t, a.Run(context.Background()))
	assert.Len(t, editor.CallsWithPrefix("read "), 2)
	assert.Zero(t, parser.calls)
	assert.Zero(t, a.Passes())
}

func TestUnknownLanguageSkipsPass(t *testing.T) {
	editor := newFakeEditor("def f():\n  pass\n")
	editor.name = "notes.txt"
	cfg := keywordsOnly()
	cfg.Highlight.Language = "cobol"
	a, parser := newTestApp(t, cfg, editor)
	editor.disconnect()

	require.NoError(t, a.Run(context.Background()))
	assert.Zero(t, parser.calls)
	assert.Empty(t, editor.CallsWithPrefix("paint "))
}

func TestNamespaceClearedBeforeEachPass(t *testing.T) {
	editor := newFakeEditor("def f():\n  pass\n")
	editor.namespaceID = 7
	cfg := keywordsOnly()
	cfg.Highlight.Namespace = "tide"
	a, _ := newTestApp(t, cfg, editor)
	editor.disconnect()

	require.NoError(t, a.Run(context.Background()))
	want := []string{
		greeting,
		"namespace tide",
		"read 0 0:2",
		"clear 0 7",
		"paint 0 7 Keyword 0:0-3",
		"paint 0 7 Identifier 0:4-5",
	}
	assert.Equal(t, want, editor.Calls()[:len(want)])
}

func TestReplayIsIdempotent(t *testing.T) {
	run := func() []string {
		editor := newFakeEditor("x = 1\n", "def g(a):\n  return a\n", "x = 1\n")
		a, _ := newTestApp(t, config.NewDefaultConfig(), editor)
		editor.notify(event.TopicTextChanged)
		editor.notify(event.TopicInsertEnter)
		editor.disconnect()
		require.NoError(t, a.Run(context.Background()))
		return editor.CallsWithPrefix("paint ")
	}

	first := run()
	require.NotEmpty(t, first)
	assert.Empty(t, cmp.Diff(first, run()))
}

func TestCancelWhileIdle(t *testing.T) {
	editor := newFakeEditor("x = 1\n")
	a, _ := newTestApp(t, keywordsOnly(), editor)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool { return a.State() == StateIdle }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, []string{farewell}, editor.CallsWithPrefix(farewell))
}

func TestConfigReloadRepaints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[highlight]\npaint_normal = false\n"), 0o644))
	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	editor := newFakeEditor("x = 1\n")
	a, _ := newTestApp(t, cfg, editor)
	changes := make(chan struct{}, 1)
	a.WatchConfig(changes)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()
	require.Eventually(t, func() bool { return a.State() == StateIdle }, time.Second, 5*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("[highlight.rules]\nidentifier = \"Function\"\n"), 0o644))
	changes <- struct{}{}

	require.Eventually(t, func() bool {
		return len(editor.CallsWithPrefix("paint 0 -1 Function 0:0-1")) == 1
	}, time.Second, 5*time.Millisecond)

	editor.disconnect()
	require.NoError(t, <-done)
	assert.EqualValues(t, 2, a.Passes())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "terminated", StateTerminated.String())
	assert.Equal(t, "unknown", State(42).String())
}
