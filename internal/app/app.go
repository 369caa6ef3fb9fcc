// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/bethropolis/tide-nvim/internal/config"
	"github.com/bethropolis/tide-nvim/internal/event"
	"github.com/bethropolis/tide-nvim/internal/highlight"
	"github.com/bethropolis/tide-nvim/internal/logger"
	"github.com/bethropolis/tide-nvim/internal/syntax"
)

// App is the reactive highlight loop for one editor session.
type App struct {
	cfg    *config.Config
	dial   Dialer
	parser syntax.Parser
	events *event.Manager

	// Owned by the loop goroutine.
	editor     Editor
	classifier *highlight.Classifier
	namespace  int

	configChanges <-chan struct{}

	state  atomic.Int32
	passes atomic.Int64
}

// New wires an App. Every configured topic, and the local config-reloaded
// topic, is routed to a full recompute pass.
func New(cfg *config.Config, dial Dialer, parser syntax.Parser) *App {
	a := &App{
		cfg:        cfg,
		dial:       dial,
		parser:     parser,
		events:     event.NewManager(),
		classifier: highlight.NewClassifier(cfg.Highlight.Rules),
		namespace:  highlight.UngroupedNamespace,
	}
	for _, topic := range cfg.Nvim.Topics {
		a.events.Subscribe(event.Topic(topic), a.handleChange)
	}
	a.events.Subscribe(event.TopicConfigReloaded, a.handleConfigReloaded)
	a.state.Store(int32(StateConnecting))
	return a
}

// WatchConfig makes each signal on changes reload highlight rules and
// re-highlight. Must be called before Run.
func (a *App) WatchConfig(changes <-chan struct{}) {
	a.configChanges = changes
}

// State returns the current lifecycle stage.
func (a *App) State() State {
	return State(a.state.Load())
}

// Passes returns how many highlight passes completed.
func (a *App) Passes() int64 {
	return a.passes.Load()
}

func (a *App) setState(s State) {
	logger.DebugTagf("app", "State: %s -> %s", a.State(), s)
	a.state.Store(int32(s))
}

// Run connects, highlights once, subscribes and then re-highlights after
// every notification until the session ends or ctx is cancelled.
// Connection and subscription failures are returned; everything else is
// logged and the loop carries on.
func (a *App) Run(ctx context.Context) error {
	defer a.setState(StateTerminated)

	a.setState(StateConnecting)
	editor, err := a.dial(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnect, err)
	}
	a.editor = editor

	g, gctx := errgroup.WithContext(ctx)
	g.Go(editor.Serve)
	g.Go(func() error {
		defer editor.Close()
		return a.loop(gctx)
	})
	return g.Wait()
}

func (a *App) loop(ctx context.Context) error {
	if err := a.editor.Command(a.cfg.Nvim.Greeting); err != nil {
		return fmt.Errorf("%w: greeting: %w", ErrConnect, err)
	}
	a.logBuffers()
	a.setupNamespace()

	a.recompute(ctx, "connect")

	for _, topic := range a.cfg.Nvim.Topics {
		if err := a.editor.Subscribe(topic); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrSubscribe, topic, err)
		}
		logger.InfoTagf("rpc", "Subscribed to %q", topic)
	}
	a.setState(StateIdle)

	intake := a.editor.Notifications()
	for {
		select {
		case n, ok := <-intake:
			if !ok {
				a.farewell()
				return nil
			}
			if !a.events.Dispatch(n) {
				logger.DebugTagf("event", "Ignoring notification %q", n.Topic)
			}
		case <-a.configChanges:
			a.events.Dispatch(event.Notification{Topic: event.TopicConfigReloaded})
		case <-ctx.Done():
			logger.InfoTagf("app", "Shutting down: %v", context.Cause(ctx))
			a.farewell()
			return nil
		}
	}
}

func (a *App) farewell() {
	if err := a.editor.Command(a.cfg.Nvim.Farewell); err != nil {
		logger.DebugTagf("rpc", "Farewell not delivered: %v", err)
	}
}

func (a *App) logBuffers() {
	buffers, err := a.editor.Buffers()
	if err != nil {
		logger.WarnTagf("rpc", "Listing buffers failed: %v", err)
		return
	}
	for _, b := range buffers {
		name, err := a.editor.BufferName(b)
		if err != nil {
			name = fmt.Sprintf("<%v>", err)
		}
		logger.InfoTagf("rpc", "Buffer %d: %s", b, name)
	}
}

// setupNamespace resolves the configured namespace, falling back to
// ungrouped highlights when it cannot be created.
func (a *App) setupNamespace() {
	name := a.cfg.Highlight.Namespace
	if name == "" {
		return
	}
	ns, err := a.editor.CreateNamespace(name)
	if err != nil {
		logger.WarnTagf("rpc", "Creating namespace %q failed, painting ungrouped: %v", name, err)
		return
	}
	a.namespace = ns
	logger.DebugTagf("rpc", "Using namespace %q (%d)", name, ns)
}

func (a *App) handleChange(n event.Notification) {
	a.recompute(context.Background(), string(n.Topic))
}

func (a *App) handleConfigReloaded(n event.Notification) {
	path := a.cfg.Path()
	if path == "" {
		logger.DebugTagf("config", "No config file to reload")
		return
	}
	rules, err := config.LoadRules(path)
	if err != nil {
		logger.WarnTagf("config", "Keeping previous highlight rules: %v", err)
		return
	}
	a.classifier = highlight.NewClassifier(rules)
	logger.InfoTagf("config", "Reloaded %d highlight rules from %s", a.classifier.Rules(), path)
	a.recompute(context.Background(), string(n.Topic))
}
