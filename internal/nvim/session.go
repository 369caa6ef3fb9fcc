// Package nvim adapts a Neovim msgpack-rpc connection to the narrow editor
// surface the highlighter needs.
package nvim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/neovim/go-client/nvim"

	"github.com/bethropolis/tide-nvim/internal/event"
	"github.com/bethropolis/tide-nvim/internal/logger"
)

// Session owns one connection to Neovim for the life of the process.
//
// Notifications for subscribed topics are pushed onto a single intake queue
// from the RPC goroutine. The queue is closed once, when the connection ends.
type Session struct {
	v *nvim.Nvim

	intake chan event.Notification
	done   chan struct{}

	mu         sync.RWMutex
	closed     bool
	registered map[string]bool
	finishOnce sync.Once
	closeOnce  sync.Once
	closing    bool
}

// Dial connects to the Neovim listening on address (a unix socket path or
// host:port). queueSize bounds the intake queue.
func Dial(ctx context.Context, address string, queueSize int) (*Session, error) {
	v, err := nvim.Dial(address,
		nvim.DialContext(ctx),
		nvim.DialLogf(func(format string, args ...any) {
			logger.DebugTagf("rpc", format, args...)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	logger.InfoTagf("rpc", "Connected to nvim at %s", address)
	return newSession(v, queueSize), nil
}

func newSession(v *nvim.Nvim, queueSize int) *Session {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Session{
		v:          v,
		intake:     make(chan event.Notification, queueSize),
		done:       make(chan struct{}),
		registered: make(map[string]bool),
	}
}

// Notifications is the intake queue. It is closed when the connection ends.
func (s *Session) Notifications() <-chan event.Notification {
	return s.intake
}

// Serve runs the RPC read loop until the connection ends or Close is called.
// A disconnect by either side is not an error.
func (s *Session) Serve() error {
	err := s.v.Serve()
	s.finish()

	s.mu.RLock()
	closing := s.closing
	s.mu.RUnlock()
	if err == nil || closing || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		logger.InfoTagf("rpc", "Connection closed")
		return nil
	}
	return fmt.Errorf("rpc serve: %w", err)
}

// Close ends the connection. Serve returns and the intake queue closes.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closing = true
		s.mu.Unlock()
		close(s.done)
		err = s.v.Close()
	})
	return err
}

// finish closes the intake queue exactly once.
func (s *Session) finish() {
	s.finishOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.closed = true
		close(s.intake)
	})
}

// deliver enqueues a notification unless the session is shutting down.
func (s *Session) deliver(topic string, args []any) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	select {
	case s.intake <- event.Notification{Topic: event.Topic(topic), Args: args}:
		logger.DebugTagf("rpc", "Queued notification %q", topic)
	case <-s.done:
	}
}

// Command runs an ex command.
func (s *Session) Command(cmd string) error {
	return s.v.Command(cmd)
}

// Subscribe routes rpcnotify events named topic to the intake queue.
func (s *Session) Subscribe(topic string) error {
	s.mu.Lock()
	needsHandler := !s.registered[topic]
	s.registered[topic] = true
	s.mu.Unlock()

	if needsHandler {
		err := s.v.RegisterHandler(topic, func(args ...any) {
			s.deliver(topic, args)
		})
		if err != nil {
			return fmt.Errorf("register handler for %q: %w", topic, err)
		}
	}
	if err := s.v.Subscribe(topic); err != nil {
		return fmt.Errorf("subscribe %q: %w", topic, err)
	}
	return nil
}

// Buffers lists the handles of all loaded buffers.
func (s *Session) Buffers() ([]int, error) {
	bufs, err := s.v.Buffers()
	if err != nil {
		return nil, err
	}
	handles := make([]int, len(bufs))
	for i, b := range bufs {
		handles[i] = int(b)
	}
	return handles, nil
}

// BufferName returns the full file name of buffer.
func (s *Session) BufferName(buffer int) (string, error) {
	return s.v.BufferName(nvim.Buffer(buffer))
}

// BufferLineCount returns the number of lines in buffer.
func (s *Session) BufferLineCount(buffer int) (int, error) {
	return s.v.BufferLineCount(nvim.Buffer(buffer))
}

// BufferLines returns lines [start, end) of buffer.
func (s *Session) BufferLines(buffer, start, end int, strict bool) ([][]byte, error) {
	return s.v.BufferLines(nvim.Buffer(buffer), start, end, strict)
}

// AddHighlight paints group over [startCol, endCol) of line. endCol -1 runs
// to the end of the line; namespace -1 paints an ungrouped highlight.
func (s *Session) AddHighlight(buffer, namespace int, group string, line, startCol, endCol int) error {
	_, err := s.v.AddBufferHighlight(nvim.Buffer(buffer), namespace, group, line, startCol, endCol)
	return err
}

// CreateNamespace returns the id of the named namespace, creating it if needed.
func (s *Session) CreateNamespace(name string) (int, error) {
	return s.v.CreateNamespace(name)
}

// ClearNamespace removes every highlight in namespace from buffer.
func (s *Session) ClearNamespace(buffer, namespace int) error {
	return s.v.ClearBufferNamespace(nvim.Buffer(buffer), namespace, 0, -1)
}
