package app

import (
	"context"

	"github.com/bethropolis/tide-nvim/internal/event"
	"github.com/bethropolis/tide-nvim/internal/highlight"
)

// Editor is the editor session the loop drives. *nvim.Session implements it.
type Editor interface {
	highlight.Painter

	Command(cmd string) error
	Subscribe(topic string) error
	Buffers() ([]int, error)
	BufferName(buffer int) (string, error)
	BufferLineCount(buffer int) (int, error)
	BufferLines(buffer, start, end int, strict bool) ([][]byte, error)
	CreateNamespace(name string) (int, error)
	ClearNamespace(buffer, namespace int) error

	// Notifications is the intake queue; it closes when the session ends.
	Notifications() <-chan event.Notification
	// Serve blocks until the session ends.
	Serve() error
	Close() error
}

// Dialer opens the editor session.
type Dialer func(ctx context.Context) (Editor, error)
