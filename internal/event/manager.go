// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/tide-nvim/internal/logger"
)

// Handler reacts to a notification.
type Handler func(n Notification)

// Manager routes notifications to handlers by topic.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Topic][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Topic][]Handler),
	}
}

// Subscribe adds a handler for topic.
func (m *Manager) Subscribe(topic Topic, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[topic] = append(m.handlers[topic], handler)
	logger.DebugTagf("event", "Handler subscribed to %q", topic)
}

// Topics returns the topics that have at least one handler.
func (m *Manager) Topics() []Topic {
	m.mu.RLock()
	defer m.mu.RUnlock()

	topics := make([]Topic, 0, len(m.handlers))
	for t := range m.handlers {
		topics = append(topics, t)
	}
	return topics
}

// Dispatch runs the handlers for n.Topic synchronously, in subscription
// order, and reports whether any ran.
func (m *Manager) Dispatch(n Notification) bool {
	m.mu.RLock()
	handlers := make([]Handler, len(m.handlers[n.Topic]))
	copy(handlers, m.handlers[n.Topic])
	m.mu.RUnlock()

	if len(handlers) == 0 {
		logger.DebugTagf("event", "No handlers for %q", n.Topic)
		return false
	}

	logger.DebugTagf("event", "Dispatching %q to %d handler(s)", n.Topic, len(handlers))
	for _, handler := range handlers {
		handler(n)
	}
	return true
}
