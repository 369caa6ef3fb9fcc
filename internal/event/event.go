// internal/event/event.go
package event

// Topic names an rpcnotify event the editor sends to this process.
type Topic string

const (
	TopicTextChanged Topic = "text-changed"
	TopicCursorMoved Topic = "cursor-moved"
	TopicInsertEnter Topic = "insert-enter"

	// TopicConfigReloaded is raised locally when the config file changes.
	TopicConfigReloaded Topic = "config-reloaded"
)

// Notification is one inbound event. Args are passed through untouched;
// the highlighter only cares that something changed.
type Notification struct {
	Topic Topic
	Args  []any
}
