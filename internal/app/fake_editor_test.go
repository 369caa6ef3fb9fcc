package app

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bethropolis/tide-nvim/internal/event"
	"github.com/bethropolis/tide-nvim/internal/types"
)

// fakeEditor serves one text snapshot per buffer read, in order, repeating
// the last one, and records every call it receives.
type fakeEditor struct {
	mu        sync.Mutex
	calls     []string
	snapshots []string
	reads     int
	name      string

	failSubscribe map[string]bool
	failPaintLine map[int]bool
	failLines     bool
	namespaceID   int

	intake    chan event.Notification
	quit      chan struct{}
	quitOnce  sync.Once
	closeOnce sync.Once
}

func newFakeEditor(snapshots ...string) *fakeEditor {
	return &fakeEditor{
		snapshots:     snapshots,
		name:          "/src/example.py",
		failSubscribe: map[string]bool{},
		failPaintLine: map[int]bool{},
		intake:        make(chan event.Notification, 16),
		quit:          make(chan struct{}),
	}
}

func (f *fakeEditor) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeEditor) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallsWithPrefix filters the call log.
func (f *fakeEditor) CallsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range f.Calls() {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeEditor) notify(topic event.Topic) {
	f.intake <- event.Notification{Topic: topic}
}

// disconnect ends the session as if nvim went away.
func (f *fakeEditor) disconnect() {
	f.quitOnce.Do(func() { close(f.quit) })
}

func (f *fakeEditor) Command(cmd string) error {
	f.record("command %s", cmd)
	return nil
}

func (f *fakeEditor) Subscribe(topic string) error {
	f.record("subscribe %s", topic)
	if f.failSubscribe[topic] {
		return errors.New("subscription refused")
	}
	return nil
}

func (f *fakeEditor) Buffers() ([]int, error) {
	return []int{1}, nil
}

func (f *fakeEditor) BufferName(int) (string, error) {
	return f.name, nil
}

func (f *fakeEditor) current() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := min(f.reads, len(f.snapshots)-1)
	return f.snapshots[i]
}

func (f *fakeEditor) BufferLineCount(int) (int, error) {
	return len(bytes.Split([]byte(strings.TrimSuffix(f.current(), "\n")), []byte("\n"))), nil
}

func (f *fakeEditor) BufferLines(buffer, start, end int, strict bool) ([][]byte, error) {
	text := f.current()
	f.record("read %d %d:%d", buffer, start, end)
	f.mu.Lock()
	f.reads++
	f.mu.Unlock()
	if f.failLines {
		return nil, errors.New("buffer unloaded")
	}
	lines := bytes.Split([]byte(strings.TrimSuffix(text, "\n")), []byte("\n"))
	return lines[start:end], nil
}

func (f *fakeEditor) AddHighlight(buffer, namespace int, group string, line, startCol, endCol int) error {
	r := types.ColumnRange{Line: line, StartCol: startCol, EndCol: endCol}
	f.record("paint %d %d %s %s", buffer, namespace, group, r)
	if f.failPaintLine[line] {
		return errors.New("line out of range")
	}
	return nil
}

func (f *fakeEditor) CreateNamespace(name string) (int, error) {
	f.record("namespace %s", name)
	return f.namespaceID, nil
}

func (f *fakeEditor) ClearNamespace(buffer, namespace int) error {
	f.record("clear %d %d", buffer, namespace)
	return nil
}

func (f *fakeEditor) Notifications() <-chan event.Notification {
	return f.intake
}

func (f *fakeEditor) Serve() error {
	<-f.quit
	close(f.intake)
	return nil
}

func (f *fakeEditor) Close() error {
	f.closeOnce.Do(func() { f.record("close") })
	f.disconnect()
	return nil
}
