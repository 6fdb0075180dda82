// Package notify provides the transient toast notifications shown to the user.
package notify

import (
	"log/slog"
	"sync"
	"time"
)

// Kind is the toast style.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// DefaultDuration is how long a toast stays when no duration is given.
const DefaultDuration = 4 * time.Second

// Message is one toast.
type Message struct {
	Text     string        `json:"text"`
	Kind     Kind          `json:"kind"`
	Duration time.Duration `json:"duration"`
}

// Millis returns the display duration in milliseconds.
func (m Message) Millis() int64 {
	return m.Duration.Milliseconds()
}

// Notifier accepts toasts. It is fire-and-forget.
type Notifier interface {
	Notify(Message)
}

// Successf builds a success toast.
func Successf(text string, d time.Duration) Message {
	return Message{Text: text, Kind: Success, Duration: d}
}

// Failure builds an error toast with the default duration.
func Failure(text string) Message {
	return Message{Text: text, Kind: Error, Duration: DefaultDuration}
}

// Queue holds toasts until the next page render picks them up.
type Queue struct {
	mu    sync.Mutex
	items []Message
}

// Notify appends a toast.
func (q *Queue) Notify(m Message) {
	if m.Duration <= 0 {
		m.Duration = DefaultDuration
	}
	q.mu.Lock()
	q.items = append(q.items, m)
	q.mu.Unlock()
}

// Drain returns the queued toasts and empties the queue.
func (q *Queue) Drain() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

// Peek returns a copy of the queued toasts without removing them.
func (q *Queue) Peek() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Message(nil), q.items...)
}

// Len returns the number of queued toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Logged forwards toasts to Next after logging them.
type Logged struct {
	Next   Notifier
	Logger *slog.Logger
}

// Notify logs the toast and passes it on.
func (l Logged) Notify(m Message) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("notification", "kind", m.Kind, "text", m.Text, "duration", m.Duration.String())
	if l.Next != nil {
		l.Next.Notify(m)
	}
}
