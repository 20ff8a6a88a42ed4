// Package notify collects transient, toast-style notifications surfaced to
// the operator alongside API responses.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Level classifies a notification for presentation purposes.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notification is one transient message. It never blocks a view; failures
// that need operator attention arrive here instead of crashing a flow.
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier is the write side consumed by services.
type Notifier interface {
	Notify(level Level, message string)
}

// Discard is a Notifier that drops everything. Useful in tests.
type Discard struct{}

func (Discard) Notify(Level, string) {}

const feedCapacity = 50

// Feed is a bounded in-memory notification buffer, newest first.
type Feed struct {
	logger *zap.Logger

	mu    sync.RWMutex
	items []Notification
}

// NewFeed constructs an empty feed.
func NewFeed(logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{logger: logger}
}

// Notify records a notification and mirrors it into the structured log.
func (f *Feed) Notify(level Level, message string) {
	n := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}

	f.mu.Lock()
	f.items = append([]Notification{n}, f.items...)
	if len(f.items) > feedCapacity {
		f.items = f.items[:feedCapacity]
	}
	f.mu.Unlock()

	f.logger.Info("notification", zap.String("level", string(level)), zap.String("message", message))
}

// Recent returns a copy of the buffered notifications, newest first.
func (f *Feed) Recent() []Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Notification, len(f.items))
	copy(out, f.items)
	return out
}

// Dismiss drops the notification with the given ID, if present.
func (f *Feed) Dismiss(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, n := range f.items {
		if n.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return
		}
	}
}
