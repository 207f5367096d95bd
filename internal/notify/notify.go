// Package notify queues short-lived user notifications ("toasts") for the
// web UI to pick up.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	appLog "weekendly/internal/log"
)

// Kind selects how a notification is presented.
type Kind string

const (
	KindDefault     Kind = "default"
	KindSuccess     Kind = "success"
	KindDestructive Kind = "destructive"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

// Notifier is the notification surface the core reports to.
type Notifier interface {
	Notify(title, description string, kind Kind)
}

// Notification is one queued message.
type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Kind        Kind      `json:"kind"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Queue is an in-memory Notifier. Expired entries are dropped lazily.
type Queue struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items []Notification
}

// NewQueue returns a Queue whose entries expire after ttl (DefaultTTL if
// ttl <= 0).
func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{ttl: ttl, now: time.Now}
}

func (q *Queue) Notify(title, description string, kind Kind) {
	if kind == "" {
		kind = KindDefault
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	q.items = append(q.items, Notification{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Kind:        kind,
		CreatedAt:   now,
		ExpiresAt:   now.Add(q.ttl),
	})
	appLog.Debug("notification queued", "title", title, "kind", kind)
}

// Pending returns the live notifications, oldest first.
func (q *Queue) Pending() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pruneLocked()
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Dismiss removes a notification before it expires.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

func (q *Queue) pruneLocked() {
	now := q.now()
	kept := q.items[:0]
	for _, n := range q.items {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	q.items = kept
}

// Log is a Notifier that only writes to the application log. The CLI uses it
// where there is nobody to show a toast to.
type Log struct{}

func (Log) Notify(title, description string, kind Kind) {
	if kind == KindDestructive {
		appLog.Warn(title, "description", description)
		return
	}
	appLog.Info(title, "description", description)
}
