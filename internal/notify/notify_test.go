package notify

import (
	"testing"
	"time"
)

func TestQueueExpiresEntries(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	q := NewQueue(3 * time.Second)
	q.now = func() time.Time { return now }

	q.Notify("Plan Saved!", "Your weekend plan is stored.", KindSuccess)
	now = now.Add(time.Second)
	q.Notify("Export failed", "", "")

	got := q.Pending()
	if len(got) != 2 {
		t.Fatalf("pending = %d, want 2", len(got))
	}
	if got[1].Kind != KindDefault {
		t.Fatalf("empty kind should default, got %q", got[1].Kind)
	}

	now = now.Add(2500 * time.Millisecond)
	got = q.Pending()
	if len(got) != 1 || got[0].Title != "Export failed" {
		t.Fatalf("after expiry = %+v", got)
	}
}

func TestQueueDismiss(t *testing.T) {
	q := NewQueue(0)
	q.Notify("a", "", KindDefault)
	id := q.Pending()[0].ID

	if !q.Dismiss(id) {
		t.Fatalf("dismiss should succeed")
	}
	if q.Dismiss(id) {
		t.Fatalf("second dismiss should be a no-op")
	}
	if len(q.Pending()) != 0 {
		t.Fatalf("queue should be empty")
	}
}
