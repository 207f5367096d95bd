package jobs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"weekendly/internal/model"
	"weekendly/internal/schedule"
)

type fakePlanner struct {
	snap    schedule.Snapshot
	cleared bool
}

func (f *fakePlanner) Snapshot() schedule.Snapshot { return f.snap }
func (f *fakePlanner) Clear() {
	f.cleared = true
	f.snap = schedule.Snapshot{}
}

type fakeRenderer struct{ calls int }

func (f *fakeRenderer) Render(context.Context, schedule.Snapshot) ([]byte, error) {
	f.calls++
	return []byte("png"), nil
}

func TestNewRejectsBadCronExpr(t *testing.T) {
	_, err := New(context.Background(), Config{ResetCron: "every monday"}, &fakePlanner{}, &fakeRenderer{})
	if err == nil {
		t.Fatalf("expected error for invalid cron spec")
	}
}

func TestNewRegistersConfiguredJobs(t *testing.T) {
	r, err := New(context.Background(), Config{PosterRefresh: "*/30 * * * *", ResetCron: "0 4 * * 1"}, &fakePlanner{}, &fakeRenderer{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("jobs = %d, want 2", r.Len())
	}

	none, _ := New(context.Background(), Config{}, &fakePlanner{}, &fakeRenderer{})
	if none.Len() != 0 {
		t.Fatalf("no jobs expected")
	}
}

func TestRefreshPosterWritesFile(t *testing.T) {
	dir := t.TempDir()
	fr := &fakeRenderer{}
	r, _ := New(context.Background(), Config{DataDir: dir}, &fakePlanner{}, fr)

	if err := r.RefreshPoster(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, PosterFile))
	if err != nil || string(data) != "png" {
		t.Fatalf("poster file = %q, %v", data, err)
	}
}

func TestReset(t *testing.T) {
	fp := &fakePlanner{snap: schedule.Snapshot{Saturday: []model.Item{{ID: "1"}}}}
	r, _ := New(context.Background(), Config{}, fp, &fakeRenderer{})
	r.Reset()
	if !fp.cleared {
		t.Fatalf("plan not cleared")
	}
}
