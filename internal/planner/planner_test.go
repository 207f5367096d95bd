package planner

import (
	"errors"
	"testing"

	"weekendly/internal/catalog"
	"weekendly/internal/dragdrop"
	"weekendly/internal/model"
	"weekendly/internal/notify"
	"weekendly/internal/persist"
	"weekendly/internal/schedule"
)

type memPersister struct {
	loaded schedule.Snapshot
	saves  []schedule.Snapshot
	err    error
}

func (m *memPersister) Load() schedule.Snapshot { return m.loaded }

func (m *memPersister) Save(s schedule.Snapshot) error {
	if m.err != nil {
		return m.err
	}
	m.saves = append(m.saves, s)
	return nil
}

type recorder struct {
	titles []string
	kinds  []notify.Kind
}

func (r *recorder) Notify(title, _ string, kind notify.Kind) {
	r.titles = append(r.titles, title)
	r.kinds = append(r.kinds, kind)
}

func TestEveryMutationFlushes(t *testing.T) {
	mp := &memPersister{}
	p := New(catalog.Default(), mp, &recorder{})

	it, err := p.Place(model.Saturday, "brunch", 9)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if _, err := p.Move(model.Saturday, it.ID, 11); err != nil {
		t.Fatalf("move: %v", err)
	}
	p.Remove(it.ID)
	p.Remove(it.ID)
	p.Clear()

	// place, move, first remove, clear; the second remove is a no-op.
	if len(mp.saves) != 4 {
		t.Fatalf("saves = %d, want 4", len(mp.saves))
	}
	if mp.saves[1].Saturday[0].StartHour != 11 {
		t.Fatalf("move not flushed: %+v", mp.saves[1])
	}
}

func TestDropFlushesOnlyWhenApplied(t *testing.T) {
	mp := &memPersister{}
	p := New(catalog.Default(), mp, nil)

	if out := p.Drop([]byte("junk"), model.Saturday, 9); out.Applied {
		t.Fatalf("junk drop applied")
	}
	if len(mp.saves) != 0 {
		t.Fatalf("ignored drop flushed")
	}

	hike, _ := p.Catalog().Get("hiking")
	raw, _ := dragdrop.Encode(dragdrop.NewActivity{Activity: hike})
	if out := p.Drop(raw, model.Sunday, 10); !out.Applied {
		t.Fatalf("drop not applied: %+v", out)
	}
	if len(mp.saves) != 1 || len(mp.saves[0].Sunday) != 1 {
		t.Fatalf("drop not flushed: %+v", mp.saves)
	}
	if got := p.Occupied(model.Sunday).Sorted(); len(got) != hike.Duration || got[0] != 10 {
		t.Fatalf("occupied = %v", got)
	}
}

func TestLoadRestoresStoredPlan(t *testing.T) {
	kv := persist.NewDiskv(t.TempDir())
	adapter := persist.NewAdapter(kv)

	first := New(catalog.Default(), adapter, nil)
	if _, err := first.Place(model.Sunday, "yoga", 8); err != nil {
		t.Fatalf("place: %v", err)
	}

	second := New(catalog.Default(), adapter, nil)
	snap := second.Snapshot()
	if len(snap.Sunday) != 1 || snap.Sunday[0].Activity.ID != "yoga" || snap.Sunday[0].StartHour != 8 {
		t.Fatalf("reloaded plan = %+v", snap)
	}
	if s := second.Summary(); s.TotalActivities != 1 || s.TotalHours != 1 {
		t.Fatalf("summary = %+v", s)
	}
}

func TestFlushFailureKeepsStateAndNotifies(t *testing.T) {
	mp := &memPersister{err: errors.New("disk full")}
	rec := &recorder{}
	p := New(catalog.Default(), mp, rec)

	if _, err := p.Place(model.Saturday, "brunch", 9); err != nil {
		t.Fatalf("place should succeed in memory: %v", err)
	}
	if p.Snapshot().Len() != 1 {
		t.Fatalf("in-memory change lost")
	}
	if len(rec.kinds) != 1 || rec.kinds[0] != notify.KindDestructive {
		t.Fatalf("expected destructive notification, got %+v", rec)
	}
}

func TestSaveNotifies(t *testing.T) {
	rec := &recorder{}
	p := New(catalog.Default(), &memPersister{}, rec)
	if err := p.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(rec.titles) != 1 || rec.titles[0] != "Plan Saved!" {
		t.Fatalf("notifications = %+v", rec.titles)
	}
}

func TestPlaceUnknownActivity(t *testing.T) {
	p := New(catalog.Default(), &memPersister{}, nil)
	if _, err := p.Place(model.Saturday, "skydiving", 9); err == nil {
		t.Fatalf("expected error")
	}
}
