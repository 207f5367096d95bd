// Package planner is the single owner of the weekend schedule. It applies
// user intents (drops, removals, clears) one at a time and writes the result
// to storage after every change.
package planner

import (
	"fmt"
	"sync"

	"weekendly/internal/catalog"
	"weekendly/internal/dragdrop"
	appLog "weekendly/internal/log"
	"weekendly/internal/model"
	"weekendly/internal/notify"
	"weekendly/internal/schedule"
	"weekendly/internal/summary"
)

// Persister loads the plan once and saves it after each change.
type Persister interface {
	Load() schedule.Snapshot
	Save(snap schedule.Snapshot) error
}

// Planner serializes every mutation of the schedule behind one mutex, so
// concurrent requests are applied in the order they acquire it.
type Planner struct {
	mu       sync.Mutex
	store    *schedule.Store
	drops    *dragdrop.Controller
	catalog  *catalog.Catalog
	persist  Persister
	notifier notify.Notifier
}

// New loads the stored plan and returns a ready Planner.
func New(cat *catalog.Catalog, p Persister, n notify.Notifier, opts ...schedule.Option) *Planner {
	if n == nil {
		n = notify.Log{}
	}
	store := schedule.New(opts...)
	pl := &Planner{
		store:    store,
		drops:    dragdrop.NewController(store, cat.Get),
		catalog:  cat,
		persist:  p,
		notifier: n,
	}

	snap := p.Load()
	if dropped := store.Restore(snap); dropped > 0 {
		appLog.Warn("planner: dropped invalid stored items", "count", dropped)
	}
	appLog.Info("planner: plan loaded",
		"saturday", len(store.Items(model.Saturday)),
		"sunday", len(store.Items(model.Sunday)),
	)
	return pl
}

// Catalog returns the activity catalog used for drops.
func (p *Planner) Catalog() *catalog.Catalog {
	return p.catalog
}

// Drop applies raw drag data released over (day, hour).
func (p *Planner) Drop(raw []byte, day model.Day, hour int) dragdrop.Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := p.drops.Drop(raw, day, hour)
	if out.Applied {
		appLog.Info("drop applied", "action", out.Action, "day", day, "hour", hour, "item", out.Item.ID)
		p.flushLocked()
	}
	return out
}

// Place adds the catalog activity activityID to day at hour.
func (p *Planner) Place(day model.Day, activityID string, hour int) (model.Item, error) {
	a, ok := p.catalog.Get(activityID)
	if !ok {
		return model.Item{}, fmt.Errorf("planner: unknown activity %q", activityID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	it, err := p.store.Place(day, a, hour)
	if err != nil {
		return model.Item{}, err
	}
	p.flushLocked()
	return it, nil
}

// Move relocates an existing item.
func (p *Planner) Move(day model.Day, itemID string, hour int) (model.Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	it, err := p.store.Move(day, itemID, hour)
	if err != nil {
		return model.Item{}, err
	}
	p.flushLocked()
	return it, nil
}

// Remove deletes an item; unknown ids are a no-op and do not touch storage.
func (p *Planner) Remove(itemID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.store.Remove(itemID) {
		return false
	}
	p.flushLocked()
	return true
}

// Clear empties both days.
func (p *Planner) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.store.Clear()
	p.flushLocked()
}

// Save writes the plan and confirms it to the user.
func (p *Planner) Save() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.persist.Save(p.store.Snapshot()); err != nil {
		appLog.Error("planner: save failed", err)
		p.notifier.Notify("Save failed", "Your weekend plan could not be stored.", notify.KindDestructive)
		return err
	}
	p.notifier.Notify("Plan Saved!", "Your weekend plan is stored.", notify.KindSuccess)
	return nil
}

// Snapshot copies the current plan.
func (p *Planner) Snapshot() schedule.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Snapshot()
}

// Summary totals the current plan.
func (p *Planner) Summary() summary.Summary {
	return summary.Compute(p.Snapshot())
}

// Occupied returns the hours covered on day.
func (p *Planner) Occupied(day model.Day) schedule.HourSet {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.OccupiedHours(day)
}

// flushLocked writes the plan. A failed write leaves the in-memory change in
// place and tells the user.
func (p *Planner) flushLocked() {
	if err := p.persist.Save(p.store.Snapshot()); err != nil {
		appLog.Error("planner: flush failed", err)
		p.notifier.Notify("Save failed", "Your latest change is not stored yet.", notify.KindDestructive)
	}
}
