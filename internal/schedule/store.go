// Package schedule holds the per-day collections of placed activities and
// keeps each day free of overlapping items.
package schedule

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	appLog "weekendly/internal/log"
	"weekendly/internal/model"
	"weekendly/internal/timefmt"
)

// ErrItemNotFound is returned by Move when no day holds the given id.
var ErrItemNotFound = errors.New("schedule: item not found")

// ValidationError rejects a placement or move before any state changes.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schedule: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Snapshot is a copy of both days at one point in time.
type Snapshot struct {
	Saturday []model.Item `json:"saturday"`
	Sunday   []model.Item `json:"sunday"`
}

// Day returns the items of d.
func (s Snapshot) Day(d model.Day) []model.Item {
	if d == model.Sunday {
		return s.Sunday
	}
	return s.Saturday
}

// All returns Saturday items followed by Sunday items.
func (s Snapshot) All() []model.Item {
	out := make([]model.Item, 0, len(s.Saturday)+len(s.Sunday))
	out = append(out, s.Saturday...)
	return append(out, s.Sunday...)
}

// Len is the number of items across both days.
func (s Snapshot) Len() int {
	return len(s.Saturday) + len(s.Sunday)
}

// Store is the in-memory schedule for one weekend. It is not safe for
// concurrent use; the planner serializes access.
type Store struct {
	days  map[model.Day][]model.Item
	newID func() string
}

// Option customizes a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid-based item id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		days: map[model.Day][]model.Item{
			model.Saturday: {},
			model.Sunday:   {},
		},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Place adds activity to day at startHour. Items that intersect the new item
// are pushed forward to start when it ends, and anything a pushed item lands
// on is pushed after it in turn. Items no push reaches are left where they
// are, even if they already overlap each other. Hours are compared on the
// wrapped clock, so a push past midnight keeps resolving against the early
// hours of the same day. When an item would have to travel a full day the
// placement is rejected and the day is left unchanged.
func (s *Store) Place(day model.Day, activity model.Activity, startHour int) (model.Item, error) {
	if !day.Valid() {
		return model.Item{}, &ValidationError{Field: "day", Value: day, Reason: "must be saturday or sunday"}
	}
	if !timefmt.Valid(startHour) {
		return model.Item{}, &ValidationError{Field: "start hour", Value: startHour, Reason: "must be within 0-23"}
	}
	if activity.Duration <= 0 {
		return model.Item{}, &ValidationError{Field: "duration", Value: activity.Duration, Reason: "must be positive"}
	}

	item := model.Item{
		ID:        s.newID(),
		Activity:  activity,
		StartHour: startHour,
		Day:       day,
	}

	existing := append([]model.Item(nil), s.days[day]...)
	order := make([]int, len(existing))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return existing[order[a]].StartHour < existing[order[b]].StartHour
	})

	// queue holds indexes into existing of items that moved; -1 is the new item.
	queue := []int{-1}
	travelled := make([]int, len(existing))
	for len(queue) > 0 {
		mover := item
		if queue[0] >= 0 {
			mover = existing[queue[0]]
		}
		queue = queue[1:]

		for _, idx := range order {
			cur := existing[idx]
			if cur.ID == mover.ID || !collide(mover, cur) {
				continue
			}
			travelled[idx] += pushPast(&cur, mover)
			if collide(item, cur) {
				travelled[idx] += pushPast(&cur, item)
			}
			if travelled[idx] >= timefmt.HoursPerDay {
				return model.Item{}, &ValidationError{Field: "start hour", Value: startHour, Reason: "no free time left on " + string(day)}
			}
			existing[idx] = cur
			queue = append(queue, idx)
		}
	}

	for idx, cur := range existing {
		if from := s.days[day][idx].StartHour; cur.StartHour != from {
			appLog.Debug("schedule: shifted item",
				"day", day,
				"id", cur.ID,
				"activity", cur.Activity.ID,
				"from", from,
				"to", cur.StartHour,
			)
		}
	}

	s.days[day] = append(existing, item)
	return item, nil
}

// pushPast moves it forward on the wrapped clock to start when by ends and
// returns how many hours it travelled. A blocker that fills the whole day
// counts as a full day of travel.
func pushPast(it *model.Item, by model.Item) int {
	if by.Activity.Duration >= timefmt.HoursPerDay {
		return timefmt.HoursPerDay
	}
	d := timefmt.Normalize(by.StartHour + by.Activity.Duration - it.StartHour)
	if d == 0 {
		d = timefmt.HoursPerDay
	}
	it.StartHour = timefmt.Normalize(it.StartHour + d)
	return d
}

// collide reports whether a and b share an hour on the wrapped clock.
func collide(a, b model.Item) bool {
	hours := Occupied([]model.Item{a})
	for h := range Occupied([]model.Item{b}) {
		if hours.Has(h) {
			return true
		}
	}
	return false
}

// Move sets the start hour of an existing item. The item is found on either
// day; when day differs from its current day it moves into that day's
// collection. Unlike Place, Move does not resolve overlaps.
func (s *Store) Move(day model.Day, itemID string, newStartHour int) (model.Item, error) {
	if !day.Valid() {
		return model.Item{}, &ValidationError{Field: "day", Value: day, Reason: "must be saturday or sunday"}
	}
	if !timefmt.Valid(newStartHour) {
		return model.Item{}, &ValidationError{Field: "start hour", Value: newStartHour, Reason: "must be within 0-23"}
	}

	for _, from := range model.Days {
		items := s.days[from]
		for i := range items {
			if items[i].ID != itemID {
				continue
			}
			it := items[i]
			it.StartHour = newStartHour
			if from == day {
				items[i] = it
				return it, nil
			}
			s.days[from] = append(items[:i:i], items[i+1:]...)
			it.Day = day
			s.days[day] = append(s.days[day], it)
			return it, nil
		}
	}
	return model.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
}

// Remove deletes the item with itemID from whichever day holds it. It
// reports whether anything was removed; removing an unknown id is a no-op.
func (s *Store) Remove(itemID string) bool {
	for _, d := range model.Days {
		items := s.days[d]
		for i := range items {
			if items[i].ID == itemID {
				s.days[d] = append(items[:i:i], items[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Clear empties both days.
func (s *Store) Clear() {
	for _, d := range model.Days {
		s.days[d] = []model.Item{}
	}
}

// Items returns a copy of day's items in insertion order.
func (s *Store) Items(day model.Day) []model.Item {
	src := s.days[day]
	out := make([]model.Item, len(src))
	copy(out, src)
	return out
}

// Len is the number of items across both days.
func (s *Store) Len() int {
	return len(s.days[model.Saturday]) + len(s.days[model.Sunday])
}

// Snapshot copies both days.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Saturday: s.Items(model.Saturday),
		Sunday:   s.Items(model.Sunday),
	}
}

// Restore replaces the store contents with snap. Items with an out-of-range
// hour, a non-positive duration or an id already seen are dropped; each
// item's Day is set to the collection it came from. It returns the number of
// dropped items.
func (s *Store) Restore(snap Snapshot) int {
	seen := make(map[string]bool)
	dropped := 0
	for _, d := range model.Days {
		kept := make([]model.Item, 0, len(snap.Day(d)))
		for _, it := range snap.Day(d) {
			if it.ID == "" || seen[it.ID] || !timefmt.Valid(it.StartHour) || it.Activity.Duration <= 0 {
				dropped++
				continue
			}
			seen[it.ID] = true
			it.Day = d
			kept = append(kept, it)
		}
		s.days[d] = kept
	}
	return dropped
}

// HourSet is a set of grid hours.
type HourSet map[int]struct{}

// Has reports whether h is in the set.
func (hs HourSet) Has(h int) bool {
	_, ok := hs[h]
	return ok
}

// Sorted returns the hours in ascending order.
func (hs HourSet) Sorted() []int {
	out := make([]int, 0, len(hs))
	for h := range hs {
		out = append(out, h)
	}
	sort.Ints(out)
	return out
}

// OccupiedHours returns every hour covered by an item on day.
func (s *Store) OccupiedHours(day model.Day) HourSet {
	return Occupied(s.days[day])
}

// Occupied computes the covered hours of items, wrapping past midnight.
func Occupied(items []model.Item) HourSet {
	hs := make(HourSet)
	for _, it := range items {
		for i := 0; i < it.Activity.Duration && i < timefmt.HoursPerDay; i++ {
			hs[timefmt.Normalize(it.StartHour+i)] = struct{}{}
		}
	}
	return hs
}
