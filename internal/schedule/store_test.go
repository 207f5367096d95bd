package schedule

import (
	"errors"
	"fmt"
	"testing"

	"weekendly/internal/model"
	"weekendly/internal/timefmt"
)

func activity(id string, dur int) model.Activity {
	return model.Activity{
		ID:       id,
		Name:     id,
		Category: model.CategoryOutdoor,
		Duration: dur,
		Mood:     model.MoodEnergetic,
	}
}

func seqIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	})
}

func assertNoOverlap(t *testing.T, items []model.Item) {
	t.Helper()
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			a, b := items[i], items[j]
			if collide(a, b) {
				t.Fatalf("items overlap: %s@%d+%d and %s@%d+%d",
					a.ID, a.StartHour, a.Activity.Duration, b.ID, b.StartHour, b.Activity.Duration)
			}
		}
	}
}

func findItem(t *testing.T, items []model.Item, id string) model.Item {
	t.Helper()
	for _, it := range items {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("item %s not found", id)
	return model.Item{}
}

func TestPlaceOnEmptyDay(t *testing.T) {
	s := New(seqIDs())
	it, err := s.Place(model.Saturday, activity("brunch", 2), 9)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if it.StartHour != 9 || it.Day != model.Saturday || it.Activity.ID != "brunch" {
		t.Fatalf("unexpected item: %+v", it)
	}
	got := s.OccupiedHours(model.Saturday).Sorted()
	if len(got) != 2 || got[0] != 9 || got[1] != 10 {
		t.Fatalf("occupied = %v, want [9 10]", got)
	}
	if r := timefmt.FormatRange(it.StartHour, it.Activity.Duration); r != "9:00 AM → 11:00 AM" {
		t.Fatalf("range = %q", r)
	}
}

func TestPlaceShiftsConflictToNewEnd(t *testing.T) {
	s := New(seqIDs())
	a, _ := s.Place(model.Saturday, activity("a", 2), 9)
	b, err := s.Place(model.Saturday, activity("b", 1), 9)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	items := s.Items(model.Saturday)
	gotA := findItem(t, items, a.ID)
	if gotA.StartHour != timefmt.EndHour(b.StartHour, b.Activity.Duration) {
		t.Fatalf("a starts at %d, want %d", gotA.StartHour, timefmt.EndHour(9, 1))
	}
	if findItem(t, items, b.ID).StartHour != 9 {
		t.Fatalf("new item should keep its hour")
	}
	assertNoOverlap(t, items)
}

func TestPlaceCascadesDisplacedItems(t *testing.T) {
	s := New(seqIDs())
	a, _ := s.Place(model.Saturday, activity("a", 1), 10)
	b, _ := s.Place(model.Saturday, activity("b", 1), 11)
	c, _ := s.Place(model.Saturday, activity("c", 2), 13)

	// Covers 10 and 11, so a and b both need to move past 12.
	n, _ := s.Place(model.Saturday, activity("n", 2), 10)

	items := s.Items(model.Saturday)
	assertNoOverlap(t, items)

	want := map[string]int{n.ID: 10, a.ID: 12, b.ID: 13, c.ID: 14}
	for id, hour := range want {
		if got := findItem(t, items, id).StartHour; got != hour {
			t.Fatalf("%s starts at %d, want %d", id, got, hour)
		}
	}
}

func TestPlaceLeavesEarlierItemsAlone(t *testing.T) {
	s := New(seqIDs())
	early, _ := s.Place(model.Saturday, activity("early", 1), 8)
	s.Place(model.Saturday, activity("new", 3), 9)

	if got := findItem(t, s.Items(model.Saturday), early.ID).StartHour; got != 8 {
		t.Fatalf("early item moved to %d", got)
	}
}

func TestPlaceShiftsItemStartingBeforeNewOne(t *testing.T) {
	s := New(seqIDs())
	long, _ := s.Place(model.Saturday, activity("long", 4), 8)
	s.Place(model.Saturday, activity("new", 1), 10)

	if got := findItem(t, s.Items(model.Saturday), long.ID).StartHour; got != 11 {
		t.Fatalf("long item starts at %d, want 11", got)
	}
	assertNoOverlap(t, s.Items(model.Saturday))
}

func TestPlaceNeverOverlaps(t *testing.T) {
	durations := []int{1, 2, 3}
	for _, dur := range durations {
		for h := 0; h < timefmt.HoursPerDay; h++ {
			s := New(seqIDs())
			// One-hour items every other hour from midnight to 10 AM.
			for k := 0; k < 6; k++ {
				if _, err := s.Place(model.Sunday, activity(fmt.Sprintf("pre-%d", k), 1), k*2); err != nil {
					t.Fatalf("prefill: %v", err)
				}
			}
			it, err := s.Place(model.Sunday, activity("x", dur), h)
			if err != nil {
				t.Fatalf("place: %v", err)
			}
			items := s.Items(model.Sunday)
			got := findItem(t, items, it.ID)
			if got.StartHour != h || got.Activity.ID != "x" {
				t.Fatalf("placed item changed: %+v", got)
			}
			assertNoOverlap(t, items)
		}
	}
}

func TestPlaceDifferentDaysDoNotConflict(t *testing.T) {
	s := New(seqIDs())
	sat, _ := s.Place(model.Saturday, activity("a", 2), 9)
	sun, _ := s.Place(model.Sunday, activity("b", 2), 9)

	if got := findItem(t, s.Items(model.Saturday), sat.ID).StartHour; got != 9 {
		t.Fatalf("saturday item moved to %d", got)
	}
	if got := findItem(t, s.Items(model.Sunday), sun.ID).StartHour; got != 9 {
		t.Fatalf("sunday item moved to %d", got)
	}
}

func TestPlaceValidation(t *testing.T) {
	s := New()
	cases := []struct {
		day  model.Day
		dur  int
		hour int
	}{
		{model.Saturday, 1, -1},
		{model.Saturday, 1, 24},
		{"monday", 1, 9},
		{model.Sunday, 0, 9},
	}
	for _, c := range cases {
		_, err := s.Place(c.day, activity("a", c.dur), c.hour)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Place(%s, dur=%d, %d): expected ValidationError, got %v", c.day, c.dur, c.hour, err)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("rejected placements must not change state")
	}
}

func TestPlaceWrapsPastMidnight(t *testing.T) {
	s := New(seqIDs())
	late, _ := s.Place(model.Saturday, activity("late", 2), 22)
	s.Place(model.Saturday, activity("new", 3), 22)

	if got := findItem(t, s.Items(model.Saturday), late.ID).StartHour; got != 1 {
		t.Fatalf("late item starts at %d, want 1", got)
	}
	occ := s.OccupiedHours(model.Saturday)
	for _, h := range []int{22, 23, 0, 1, 2} {
		if !occ.Has(h) {
			t.Fatalf("hour %d should be occupied: %v", h, occ.Sorted())
		}
	}
}

func TestPlaceResolvesWrappedPushAgainstEarlyHours(t *testing.T) {
	s := New(seqIDs())
	early, _ := s.Place(model.Saturday, activity("early", 2), 0)
	late, _ := s.Place(model.Saturday, activity("late", 2), 22)
	n, err := s.Place(model.Saturday, activity("new", 2), 22)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	items := s.Items(model.Saturday)
	assertNoOverlap(t, items)
	want := map[string]int{n.ID: 22, late.ID: 0, early.ID: 2}
	for id, hour := range want {
		if got := findItem(t, items, id).StartHour; got != hour {
			t.Fatalf("%s starts at %d, want %d", id, got, hour)
		}
	}
}

func TestPlaceRejectsFullDay(t *testing.T) {
	s := New(seqIDs())
	for h := 0; h < timefmt.HoursPerDay; h += 4 {
		if _, err := s.Place(model.Sunday, activity(fmt.Sprintf("block-%d", h), 4), h); err != nil {
			t.Fatalf("prefill: %v", err)
		}
	}
	before := s.Items(model.Sunday)

	_, err := s.Place(model.Sunday, activity("extra", 1), 9)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	after := s.Items(model.Sunday)
	if len(after) != len(before) {
		t.Fatalf("items = %d, want %d", len(after), len(before))
	}
	for _, it := range before {
		if got := findItem(t, after, it.ID).StartHour; got != it.StartHour {
			t.Fatalf("%s moved from %d to %d on a rejected placement", it.ID, it.StartHour, got)
		}
	}
}

func TestPlaceLeavesOverlapFromMoveAlone(t *testing.T) {
	s := New(seqIDs())
	x, _ := s.Place(model.Saturday, activity("x", 2), 9)
	y, _ := s.Place(model.Saturday, activity("y", 2), 14)
	if _, err := s.Move(model.Saturday, y.ID, 9); err != nil {
		t.Fatalf("move: %v", err)
	}

	if _, err := s.Place(model.Saturday, activity("z", 1), 20); err != nil {
		t.Fatalf("place: %v", err)
	}
	items := s.Items(model.Saturday)
	for _, id := range []string{x.ID, y.ID} {
		if got := findItem(t, items, id).StartHour; got != 9 {
			t.Fatalf("%s starts at %d, want 9", id, got)
		}
	}
}

func TestMoveOverwritesWithoutResolving(t *testing.T) {
	s := New(seqIDs())
	a, _ := s.Place(model.Saturday, activity("a", 2), 9)
	b, _ := s.Place(model.Saturday, activity("b", 2), 14)

	moved, err := s.Move(model.Saturday, b.ID, 10)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.StartHour != 10 {
		t.Fatalf("moved start = %d", moved.StartHour)
	}
	if got := findItem(t, s.Items(model.Saturday), a.ID).StartHour; got != 9 {
		t.Fatalf("move must not shift other items, a at %d", got)
	}
}

func TestMoveAcrossDays(t *testing.T) {
	s := New(seqIDs())
	a, _ := s.Place(model.Saturday, activity("a", 1), 9)

	moved, err := s.Move(model.Sunday, a.ID, 15)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.Day != model.Sunday || moved.StartHour != 15 {
		t.Fatalf("unexpected moved item: %+v", moved)
	}
	if len(s.Items(model.Saturday)) != 0 || len(s.Items(model.Sunday)) != 1 {
		t.Fatalf("item should live only on sunday: %+v", s.Snapshot())
	}
}

func TestMoveErrors(t *testing.T) {
	s := New(seqIDs())
	a, _ := s.Place(model.Saturday, activity("a", 1), 9)

	if _, err := s.Move(model.Saturday, "missing", 10); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	var ve *ValidationError
	if _, err := s.Move(model.Saturday, a.ID, 30); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := New(seqIDs())
	a, _ := s.Place(model.Saturday, activity("a", 1), 9)
	s.Place(model.Sunday, activity("b", 1), 9)

	if !s.Remove(a.ID) {
		t.Fatalf("first remove should report true")
	}
	after := s.Snapshot()
	if s.Remove(a.ID) {
		t.Fatalf("second remove should be a no-op")
	}
	if s.Snapshot().Len() != after.Len() || s.Len() != 1 {
		t.Fatalf("second remove changed state")
	}
}

func TestClearEmptiesOccupiedHours(t *testing.T) {
	s := New(seqIDs())
	s.Place(model.Saturday, activity("a", 3), 9)
	s.Place(model.Sunday, activity("b", 2), 12)

	s.Clear()
	for _, d := range model.Days {
		if occ := s.OccupiedHours(d); len(occ) != 0 {
			t.Fatalf("%s occupied after clear: %v", d, occ.Sorted())
		}
	}
}

func TestIDsUniqueAcrossDays(t *testing.T) {
	s := New()
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		d := model.Days[i%2]
		it, err := s.Place(d, activity("a", 1), i)
		if err != nil {
			t.Fatalf("place: %v", err)
		}
		if seen[it.ID] {
			t.Fatalf("duplicate id %s", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(seqIDs())
	a, _ := s.Place(model.Saturday, activity("a", 1), 9)
	snap := s.Snapshot()
	s.Move(model.Saturday, a.ID, 12)
	if snap.Saturday[0].StartHour != 9 {
		t.Fatalf("snapshot mutated by later move")
	}
}

func TestRestoreDropsInvalidItems(t *testing.T) {
	s := New()
	dropped := s.Restore(Snapshot{
		Saturday: []model.Item{
			{ID: "1", Activity: activity("a", 1), StartHour: 9, Day: model.Sunday},
			{ID: "2", Activity: activity("b", 1), StartHour: 30},
		},
		Sunday: []model.Item{
			{ID: "1", Activity: activity("c", 1), StartHour: 10},
			{ID: "3", Activity: activity("d", 0), StartHour: 10},
		},
	})
	if dropped != 3 {
		t.Fatalf("dropped = %d, want 3", dropped)
	}
	sat := s.Items(model.Saturday)
	if len(sat) != 1 || sat[0].Day != model.Saturday {
		t.Fatalf("unexpected saturday: %+v", sat)
	}
	if len(s.Items(model.Sunday)) != 0 {
		t.Fatalf("sunday should be empty")
	}
}
