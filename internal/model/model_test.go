package model

import "testing"

func TestActivityValidate(t *testing.T) {
	good := Activity{ID: "hike", Name: "Hike", Category: CategoryOutdoor, Duration: 3, Mood: MoodAdventurous}
	if err := good.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := Activity{ID: "", Category: "space", Duration: 0, Mood: "grumpy"}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay(" Sunday ")
	if err != nil || d != Sunday {
		t.Fatalf("ParseDay: got %q, %v", d, err)
	}
	if _, err := ParseDay("monday"); err == nil {
		t.Fatalf("expected error for monday")
	}
	if Saturday.Title() != "Saturday" {
		t.Fatalf("unexpected title %q", Saturday.Title())
	}
}

func TestItemOverlaps(t *testing.T) {
	it := Item{StartHour: 9, Activity: Activity{Duration: 2}}
	cases := []struct {
		start, dur int
		want       bool
	}{
		{9, 1, true},
		{10, 3, true},
		{11, 1, false},
		{7, 2, false},
		{7, 3, true},
	}
	for _, c := range cases {
		if got := it.Overlaps(c.start, c.dur); got != c.want {
			t.Fatalf("Overlaps(%d,%d) = %v, want %v", c.start, c.dur, got, c.want)
		}
	}
}
