package model

import (
	"errors"
	"fmt"
	"strings"
)

// Category groups catalog activities for filtering.
type Category string

const (
	CategoryIndoor     Category = "indoor"
	CategoryOutdoor    Category = "outdoor"
	CategoryFood       Category = "food"
	CategorySocial     Category = "social"
	CategoryRelaxation Category = "relaxation"
	CategoryFitness    Category = "fitness"
	CategoryCulture    Category = "culture"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryIndoor,
	CategoryOutdoor,
	CategoryFood,
	CategorySocial,
	CategoryRelaxation,
	CategoryFitness,
	CategoryCulture,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Mood is the feel of an activity, used by the summary histogram.
type Mood string

const (
	MoodEnergetic   Mood = "energetic"
	MoodRelaxing    Mood = "relaxing"
	MoodSocial      Mood = "social"
	MoodCreative    Mood = "creative"
	MoodAdventurous Mood = "adventurous"
)

var Moods = []Mood{
	MoodEnergetic,
	MoodRelaxing,
	MoodSocial,
	MoodCreative,
	MoodAdventurous,
}

func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// Day is one of the two schedulable weekend days.
type Day string

const (
	Saturday Day = "saturday"
	Sunday   Day = "sunday"
)

// Days lists the weekend days in order.
var Days = []Day{Saturday, Sunday}

func (d Day) Valid() bool {
	return d == Saturday || d == Sunday
}

// Title returns the capitalized day name ("Saturday").
func (d Day) Title() string {
	s := string(d)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseDay accepts "saturday"/"sunday" in any case.
func ParseDay(s string) (Day, error) {
	d := Day(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown day %q", s)
	}
	return d, nil
}

// Activity is an immutable catalog entry.
type Activity struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	Duration    int      `json:"duration" yaml:"duration"` // hours
	Mood        Mood     `json:"mood" yaml:"mood"`
	Icon        string   `json:"icon" yaml:"icon"`
	Description string   `json:"description" yaml:"description"`
}

// Validate checks the fields every placed activity relies on.
func (a Activity) Validate() error {
	var errs []error
	if strings.TrimSpace(a.ID) == "" {
		errs = append(errs, errors.New("activity id is empty"))
	}
	if a.Duration <= 0 {
		errs = append(errs, fmt.Errorf("activity %q: duration must be positive, got %d", a.ID, a.Duration))
	}
	if !a.Category.Valid() {
		errs = append(errs, fmt.Errorf("activity %q: unknown category %q", a.ID, a.Category))
	}
	if !a.Mood.Valid() {
		errs = append(errs, fmt.Errorf("activity %q: unknown mood %q", a.ID, a.Mood))
	}
	return errors.Join(errs...)
}

// Item is an activity placed on a day at a given hour.
type Item struct {
	ID        string
	Activity  Activity
	StartHour int // 0..23
	Day       Day
}

// EndHour returns the exclusive end of the item on an unwrapped clock, so an
// item starting at 23 for two hours ends at 25.
func (i Item) EndHour() int {
	return i.StartHour + i.Activity.Duration
}

// Overlaps reports whether the item intersects [start, start+duration).
func (i Item) Overlaps(start, duration int) bool {
	return i.StartHour < start+duration && start < i.EndHour()
}
