// Package summary totals the planned hours and activities across the weekend.
package summary

import (
	"weekendly/internal/model"
	"weekendly/internal/schedule"
)

// DayTotals holds the count and hours planned for one day.
type DayTotals struct {
	Activities int `json:"activities"`
	Hours      int `json:"hours"`
}

// Summary is derived from a schedule snapshot and never stored.
type Summary struct {
	TotalActivities   int                     `json:"total_activities"`
	TotalHours        int                     `json:"total_hours"`
	MoodHistogram     map[model.Mood]int      `json:"mood_histogram"`
	CategoryHistogram map[model.Category]int  `json:"category_histogram"`
	Days              map[model.Day]DayTotals `json:"days"`
}

// Compute totals the snapshot. An empty snapshot yields zero totals and empty
// (non-nil) histograms.
func Compute(snap schedule.Snapshot) Summary {
	s := Summary{
		MoodHistogram:     make(map[model.Mood]int),
		CategoryHistogram: make(map[model.Category]int),
		Days:              make(map[model.Day]DayTotals, len(model.Days)),
	}
	for _, d := range model.Days {
		var dt DayTotals
		for _, it := range snap.Day(d) {
			dt.Activities++
			dt.Hours += it.Activity.Duration
			s.MoodHistogram[it.Activity.Mood]++
			s.CategoryHistogram[it.Activity.Category]++
		}
		s.Days[d] = dt
		s.TotalActivities += dt.Activities
		s.TotalHours += dt.Hours
	}
	return s
}
