// Package poster renders the weekend plan as an HTML page and rasterizes it
// into the shareable PNG.
package poster

import (
	"sort"

	"weekendly/internal/model"
	"weekendly/internal/schedule"
	"weekendly/internal/summary"
	"weekendly/internal/timefmt"
)

// FileName is the download name of the exported poster.
const FileName = "weekend-plan.png"

// ItemView is one placed activity as shown on the poster.
type ItemView struct {
	ID    string
	Name  string
	Icon  string
	Mood  model.Mood
	Start int
	Range string
	Span  int
}

// Row is one grid hour. A row covered by an item that started earlier has
// Covered set and no Items; an empty row shows only its Label.
type Row struct {
	Hour    int
	Label   string
	Items   []ItemView
	Covered bool
	// Span is the longest duration among Items.
	Span int
}

// DayView is one column of the poster.
type DayView struct {
	Day   model.Day
	Title string
	Rows  []Row
	// Outside lists items that start outside the grid hours.
	Outside []ItemView
}

// View is the template input.
type View struct {
	Title   string
	Theme   string
	Days    []DayView
	Summary summary.Summary
	Moods   []MoodCount
}

// MoodCount is one histogram entry in stable order.
type MoodCount struct {
	Mood  model.Mood
	Count int
}

// BuildView lays the snapshot out on a grid from gridStart to gridEnd
// (inclusive).
func BuildView(snap schedule.Snapshot, gridStart, gridEnd int, theme string) View {
	v := View{
		Title:   "My Weekend Plan",
		Theme:   theme,
		Summary: summary.Compute(snap),
	}
	for _, m := range model.Moods {
		if n := v.Summary.MoodHistogram[m]; n > 0 {
			v.Moods = append(v.Moods, MoodCount{Mood: m, Count: n})
		}
	}
	for _, d := range model.Days {
		v.Days = append(v.Days, buildDay(d, snap.Day(d), gridStart, gridEnd))
	}
	return v
}

func buildDay(d model.Day, items []model.Item, gridStart, gridEnd int) DayView {
	dv := DayView{Day: d, Title: d.Title()}

	byHour := make(map[int][]ItemView)
	for _, it := range items {
		iv := ItemView{
			ID:    it.ID,
			Name:  it.Activity.Name,
			Icon:  it.Activity.Icon,
			Mood:  it.Activity.Mood,
			Start: it.StartHour,
			Range: timefmt.FormatRange(it.StartHour, it.Activity.Duration),
			Span:  it.Activity.Duration,
		}
		if it.StartHour < gridStart || it.StartHour > gridEnd {
			dv.Outside = append(dv.Outside, iv)
			continue
		}
		byHour[it.StartHour] = append(byHour[it.StartHour], iv)
	}
	sort.SliceStable(dv.Outside, func(i, j int) bool { return dv.Outside[i].Start < dv.Outside[j].Start })

	occupied := schedule.Occupied(items)
	for h := gridStart; h <= gridEnd; h++ {
		row := Row{Hour: h, Label: timefmt.FormatHour(h), Items: byHour[h]}
		for _, iv := range row.Items {
			row.Span = max(row.Span, iv.Span)
		}
		if len(row.Items) == 0 && occupied.Has(h) {
			row.Covered = true
		}
		dv.Rows = append(dv.Rows, row)
	}
	return dv
}
