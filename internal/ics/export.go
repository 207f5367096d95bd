// Package ics exports the weekend plan as an iCalendar feed so it can be
// imported into a regular calendar app.
package ics

import (
	"errors"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"weekendly/internal/model"
	"weekendly/internal/schedule"
)

// FileName is the download name of the exported calendar.
const FileName = "weekend-plan.ics"

const productID = "-//weekendly//weekend plan//EN"

// ExportOptions controls how plan hours are pinned to real dates.
type ExportOptions struct {
	// Now picks the weekend: the current one on Saturday/Sunday, otherwise
	// the next one. Zero means time.Now().
	Now time.Time

	// Location is the zone the grid hours are read in. Nil means time.Local.
	Location *time.Location

	// Recurring adds a weekly RRULE to every event.
	Recurring bool
}

// Weekend returns midnight of the Saturday that the plan applies to.
func Weekend(now time.Time) (time.Time, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, -1)
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rrule.SA},
		Dtstart:   day,
		Count:     1,
	})
	if err != nil {
		return time.Time{}, err
	}
	all := r.All()
	if len(all) == 0 {
		return time.Time{}, errors.New("ics: no saturday found")
	}
	return all[0], nil
}

// Build converts snap into a calendar with one event per item.
func Build(snap schedule.Snapshot, opts ExportOptions) (*ical.Calendar, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	saturday, err := Weekend(now.In(loc))
	if err != nil {
		return nil, err
	}

	weekly := rrule.ROption{Freq: rrule.WEEKLY}
	rule := weekly.RRuleString()

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName("Weekend plan")
	cal.SetXWRTimezone(loc.String())

	for _, d := range model.Days {
		date := saturday
		if d == model.Sunday {
			date = saturday.AddDate(0, 0, 1)
		}
		for _, it := range snap.Day(d) {
			start := time.Date(date.Year(), date.Month(), date.Day(), it.StartHour, 0, 0, 0, loc)
			end := start.Add(time.Duration(it.Activity.Duration) * time.Hour)

			ev := cal.AddEvent(it.ID + "@weekendly")
			ev.SetDtStampTime(now)
			ev.SetStartAt(start)
			ev.SetEndAt(end)
			ev.SetSummary(summaryLine(it.Activity))
			if it.Activity.Description != "" {
				ev.SetDescription(it.Activity.Description)
			}
			ev.AddProperty(ical.ComponentPropertyCategories, string(it.Activity.Category))
			if opts.Recurring {
				ev.AddProperty(ical.ComponentPropertyRrule, rule)
			}
		}
	}
	return cal, nil
}

// Write serializes the plan to w.
func Write(w io.Writer, snap schedule.Snapshot, opts ExportOptions) error {
	cal, err := Build(snap, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, cal.Serialize())
	return err
}

func summaryLine(a model.Activity) string {
	if a.Icon == "" {
		return a.Name
	}
	return a.Icon + " " + a.Name
}
