package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	appLog "weekendly/internal/log"
	"weekendly/internal/model"
	"weekendly/internal/schedule"
	"weekendly/internal/timefmt"
)

// SchemaVersion is written into every stored day.
const SchemaVersion = 1

// ItemRecord is the stored form of a schedule item. StartTime keeps the
// display label ("9:00 AM") so stored plans stay readable.
type ItemRecord struct {
	ID        string         `json:"id"`
	Activity  model.Activity `json:"activity"`
	StartTime string         `json:"startTime"`
	Day       model.Day      `json:"day"`
}

type dayEnvelope struct {
	Version int          `json:"version"`
	Items   []ItemRecord `json:"items"`
}

// Adapter maps schedule snapshots to one KV entry per day, keyed by the day
// name.
type Adapter struct {
	kv KV
}

func NewAdapter(kv KV) *Adapter {
	return &Adapter{kv: kv}
}

// Load reads both days. A missing, unreadable or malformed day comes back
// empty; Load never fails.
func (a *Adapter) Load() schedule.Snapshot {
	var snap schedule.Snapshot
	for _, d := range model.Days {
		items := a.loadDay(d)
		if d == model.Saturday {
			snap.Saturday = items
		} else {
			snap.Sunday = items
		}
	}
	return snap
}

func (a *Adapter) loadDay(d model.Day) []model.Item {
	data, err := a.kv.Get(string(d))
	if errors.Is(err, ErrNotFound) {
		return []model.Item{}
	}
	if err != nil {
		appLog.Error("persist: read failed; starting day empty", err, "day", d)
		return []model.Item{}
	}

	records, err := DecodeDay(data)
	if err != nil {
		appLog.Warn("persist: stored day is malformed; starting day empty", "day", d, "err", err)
		return []model.Item{}
	}

	items := make([]model.Item, 0, len(records))
	for _, rec := range records {
		it, err := rec.Item(d)
		if err != nil {
			appLog.Warn("persist: skipping stored item", "day", d, "id", rec.ID, "err", err)
			continue
		}
		items = append(items, it)
	}
	return items
}

// DecodeDay accepts a versioned envelope or a bare JSON array of records.
func DecodeDay(data []byte) ([]ItemRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty value")
	}

	if trimmed[0] == '[' {
		var legacy []ItemRecord
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return nil, err
		}
		return legacy, nil
	}

	var env dayEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	if env.Version > SchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d", env.Version)
	}
	return env.Items, nil
}

// Item converts a record back into a schedule item on day.
func (r ItemRecord) Item(day model.Day) (model.Item, error) {
	if r.ID == "" {
		return model.Item{}, errors.New("missing id")
	}
	if err := r.Activity.Validate(); err != nil {
		return model.Item{}, err
	}
	h, err := timefmt.ParseHour(r.StartTime)
	if err != nil {
		return model.Item{}, err
	}
	return model.Item{ID: r.ID, Activity: r.Activity, StartHour: h, Day: day}, nil
}

// Record converts an item to its stored form.
func Record(it model.Item) ItemRecord {
	return ItemRecord{
		ID:        it.ID,
		Activity:  it.Activity,
		StartTime: timefmt.FormatHour(it.StartHour),
		Day:       it.Day,
	}
}

// Save writes both days.
func (a *Adapter) Save(snap schedule.Snapshot) error {
	var errs []error
	for _, d := range model.Days {
		env := dayEnvelope{Version: SchemaVersion, Items: make([]ItemRecord, 0, len(snap.Day(d)))}
		for _, it := range snap.Day(d) {
			env.Items = append(env.Items, Record(it))
		}
		data, err := json.Marshal(env)
		if err != nil {
			errs = append(errs, fmt.Errorf("encode %s: %w", d, err))
			continue
		}
		if err := a.kv.Put(string(d), data); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", d, err))
		}
	}
	return errors.Join(errs...)
}

func (a *Adapter) Close() error {
	return a.kv.Close()
}

// ExportFileName is the download name of the JSON export.
const ExportFileName = "weekend-plan.json"

// PlanExport is the JSON download of the whole plan.
type PlanExport struct {
	Saturday []ItemRecord `json:"saturday"`
	Sunday   []ItemRecord `json:"sunday"`
}

// Export converts snap to its downloadable form. Empty days are [] not null.
func Export(snap schedule.Snapshot) PlanExport {
	out := PlanExport{
		Saturday: make([]ItemRecord, 0, len(snap.Saturday)),
		Sunday:   make([]ItemRecord, 0, len(snap.Sunday)),
	}
	for _, it := range snap.Saturday {
		out.Saturday = append(out.Saturday, Record(it))
	}
	for _, it := range snap.Sunday {
		out.Sunday = append(out.Sunday, Record(it))
	}
	return out
}

// WriteExport writes the indented JSON export to w.
func WriteExport(w io.Writer, snap schedule.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Export(snap))
}
