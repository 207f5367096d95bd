// Package dragdrop turns drag payloads dropped on a grid cell into schedule
// operations.
package dragdrop

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"weekendly/internal/model"
)

// Payload tags.
const (
	TypeActivity = "activity"
	TypeSchedule = "schedule"
)

// Payload is one of NewActivity or ExistingItem.
type Payload interface {
	payloadType() string
}

// NewActivity is dragged from the catalog.
type NewActivity struct {
	Activity model.Activity
}

// ExistingItem is an already placed item being dragged to another cell.
type ExistingItem struct {
	ID string
}

func (NewActivity) payloadType() string  { return TypeActivity }
func (ExistingItem) payloadType() string { return TypeSchedule }

type wirePayload struct {
	Type     string          `json:"type"`
	Activity *model.Activity `json:"activity,omitempty"`
	ID       string          `json:"id,omitempty"`
}

// Decode validates raw drag data and returns the matching variant.
func Decode(raw []byte) (Payload, error) {
	var w wirePayload
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("dragdrop: decode payload: %w", err)
	}
	switch w.Type {
	case TypeActivity:
		if w.Activity == nil {
			return nil, errors.New("dragdrop: activity payload without activity")
		}
		if err := w.Activity.Validate(); err != nil {
			return nil, fmt.Errorf("dragdrop: %w", err)
		}
		return NewActivity{Activity: *w.Activity}, nil
	case TypeSchedule:
		id := strings.TrimSpace(w.ID)
		if id == "" {
			return nil, errors.New("dragdrop: schedule payload without id")
		}
		return ExistingItem{ID: id}, nil
	default:
		return nil, fmt.Errorf("dragdrop: unknown payload type %q", w.Type)
	}
}

// Encode produces the drag data for p.
func Encode(p Payload) ([]byte, error) {
	switch v := p.(type) {
	case NewActivity:
		a := v.Activity
		return json.Marshal(wirePayload{Type: TypeActivity, Activity: &a})
	case ExistingItem:
		return json.Marshal(wirePayload{Type: TypeSchedule, ID: v.ID})
	default:
		return nil, fmt.Errorf("dragdrop: unsupported payload %T", p)
	}
}
