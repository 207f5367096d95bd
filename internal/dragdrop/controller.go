package dragdrop

import (
	appLog "weekendly/internal/log"
	"weekendly/internal/model"
)

// Scheduler is the part of the schedule store a drop can change.
type Scheduler interface {
	Place(day model.Day, activity model.Activity, startHour int) (model.Item, error)
	Move(day model.Day, itemID string, newStartHour int) (model.Item, error)
}

// LookupFunc resolves a catalog activity by id.
type LookupFunc func(id string) (model.Activity, bool)

// Outcome describes what a drop did. A drop that was ignored has
// Applied == false and a Reason for the log.
type Outcome struct {
	Applied bool       `json:"applied"`
	Action  string     `json:"action,omitempty"`
	Item    model.Item `json:"-"`
	Reason  string     `json:"reason,omitempty"`
}

// Controller applies drops to a Scheduler.
type Controller struct {
	sched  Scheduler
	lookup LookupFunc
}

// NewController returns a Controller. When lookup is non-nil, dropped
// activities are replaced by the catalog's copy and unknown ones are ignored.
func NewController(sched Scheduler, lookup LookupFunc) *Controller {
	return &Controller{sched: sched, lookup: lookup}
}

// Drop handles raw drag data released over (day, hour). Malformed payloads,
// unknown items and invalid cells are ignored rather than reported as errors.
func (c *Controller) Drop(raw []byte, day model.Day, hour int) Outcome {
	p, err := Decode(raw)
	if err != nil {
		return c.ignore(err.Error(), day, hour)
	}
	return c.Apply(p, day, hour)
}

// Apply dispatches an already decoded payload.
func (c *Controller) Apply(p Payload, day model.Day, hour int) Outcome {
	switch v := p.(type) {
	case NewActivity:
		a := v.Activity
		if c.lookup != nil {
			known, ok := c.lookup(a.ID)
			if !ok {
				return c.ignore("activity not in catalog: "+a.ID, day, hour)
			}
			a = known
		}
		it, err := c.sched.Place(day, a, hour)
		if err != nil {
			return c.ignore(err.Error(), day, hour)
		}
		return Outcome{Applied: true, Action: "place", Item: it}
	case ExistingItem:
		it, err := c.sched.Move(day, v.ID, hour)
		if err != nil {
			return c.ignore(err.Error(), day, hour)
		}
		return Outcome{Applied: true, Action: "move", Item: it}
	default:
		return c.ignore("no payload", day, hour)
	}
}

func (c *Controller) ignore(reason string, day model.Day, hour int) Outcome {
	appLog.Debug("drop ignored", "reason", reason, "day", day, "hour", hour)
	return Outcome{Reason: reason}
}
