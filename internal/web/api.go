package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"weekendly/internal/model"
	"weekendly/internal/schedule"
	"weekendly/internal/timefmt"
)

// itemDTO is a schedule item with its display times filled in.
type itemDTO struct {
	ID        string         `json:"id"`
	Day       model.Day      `json:"day"`
	Activity  model.Activity `json:"activity"`
	StartHour int            `json:"start_hour"`
	EndHour   int            `json:"end_hour"`
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
	Range     string         `json:"range"`
}

type scheduleResponse struct {
	Saturday []itemDTO `json:"saturday"`
	Sunday   []itemDTO `json:"sunday"`
}

func toItemDTO(it model.Item) itemDTO {
	end := timefmt.EndHour(it.StartHour, it.Activity.Duration)
	return itemDTO{
		ID:        it.ID,
		Day:       it.Day,
		Activity:  it.Activity,
		StartHour: it.StartHour,
		EndHour:   end,
		StartTime: timefmt.FormatHour(it.StartHour),
		EndTime:   timefmt.FormatHour(end),
		Range:     timefmt.FormatRange(it.StartHour, it.Activity.Duration),
	}
}

func toItemDTOs(items []model.Item) []itemDTO {
	out := make([]itemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toItemDTO(it))
	}
	return out
}

// GET /api/activities?q=&category=
func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, s.planner.Catalog().Search(q.Get("q"), q.Get("category")))
}

func (s *Server) handleSchedule(w http.ResponseWriter, _ *http.Request) {
	snap := s.planner.Snapshot()
	writeJSON(w, http.StatusOK, scheduleResponse{
		Saturday: toItemDTOs(snap.Saturday),
		Sunday:   toItemDTOs(snap.Sunday),
	})
}

// GET /api/schedule/occupied?day=saturday
func (s *Server) handleOccupied(w http.ResponseWriter, r *http.Request) {
	day, err := model.ParseDay(r.URL.Query().Get("day"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	type occupiedResponse struct {
		Day   model.Day `json:"day"`
		Hours []int     `json:"hours"`
	}
	writeJSON(w, http.StatusOK, occupiedResponse{Day: day, Hours: s.planner.Occupied(day).Sorted()})
}

// cellRequest names a grid cell either by hour (0-23) or by its display
// label ("9:00 AM"). Hour wins when both are set.
type cellRequest struct {
	Day  string `json:"day"`
	Hour *int   `json:"hour,omitempty"`
	Time string `json:"time,omitempty"`
}

func (c cellRequest) resolve() (model.Day, int, error) {
	day, err := model.ParseDay(c.Day)
	if err != nil {
		return "", 0, err
	}
	if c.Hour != nil {
		return day, *c.Hour, nil
	}
	if c.Time == "" {
		return "", 0, errors.New("hour or time is required")
	}
	h, err := timefmt.ParseHour(c.Time)
	if err != nil {
		return "", 0, err
	}
	return day, h, nil
}

type dropRequest struct {
	cellRequest
	Payload json.RawMessage `json:"payload"`
}

type dropResponse struct {
	Applied bool     `json:"applied"`
	Action  string   `json:"action,omitempty"`
	Item    *itemDTO `json:"item,omitempty"`
	Reason  string   `json:"reason,omitempty"`
}

// POST /api/drop. A malformed or stale payload is not an error: the drop is
// ignored and reported with applied=false.
func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	day, hour, err := req.resolve()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := s.planner.Drop(req.Payload, day, hour)
	resp := dropResponse{Applied: out.Applied, Action: out.Action, Reason: out.Reason}
	if out.Applied {
		dto := toItemDTO(out.Item)
		resp.Item = &dto
	}
	writeJSON(w, http.StatusOK, resp)
}

// PUT /api/items/{id} moves an item without resolving overlaps.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req cellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	day, hour, err := req.resolve()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	it, err := s.planner.Move(day, r.PathValue("id"), hour)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDTO(it))
}

// DELETE /api/items/{id}. Unknown ids are a no-op, not a 404.
func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	removed := s.planner.Remove(r.PathValue("id"))
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (s *Server) handleClear(w http.ResponseWriter, _ *http.Request) {
	s.planner.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSave(w http.ResponseWriter, _ *http.Request) {
	if err := s.planner.Save(); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save plan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.planner.Summary())
}

func (s *Server) handleNotifications(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.queue.Pending())
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	if !s.queue.Dismiss(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTheme(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"theme": s.cfg.Theme})
}

func writeStoreError(w http.ResponseWriter, err error) {
	var verr *schedule.ValidationError
	switch {
	case errors.Is(err, schedule.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
