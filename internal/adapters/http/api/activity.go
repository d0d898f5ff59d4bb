package api

import (
	"net/http"
	"time"

	"github.com/cadencehq/cadence/internal/domain/calendar"
)

// anchorLabelFormat renders "Jan 06" style month-day labels.
const anchorLabelFormat = "Jan 02"

// ActivityHandler handles calendar status map requests.
type ActivityHandler struct {
	identifier
}

// NewActivityHandler creates a new activity map handler.
func NewActivityHandler(deps Dependencies, ident Identity) *ActivityHandler {
	return &ActivityHandler{identifier{deps: deps, ident: ident}}
}

// anchorWire is one classified anchor date on the calendar map.
type anchorWire struct {
	Date     string `json:"date"`
	Status   string `json:"status"`
	HasEntry bool   `json:"has_entry"`
	Label    string `json:"label"`
}

type activityMapResponse struct {
	Forecasts  []anchorWire `json:"forecasts"`
	Actuals    []anchorWire `json:"actuals"`
	NextMonday string       `json:"next_monday"`
	LastFriday string       `json:"last_friday"`
}

// HandleActivityMap handles GET /api/activity_map requests.
func (h *ActivityHandler) HandleActivityMap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	person, ok := h.caller(w, r)
	if !ok {
		return
	}

	m := h.deps.ActivityMap(r.Context(), person.Email)
	writeJSON(w, http.StatusOK, activityMapResponse{
		Forecasts:  anchorsToWire(m.Forecasts),
		Actuals:    anchorsToWire(m.Actuals),
		NextMonday: m.NextMonday.Format(time.DateOnly),
		LastFriday: m.LastFriday.Format(time.DateOnly),
	})
}

func anchorsToWire(anchors []calendar.AnchorStatus) []anchorWire {
	out := make([]anchorWire, 0, len(anchors))
	for _, a := range anchors {
		out = append(out, anchorWire{
			Date:     a.Date.Format(time.DateOnly),
			Status:   a.Status.Color(),
			HasEntry: a.HasEntry,
			Label:    a.Date.Format(anchorLabelFormat),
		})
	}
	return out
}
