package api

import (
	"net/http"
	"time"
)

// OutstandingHandler handles outstanding item queue requests.
type OutstandingHandler struct {
	identifier
}

// NewOutstandingHandler creates a new outstanding items handler.
func NewOutstandingHandler(deps Dependencies, ident Identity) *OutstandingHandler {
	return &OutstandingHandler{identifier{deps: deps, ident: ident}}
}

// outstandingWire is one prioritized action queue item.
type outstandingWire struct {
	Date                string `json:"date"`
	WeekCommencing      string `json:"week_commencing"`
	WeekCommencingLabel string `json:"week_commencing_label"`
	Type                string `json:"type"`
	Label               string `json:"label"`
	Status              string `json:"status"`
	Priority            int    `json:"priority"`
}

// HandleOutstandingItems handles GET /api/outstanding_items requests.
func (h *OutstandingHandler) HandleOutstandingItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	person, ok := h.caller(w, r)
	if !ok {
		return
	}

	items := h.deps.Outstanding(r.Context(), person.Email)
	out := make([]outstandingWire, 0, len(items))
	for _, item := range items {
		out = append(out, outstandingWire{
			Date:                item.AnchorDate.Format(time.DateOnly),
			WeekCommencing:      item.WeekCommencing.Format(time.DateOnly),
			WeekCommencingLabel: item.WeekCommencing.Format(anchorLabelFormat),
			Type:                item.Kind.String(),
			Label:               item.Label,
			Status:              string(item.Status),
			Priority:            item.Priority,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
