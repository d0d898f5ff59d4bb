package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	service "github.com/cadencehq/cadence/internal/app"

	"github.com/cadencehq/cadence/internal/domain/entry"
)

// SubmitHandler handles week submission requests.
type SubmitHandler struct {
	identifier
}

// NewSubmitHandler creates a new submit handler.
func NewSubmitHandler(deps Dependencies, ident Identity) *SubmitHandler {
	return &SubmitHandler{identifier{deps: deps, ident: ident}}
}

// submitRequest mirrors the POST /submit body.
type submitRequest struct {
	Date string    `json:"date"`
	Type string    `json:"type"`
	Rows []rowWire `json:"rows"`
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HandleSubmit handles POST /submit requests.
func (h *SubmitHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	person, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrNoData)
		return
	}
	if strings.TrimSpace(req.Date) == "" {
		writeError(w, http.StatusBadRequest, ErrMissingDate)
		return
	}
	kind, err := entry.ParseKind(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	week, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrBadDate)
		return
	}

	rows := make([]entry.Row, 0, len(req.Rows))
	for _, rw := range req.Rows {
		rows = append(rows, entry.Row{Project: rw.Project, Days: rw.Days, Notes: rw.Notes})
	}

	message, err := h.deps.SubmitWeek(r.Context(), person.Email, kind, week, rows)
	if err != nil {
		// Store failures are server errors; everything else is a
		// validation rejection surfaced verbatim.
		if errors.Is(err, service.ErrStoreFailed) {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{Success: true, Message: message})
}
