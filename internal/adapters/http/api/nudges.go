package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	service "github.com/cadencehq/cadence/internal/app"

	"github.com/cadencehq/cadence/internal/adapters/repository"
)

// NudgesHandler handles manager-to-report reminder requests.
type NudgesHandler struct {
	identifier
}

// NewNudgesHandler creates a new nudges handler.
func NewNudgesHandler(deps Dependencies, ident Identity) *NudgesHandler {
	return &NudgesHandler{identifier{deps: deps, ident: ident}}
}

type sendNudgeRequest struct {
	ToEmail string `json:"to_email"`
}

type ackResponse struct {
	Success bool `json:"success"`
}

// HandleSendNudge handles POST /api/send_nudge requests. The caller must
// be the recipient's manager.
func (h *NudgesHandler) HandleSendNudge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	person, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req sendNudgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrNoData)
		return
	}
	if strings.TrimSpace(req.ToEmail) == "" {
		writeError(w, http.StatusBadRequest, ErrMissingToEmail)
		return
	}

	if err := h.deps.SendNudge(r.Context(), person, req.ToEmail); err != nil {
		switch {
		case errors.Is(err, service.ErrNotManager):
			writeError(w, http.StatusForbidden, err)
		case errors.Is(err, service.ErrUnknownRecipient):
			writeError(w, http.StatusBadRequest, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Success: true})
}

// nudgeWire is one undismissed reminder shown to its recipient.
type nudgeWire struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

type nudgesResponse struct {
	Nudges []nudgeWire `json:"nudges"`
}

// HandleGetNudges handles GET /api/get_nudges requests. Returns the
// caller's undismissed nudges, newest first.
func (h *NudgesHandler) HandleGetNudges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	person, ok := h.caller(w, r)
	if !ok {
		return
	}

	nudges, err := h.deps.Nudges(r.Context(), person.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, nudgesResponse{Nudges: nudgesToWire(nudges)})
}

type dismissNudgeRequest struct {
	ID string `json:"id"`
}

// HandleDismissNudge handles POST /api/dismiss_nudge requests. Only the
// recipient may dismiss; the transition is terminal.
func (h *NudgesHandler) HandleDismissNudge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	person, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req dismissNudgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrNoData)
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, http.StatusBadRequest, ErrMissingNudgeID)
		return
	}

	if err := h.deps.DismissNudge(r.Context(), req.ID, person.Email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, ErrNudgeNotFound)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Success: true})
}

func nudgesToWire(nudges []repository.Nudge) []nudgeWire {
	out := make([]nudgeWire, 0, len(nudges))
	for _, n := range nudges {
		out = append(out, nudgeWire{
			ID:        n.ID,
			From:      n.From,
			Message:   n.Message,
			CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
