package api

import (
	"net/http"
	"time"

	"github.com/cadencehq/cadence/internal/domain/entry"
)

// EntriesHandler handles entry read requests: week lookups, history
// prefill, and the project catalog.
type EntriesHandler struct {
	identifier
}

// NewEntriesHandler creates a new entries handler.
func NewEntriesHandler(deps Dependencies, ident Identity) *EntriesHandler {
	return &EntriesHandler{identifier{deps: deps, ident: ident}}
}

type getEntryResponse struct {
	Entries []rowWire `json:"entries"`
	Exists  bool      `json:"exists"`
	Date    string    `json:"date"`
	Type    string    `json:"type"`
}

// HandleGetEntry handles GET /api/get_entry?date=YYYY-MM-DD&type=kind
// requests.
func (h *EntriesHandler) HandleGetEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	person, ok := h.caller(w, r)
	if !ok {
		return
	}

	kind, err := entry.ParseKind(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	week, err := time.Parse(time.DateOnly, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrBadDate)
		return
	}

	entries := h.deps.WeekEntries(r.Context(), person.Email, kind, week)
	writeJSON(w, http.StatusOK, getEntryResponse{
		Entries: entriesToWire(entries),
		Exists:  len(entries) > 0,
		Date:    week.Format(time.DateOnly),
		Type:    kind.String(),
	})
}

// HandleGetHistory handles GET /api/get_history requests. It returns the
// rows of the caller's most recently dated submitted week, used to
// prefill the entry form.
func (h *EntriesHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	person, ok := h.caller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, entriesToWire(h.deps.History(r.Context(), person.Email)))
}

type projectsResponse struct {
	Projects []string `json:"projects"`
}

// HandleProjects handles GET /api/projects requests.
func (h *EntriesHandler) HandleProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if _, ok := h.caller(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, projectsResponse{Projects: h.deps.Projects(r.Context())})
}

func entriesToWire(entries []entry.Entry) []rowWire {
	out := make([]rowWire, 0, len(entries))
	for _, e := range entries {
		out = append(out, rowWire{Project: e.Project, Days: e.Days, Notes: e.Notes})
	}
	return out
}
