// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	service "github.com/cadencehq/cadence/internal/app"

	"github.com/cadencehq/cadence/internal/adapters/directory"
	"github.com/cadencehq/cadence/internal/adapters/repository"
	"github.com/cadencehq/cadence/internal/domain/entry"
	"github.com/cadencehq/cadence/internal/domain/outstanding"
	"github.com/cadencehq/cadence/internal/domain/scoring"
	"github.com/cadencehq/cadence/internal/domain/team"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ResolveUser resolves a directory username to a person.
	ResolveUser(ctx context.Context, username string) (directory.Person, error)

	// Read operations expose calendar and entry data per owner.
	ActivityMap(ctx context.Context, owner string) service.ActivityMap
	Outstanding(ctx context.Context, owner string) []outstanding.Item
	WeekEntries(ctx context.Context, owner string, kind entry.Kind, week time.Time) []entry.Entry
	History(ctx context.Context, owner string) []entry.Entry
	Projects(ctx context.Context) []string

	// SubmitWeek validates and atomically replaces a week bucket.
	SubmitWeek(ctx context.Context, owner string, kind entry.Kind, week time.Time, rows []entry.Row) (string, error)

	// Scoring and ranking.
	MyScore(ctx context.Context, owner string) scoring.Result
	TeamScores(ctx context.Context) ([]team.Entry, error)

	// Nudges.
	SendNudge(ctx context.Context, from directory.Person, toEmail string) error
	Nudges(ctx context.Context, owner string) ([]repository.Nudge, error)
	DismissNudge(ctx context.Context, id, owner string) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	activityHandler    *ActivityHandler
	outstandingHandler *OutstandingHandler
	entriesHandler     *EntriesHandler
	submitHandler      *SubmitHandler
	scoresHandler      *ScoresHandler
	nudgesHandler      *NudgesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, ident Identity) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		activityHandler:    NewActivityHandler(deps, ident),
		outstandingHandler: NewOutstandingHandler(deps, ident),
		entriesHandler:     NewEntriesHandler(deps, ident),
		submitHandler:      NewSubmitHandler(deps, ident),
		scoresHandler:      NewScoresHandler(deps, ident),
		nudgesHandler:      NewNudgesHandler(deps, ident),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/activity_map", MetricsMiddleware(s.activityHandler.HandleActivityMap, "activity_map"))
	mux.HandleFunc("/api/outstanding_items", MetricsMiddleware(s.outstandingHandler.HandleOutstandingItems, "outstanding_items"))
	mux.HandleFunc("/api/get_entry", MetricsMiddleware(s.entriesHandler.HandleGetEntry, "get_entry"))
	mux.HandleFunc("/api/get_history", MetricsMiddleware(s.entriesHandler.HandleGetHistory, "get_history"))
	mux.HandleFunc("/api/projects", MetricsMiddleware(s.entriesHandler.HandleProjects, "projects"))
	mux.HandleFunc("/submit", MetricsMiddleware(s.submitHandler.HandleSubmit, "submit"))
	mux.HandleFunc("/api/my_score", MetricsMiddleware(s.scoresHandler.HandleMyScore, "my_score"))
	mux.HandleFunc("/api/team_scores", MetricsMiddleware(s.scoresHandler.HandleTeamScores, "team_scores"))
	mux.HandleFunc("/api/send_nudge", MetricsMiddleware(s.nudgesHandler.HandleSendNudge, "send_nudge"))
	mux.HandleFunc("/api/get_nudges", MetricsMiddleware(s.nudgesHandler.HandleGetNudges, "get_nudges"))
	mux.HandleFunc("/api/dismiss_nudge", MetricsMiddleware(s.nudgesHandler.HandleDismissNudge, "dismiss_nudge"))
}

// rowWire mirrors one project line in submissions and reads.
type rowWire struct {
	Project string  `json:"project"`
	Days    float64 `json:"days"`
	Notes   string  `json:"notes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
