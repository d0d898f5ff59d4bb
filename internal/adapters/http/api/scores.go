package api

import "net/http"

// ScoresHandler handles compliance score and team ranking requests.
type ScoresHandler struct {
	identifier
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps Dependencies, ident Identity) *ScoresHandler {
	return &ScoresHandler{identifier{deps: deps, ident: ident}}
}

type myScoreResponse struct {
	Score          int `json:"score"`
	NudgeCount     int `json:"nudge_count"`
	WeeksCompleted int `json:"weeks_completed"`
	WeeksTotal     int `json:"weeks_total"`
}

// HandleMyScore handles GET /api/my_score requests.
func (h *ScoresHandler) HandleMyScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	person, ok := h.caller(w, r)
	if !ok {
		return
	}

	result := h.deps.MyScore(r.Context(), person.Email)
	writeJSON(w, http.StatusOK, myScoreResponse{
		Score:          result.Score,
		NudgeCount:     result.NudgeCount,
		WeeksCompleted: result.WeeksCompleted,
		WeeksTotal:     result.WeeksTotal,
	})
}

// teamWire is one ranked team.
type teamWire struct {
	TeamName     string `json:"team_name"`
	ManagerEmail string `json:"manager_email"`
	Score        int    `json:"score"`
	MemberCount  int    `json:"member_count"`
	Rank         int    `json:"rank"`
}

type teamScoresResponse struct {
	Teams     []teamWire `json:"teams"`
	UserEmail string     `json:"user_email"`
}

// HandleTeamScores handles GET /api/team_scores requests.
func (h *ScoresHandler) HandleTeamScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	person, ok := h.caller(w, r)
	if !ok {
		return
	}

	teams, err := h.deps.TeamScores(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]teamWire, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamWire{
			TeamName:     t.TeamName,
			ManagerEmail: t.ManagerEmail,
			Score:        t.AverageScore,
			MemberCount:  t.MemberCount,
			Rank:         t.Rank,
		})
	}
	writeJSON(w, http.StatusOK, teamScoresResponse{Teams: out, UserEmail: person.Email})
}
