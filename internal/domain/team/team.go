// Package team groups scored users under their managers and ranks the
// resulting teams.
package team

import (
	"sort"
	"strings"
)

// Group is one manager together with their resolved member scores.
type Group struct {
	ManagerEmail     string
	ManagerFirstName string
	MemberScores     []int
}

// Entry is one ranked team. Derived per request, never persisted.
type Entry struct {
	TeamName     string
	ManagerEmail string
	AverageScore int
	MemberCount  int
	Rank         int
}

// Aggregate averages member scores per manager and ranks teams descending
// by average. Managers with zero resolved member scores are dropped. Ties
// keep their original relative order.
func Aggregate(groups []Group) []Entry {
	teams := make([]Entry, 0, len(groups))
	for _, g := range groups {
		if len(g.MemberScores) == 0 {
			continue
		}
		sum := 0
		for _, s := range g.MemberScores {
			sum += s
		}
		// Round half up.
		avg := (sum*2 + len(g.MemberScores)) / (len(g.MemberScores) * 2)
		teams = append(teams, Entry{
			TeamName:     "Team " + teamName(g),
			ManagerEmail: g.ManagerEmail,
			AverageScore: avg,
			MemberCount:  len(g.MemberScores),
		})
	}

	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].AverageScore > teams[j].AverageScore
	})
	for i := range teams {
		teams[i].Rank = i + 1
	}
	return teams
}

// teamName falls back to the email local part when the directory carries
// no first name.
func teamName(g Group) string {
	if name := strings.TrimSpace(g.ManagerFirstName); name != "" {
		return name
	}
	local, _, _ := strings.Cut(g.ManagerEmail, "@")
	return local
}
