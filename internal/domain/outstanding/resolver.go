// Package outstanding derives the prioritized action queue of submissions
// a user still owes.
package outstanding

import (
	"fmt"
	"sort"
	"time"

	"github.com/cadencehq/cadence/internal/domain/calendar"
	"github.com/cadencehq/cadence/internal/domain/entry"
)

// Actual anchors fall on Fridays; the work-week commenced on the Monday
// four days earlier.
const anchorToWeekCommencing = 4

// DefaultLookback bounds how many past actual anchors are scanned.
const DefaultLookback = 8

// Status of an outstanding item.
type Status string

const (
	// StatusMissing marks an overdue actual week.
	StatusMissing Status = "missing"
	// StatusOpen marks the forecast week currently accepting input.
	StatusOpen Status = "open"
)

// Item priorities: missing actuals always precede the open forecast.
const (
	PriorityMissing = 1
	PriorityOpen    = 2
)

// Item is one outstanding submission. Derived, never persisted.
type Item struct {
	AnchorDate     time.Time
	WeekCommencing time.Time
	Kind           entry.Kind
	Label          string
	Status         Status
	Priority       int
}

// Resolve scans the recent actual anchors and the open forecast week and
// returns the deduplicated action queue, sorted by (priority, anchor
// date): oldest missing actuals first, then at most one forecast item.
// Submitted and locked weeks never produce items.
func Resolve(today time.Time, actuals, forecasts entry.BucketIndex) []Item {
	var items []Item

	for _, anchor := range calendar.RecentAnchors(today, entry.Actual, DefaultLookback) {
		if actuals.Has(anchor) {
			continue
		}
		wc := anchor.AddDate(0, 0, -anchorToWeekCommencing)
		items = append(items, Item{
			AnchorDate:     anchor,
			WeekCommencing: wc,
			Kind:           entry.Actual,
			Label:          fmt.Sprintf("Week commencing %s - Missing Actuals", wc.Format(time.DateOnly)),
			Status:         StatusMissing,
			Priority:       PriorityMissing,
		})
	}

	if open := calendar.NextMonday(today); !forecasts.Has(open) {
		items = append(items, Item{
			AnchorDate:     open,
			WeekCommencing: open,
			Kind:           entry.Forecast,
			Label:          fmt.Sprintf("Week commencing %s - Forecast Open", open.Format(time.DateOnly)),
			Status:         StatusOpen,
			Priority:       PriorityOpen,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority < items[j].Priority
		}
		return items[i].AnchorDate.Before(items[j].AnchorDate)
	})
	return items
}
