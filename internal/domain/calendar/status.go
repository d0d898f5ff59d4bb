package calendar

import (
	"time"

	"github.com/cadencehq/cadence/internal/domain/entry"
)

// Status is the display/validation state of one anchor week.
type Status int

const (
	// Submitted: the week has a stored submission, on time or not.
	Submitted Status = iota
	// OpenForInput: the single forecast week currently accepting input.
	OpenForInput
	// Missing: a past-or-current actual week with no submission.
	Missing
	// Locked: not currently submittable. For forecasts this covers both
	// expired and far-future weeks; for actuals, weeks not yet due.
	Locked
)

// Color returns the wire color for the status.
func (s Status) Color() string {
	switch s {
	case Submitted:
		return "green"
	case OpenForInput:
		return "blue"
	case Missing:
		return "red"
	default:
		return "gray"
	}
}

// Classify maps an anchor to its status. A filled week is always
// Submitted, even when it was filled late.
func Classify(anchor time.Time, kind entry.Kind, today time.Time, hasEntry bool) Status {
	if hasEntry {
		return Submitted
	}
	anchor = Day(anchor)
	if kind == entry.Forecast {
		if anchor.Equal(NextMonday(today)) {
			return OpenForInput
		}
		return Locked
	}
	if anchor.After(Day(today)) {
		return Locked
	}
	return Missing
}

// AnchorStatus pairs an anchor date with its classified status.
type AnchorStatus struct {
	Date     time.Time
	Status   Status
	HasEntry bool
}

// ClassifyYear classifies every anchor of the kind in today's year against
// the week buckets the user has submitted.
func ClassifyYear(today time.Time, kind entry.Kind, idx entry.BucketIndex) []AnchorStatus {
	anchors := Anchors(today, kind)
	out := make([]AnchorStatus, 0, len(anchors))
	for _, a := range anchors {
		has := idx.Has(a)
		out = append(out, AnchorStatus{
			Date:     a,
			Status:   Classify(a, kind, today, has),
			HasEntry: has,
		})
	}
	return out
}
