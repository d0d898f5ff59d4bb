// Package entry defines the weekly allocation entry model shared across
// the service: the entry kind, the stored entry row, submission row
// filtering, identity normalization, and the per-week bucket index.
package entry

import (
	"strings"
	"time"
)

// Kind distinguishes forecast weeks (Monday-anchored plans) from actual
// weeks (Friday-anchored confirmations).
type Kind string

const (
	Forecast Kind = "forecast"
	Actual   Kind = "actual"
)

// ParseKind parses a wire-format kind value.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Forecast):
		return Forecast, nil
	case string(Actual):
		return Actual, nil
	}
	return "", ErrUnknownKind
}

// String returns the wire-format kind value.
func (k Kind) String() string { return string(k) }

// Weekday returns the anchor weekday for the kind.
func (k Kind) Weekday() time.Weekday {
	if k == Actual {
		return time.Friday
	}
	return time.Monday
}

// Entry is one project line of a week's submission. Multiple entries may
// share (owner, week, kind); together they are the week's submission.
type Entry struct {
	Owner     string
	WeekKey   time.Time
	Kind      Kind
	Project   string
	Days      float64
	Notes     string
	WrittenAt time.Time
}

// Row is one unvalidated line of a submission request.
type Row struct {
	Project string
	Days    float64
	Notes   string
}

// FilterRows drops rows that fail the positivity invariant: empty project
// names or days <= 0. Dropped rows are never persisted.
func FilterRows(rows []Row) []Row {
	kept := make([]Row, 0, len(rows))
	for _, r := range rows {
		project := strings.TrimSpace(r.Project)
		if project == "" || r.Days <= 0 {
			continue
		}
		kept = append(kept, Row{
			Project: project,
			Days:    r.Days,
			Notes:   strings.TrimSpace(r.Notes),
		})
	}
	return kept
}

// NormalizeIdentity canonicalizes a free-form identity string. Identities
// are email addresses from an external source and may arrive in mixed
// case from different callers; every ingress boundary applies this so
// internal comparisons are exact-match.
func NormalizeIdentity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// day truncates a timestamp to its UTC calendar date.
func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BucketIndex groups one kind's entries by week key. A week is present
// when at least one persisted entry exists for it; the index also keeps
// the latest write timestamp per week for grace-period scoring.
type BucketIndex struct {
	latest map[time.Time]time.Time
}

// NewBucketIndex builds an index from a user's entries of one kind.
// Entries of other kinds are ignored.
func NewBucketIndex(entries []Entry, kind Kind) BucketIndex {
	idx := BucketIndex{latest: make(map[time.Time]time.Time)}
	for _, e := range entries {
		if e.Kind != kind {
			continue
		}
		week := day(e.WeekKey)
		if ts, ok := idx.latest[week]; !ok || e.WrittenAt.After(ts) {
			idx.latest[week] = e.WrittenAt
		}
	}
	return idx
}

// Has reports whether the week has a submission.
func (b BucketIndex) Has(week time.Time) bool {
	_, ok := b.latest[day(week)]
	return ok
}

// LatestWrite returns the latest write timestamp for the week.
func (b BucketIndex) LatestWrite(week time.Time) (time.Time, bool) {
	ts, ok := b.latest[day(week)]
	return ts, ok
}

// Len returns the number of weeks with a submission.
func (b BucketIndex) Len() int { return len(b.latest) }
