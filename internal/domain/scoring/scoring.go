// Package scoring computes the rolling compliance score used for team
// gamification and ranking.
//
// The score looks at a bounded window of recent forecast and actual
// anchors: an on-time submission earns full points, a late or backfilled
// one half points, a missing week nothing. Recent nudges addressed to the
// user are deducted before normalizing to [0,100].
package scoring

import (
	"time"

	"github.com/cadencehq/cadence/internal/domain/calendar"
	"github.com/cadencehq/cadence/internal/domain/entry"
)

// Default scoring configuration constants.
const (
	defaultWindowWeeks    = 8
	defaultGraceDays      = 1
	defaultOnTimePoints   = 10
	defaultLatePoints     = 5
	defaultNudgePenalty   = 2
	defaultNudgeLookback  = 8
	defaultVacuousScore   = 100
	percentScale          = 100
	daysPerWeek           = 7
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWindowWeeks sets how many recent anchors per kind are scored.
func WithWindowWeeks(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.windowWeeks = n
		}
	}
}

// WithGraceDays sets the on-time grace window after an anchor date.
func WithGraceDays(n int) Option {
	return func(s *Scorer) {
		if n >= 0 {
			s.graceDays = n
		}
	}
}

// WithNudgePenalty sets the points deducted per recent nudge.
func WithNudgePenalty(n int) Option {
	return func(s *Scorer) {
		if n >= 0 {
			s.nudgePenalty = n
		}
	}
}

// WithNudgeLookbackWeeks bounds which nudges count against the score.
func WithNudgeLookbackWeeks(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.nudgeLookbackWeeks = n
		}
	}
}

// WithVacuousScore sets the score reported when no scoring slots exist
// yet, e.g. at the very start of the tracked period.
func WithVacuousScore(n int) Option {
	return func(s *Scorer) {
		if n >= 0 && n <= percentScale {
			s.vacuousScore = n
		}
	}
}

// Result is a user's computed compliance score. Recomputed on demand,
// never stored.
type Result struct {
	Score          int
	NudgeCount     int
	WeeksCompleted int
	WeeksTotal     int
}

// Scorer computes bounded [0,100] compliance scores.
type Scorer struct {
	windowWeeks        int
	graceDays          int
	onTimePoints       int
	latePoints         int
	nudgePenalty       int
	nudgeLookbackWeeks int
	vacuousScore       int
}

// New creates a Scorer with configuration options applied over defaults.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		windowWeeks:        defaultWindowWeeks,
		graceDays:          defaultGraceDays,
		onTimePoints:       defaultOnTimePoints,
		latePoints:         defaultLatePoints,
		nudgePenalty:       defaultNudgePenalty,
		nudgeLookbackWeeks: defaultNudgeLookback,
		vacuousScore:       defaultVacuousScore,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the user's compliance score as of today from their
// forecast and actual bucket indexes and the creation times of nudges
// addressed to them. Pure: same inputs, same result.
func (s *Scorer) Score(today time.Time, forecasts, actuals entry.BucketIndex, nudgesAt []time.Time) Result {
	today = calendar.Day(today)

	nudgeCutoff := today.AddDate(0, 0, -s.nudgeLookbackWeeks*daysPerWeek)
	nudges := 0
	for _, at := range nudgesAt {
		if !at.Before(nudgeCutoff) {
			nudges++
		}
	}

	return s.ScoreCounted(today, forecasts, actuals, nudges)
}

// NudgeWindowStart returns the inclusive start of the nudge penalty
// window as of today.
func (s *Scorer) NudgeWindowStart(today time.Time) time.Time {
	return calendar.Day(today).AddDate(0, 0, -s.nudgeLookbackWeeks*daysPerWeek)
}

// ScoreCounted is Score with the nudge count already resolved by the
// caller, for stores that count nudges over the lookback window
// themselves. The count must cover [NudgeWindowStart(today), today].
func (s *Scorer) ScoreCounted(today time.Time, forecasts, actuals entry.BucketIndex, nudgeCount int) Result {
	today = calendar.Day(today)

	totalPoints := 0
	completed := 0
	slots := 0

	score := func(anchors []time.Time, idx entry.BucketIndex) {
		for _, anchor := range anchors {
			slots++
			ts, ok := idx.LatestWrite(anchor)
			if !ok {
				continue
			}
			completed++
			grace := anchor.AddDate(0, 0, s.graceDays)
			if !calendar.Day(ts).After(grace) {
				totalPoints += s.onTimePoints
			} else {
				totalPoints += s.latePoints
			}
		}
	}

	score(calendar.RecentAnchors(today, entry.Forecast, s.windowWeeks), forecasts)
	score(calendar.RecentAnchors(today, entry.Actual, s.windowWeeks), actuals)

	totalPoints -= nudgeCount * s.nudgePenalty
	if totalPoints < 0 {
		totalPoints = 0
	}

	maxPoints := s.onTimePoints * slots
	final := s.vacuousScore
	if maxPoints > 0 {
		final = (totalPoints*percentScale + maxPoints/2) / maxPoints
		if final < 0 {
			final = 0
		}
		if final > percentScale {
			final = percentScale
		}
	}

	return Result{
		Score:          final,
		NudgeCount:     nudgeCount,
		WeeksCompleted: completed,
		WeeksTotal:     slots,
	}
}
