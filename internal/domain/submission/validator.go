// Package submission enforces the write-time eligibility window for week
// submissions before anything reaches the entry store.
//
// The windows are deliberately asymmetric: forecasts are commitments, so
// exactly one forecast week is submittable at any instant; actuals are
// corrections, so any past Friday can be backfilled.
package submission

import (
	"time"

	"github.com/cadencehq/cadence/internal/domain/calendar"
	"github.com/cadencehq/cadence/internal/domain/entry"
)

// Validate checks whether a submission for the selected week is inside its
// eligibility window. It returns nil on acceptance or a sentinel rejection
// reason; callers surface the reason verbatim and perform no store
// mutation on rejection.
func Validate(kind entry.Kind, selected, today time.Time) error {
	selected = calendar.Day(selected)
	today = calendar.Day(today)

	if kind == entry.Forecast {
		open := calendar.NextMonday(today)
		switch {
		case selected.Before(open):
			return ErrForecastExpired
		case selected.After(open):
			return ErrForecastNotOpen
		}
		return nil
	}

	if selected.After(today) {
		return ErrActualFuture
	}
	return nil
}
