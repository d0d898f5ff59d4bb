// Package calendar generates the weekly anchor dates for a reference year
// and classifies each anchor's submission status.
//
// Forecast weeks anchor on Mondays, actual weeks on Fridays. Anchor
// generation is a pure function of the reference date: same input, same
// sequence.
package calendar

import (
	"time"

	"github.com/cadencehq/cadence/internal/domain/entry"
)

const daysPerWeek = 7

// Day truncates a timestamp to its UTC calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Anchors returns every anchor date of the given kind in today's calendar
// year, ordered ascending, seven days apart. The sequence starts at the
// first occurrence of the anchor weekday on or after January 1 (January 1
// itself when it falls on the anchor weekday) and ends on or before
// December 31.
func Anchors(today time.Time, kind entry.Kind) []time.Time {
	year := Day(today).Year()
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(kind.Weekday()) - int(first.Weekday()) + daysPerWeek) % daysPerWeek
	anchor := first.AddDate(0, 0, offset)

	var anchors []time.Time
	for anchor.Year() == year {
		anchors = append(anchors, anchor)
		anchor = anchor.AddDate(0, 0, daysPerWeek)
	}
	return anchors
}

// RecentAnchors returns the n most recent anchors of the given kind at or
// before today, ordered ascending. Fewer than n are returned near the
// start of a year.
func RecentAnchors(today time.Time, kind entry.Kind, n int) []time.Time {
	ref := Day(today)
	var recent []time.Time
	for _, a := range Anchors(today, kind) {
		if a.After(ref) {
			break
		}
		recent = append(recent, a)
	}
	if len(recent) > n {
		recent = recent[len(recent)-n:]
	}
	return recent
}

// NextMonday returns today when today is a Monday, otherwise the next
// Monday strictly after today. The result is always within [today, today+6].
func NextMonday(today time.Time) time.Time {
	ref := Day(today)
	offset := (int(time.Monday) - int(ref.Weekday()) + daysPerWeek) % daysPerWeek
	return ref.AddDate(0, 0, offset)
}

// LastFriday returns today when today is a Friday, otherwise the most
// recent Friday strictly before today. The result is always within
// [today-6, today].
func LastFriday(today time.Time) time.Time {
	ref := Day(today)
	offset := (int(ref.Weekday()) - int(time.Friday) + daysPerWeek) % daysPerWeek
	return ref.AddDate(0, 0, -offset)
}
