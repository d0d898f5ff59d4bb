package calendar_test

import (
	"testing"
	"time"

	"github.com/cadencehq/cadence/internal/domain/calendar"
	"github.com/cadencehq/cadence/internal/domain/entry"
	. "github.com/smartystreets/goconvey/convey"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAnchors(t *testing.T) {
	Convey("Given a reference date in 2024", t, func() {
		today := date(2024, 3, 13) // a Wednesday

		Convey("When generating forecast anchors", func() {
			anchors := calendar.Anchors(today, entry.Forecast)

			Convey("Then every anchor is a Monday of 2024, 7 days apart", func() {
				So(len(anchors), ShouldEqual, 53)
				So(anchors[0], ShouldEqual, date(2024, 1, 1)) // Jan 1 2024 is a Monday
				So(anchors[len(anchors)-1], ShouldEqual, date(2024, 12, 30))
				for i, a := range anchors {
					So(a.Weekday(), ShouldEqual, time.Monday)
					So(a.Year(), ShouldEqual, 2024)
					if i > 0 {
						So(a.Sub(anchors[i-1]), ShouldEqual, 7*24*time.Hour)
					}
				}
			})
		})

		Convey("When generating actual anchors", func() {
			anchors := calendar.Anchors(today, entry.Actual)

			Convey("Then every anchor is a Friday of 2024", func() {
				So(anchors[0], ShouldEqual, date(2024, 1, 5))
				So(anchors[len(anchors)-1], ShouldEqual, date(2024, 12, 27))
				for _, a := range anchors {
					So(a.Weekday(), ShouldEqual, time.Friday)
				}
			})
		})

		Convey("When January 1 falls on the anchor weekday", func() {
			// Jan 1 2027 is a Friday.
			anchors := calendar.Anchors(date(2027, 6, 1), entry.Actual)
			So(anchors[0], ShouldEqual, date(2027, 1, 1))
		})

		Convey("Then generation is deterministic", func() {
			So(calendar.Anchors(today, entry.Forecast), ShouldResemble, calendar.Anchors(today, entry.Forecast))
		})
	})
}

func TestRecentAnchors(t *testing.T) {
	Convey("Given a mid-year reference date", t, func() {
		today := date(2024, 3, 13)

		Convey("When taking the 8 most recent actual anchors", func() {
			recent := calendar.RecentAnchors(today, entry.Actual, 8)

			Convey("Then exactly 8 Fridays at or before today come back, ascending", func() {
				So(len(recent), ShouldEqual, 8)
				So(recent[0], ShouldEqual, date(2024, 1, 19))
				So(recent[7], ShouldEqual, date(2024, 3, 8))
				for _, a := range recent {
					So(a.After(today), ShouldBeFalse)
				}
			})
		})

		Convey("When the year has just started", func() {
			recent := calendar.RecentAnchors(date(2024, 1, 10), entry.Actual, 8)

			Convey("Then fewer than 8 anchors exist", func() {
				So(len(recent), ShouldEqual, 1)
				So(recent[0], ShouldEqual, date(2024, 1, 5))
			})
		})

		Convey("When today is the anchor weekday", func() {
			recent := calendar.RecentAnchors(date(2024, 3, 8), entry.Actual, 8)
			So(recent[len(recent)-1], ShouldEqual, date(2024, 3, 8))
		})
	})
}

func TestNextMondayLastFriday(t *testing.T) {
	Convey("Given reference dates across a week", t, func() {
		Convey("Then nextMonday is the unique Monday in [d, d+6]", func() {
			So(calendar.NextMonday(date(2024, 3, 13)), ShouldEqual, date(2024, 3, 18))
			So(calendar.NextMonday(date(2024, 3, 18)), ShouldEqual, date(2024, 3, 18)) // Monday maps to itself
			So(calendar.NextMonday(date(2024, 3, 17)), ShouldEqual, date(2024, 3, 18))
			So(calendar.NextMonday(date(2024, 3, 19)), ShouldEqual, date(2024, 3, 25))

			for i := 0; i < 14; i++ {
				d := date(2024, 3, 1).AddDate(0, 0, i)
				nm := calendar.NextMonday(d)
				So(nm.Weekday(), ShouldEqual, time.Monday)
				So(nm.Sub(d), ShouldBeBetweenOrEqual, 0, 6*24*time.Hour)
			}
		})

		Convey("Then lastFriday is the unique Friday in [d-6, d]", func() {
			So(calendar.LastFriday(date(2024, 3, 13)), ShouldEqual, date(2024, 3, 8))
			So(calendar.LastFriday(date(2024, 3, 8)), ShouldEqual, date(2024, 3, 8)) // Friday maps to itself
			So(calendar.LastFriday(date(2024, 3, 9)), ShouldEqual, date(2024, 3, 8))

			for i := 0; i < 14; i++ {
				d := date(2024, 3, 1).AddDate(0, 0, i)
				lf := calendar.LastFriday(d)
				So(lf.Weekday(), ShouldEqual, time.Friday)
				So(d.Sub(lf), ShouldBeBetweenOrEqual, 0, 6*24*time.Hour)
			}
		})
	})
}
