package calendar_test

import (
	"testing"
	"time"

	"github.com/cadencehq/cadence/internal/domain/calendar"
	"github.com/cadencehq/cadence/internal/domain/entry"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given today is Wednesday 2024-03-13", t, func() {
		today := date(2024, 3, 13)
		nextMonday := date(2024, 3, 18)

		Convey("When the week has an entry", func() {
			Convey("Then it is Submitted regardless of kind or date", func() {
				So(calendar.Classify(date(2024, 1, 1), entry.Forecast, today, true), ShouldEqual, calendar.Submitted)
				So(calendar.Classify(date(2024, 12, 30), entry.Forecast, today, true), ShouldEqual, calendar.Submitted)
				So(calendar.Classify(date(2024, 3, 8), entry.Actual, today, true), ShouldEqual, calendar.Submitted)
				So(calendar.Classify(date(2024, 12, 27), entry.Actual, today, true), ShouldEqual, calendar.Submitted)
			})
		})

		Convey("When classifying forecast weeks without entries", func() {
			Convey("Then only next Monday is open for input", func() {
				So(calendar.Classify(nextMonday, entry.Forecast, today, false), ShouldEqual, calendar.OpenForInput)
			})

			Convey("Then past and future weeks are both locked", func() {
				So(calendar.Classify(date(2024, 3, 11), entry.Forecast, today, false), ShouldEqual, calendar.Locked)
				So(calendar.Classify(date(2024, 3, 25), entry.Forecast, today, false), ShouldEqual, calendar.Locked)
			})
		})

		Convey("When classifying actual weeks without entries", func() {
			Convey("Then future Fridays are locked, not yet due", func() {
				So(calendar.Classify(date(2024, 3, 15), entry.Actual, today, false), ShouldEqual, calendar.Locked)
			})

			Convey("Then past Fridays are missing, with no display-layer grace", func() {
				So(calendar.Classify(date(2024, 3, 8), entry.Actual, today, false), ShouldEqual, calendar.Missing)
				So(calendar.Classify(date(2024, 1, 5), entry.Actual, today, false), ShouldEqual, calendar.Missing)
			})

			Convey("Then a Friday falling on today is missing", func() {
				So(calendar.Classify(date(2024, 3, 8), entry.Actual, date(2024, 3, 8), false), ShouldEqual, calendar.Missing)
			})
		})

		Convey("Then every combination maps to exactly one of the four statuses", func() {
			statuses := map[calendar.Status]bool{}
			for _, kind := range []entry.Kind{entry.Forecast, entry.Actual} {
				for _, has := range []bool{true, false} {
					for i := 0; i < 30; i++ {
						s := calendar.Classify(today.AddDate(0, 0, i-15), kind, today, has)
						So(s, ShouldBeIn, []calendar.Status{
							calendar.Submitted, calendar.OpenForInput, calendar.Missing, calendar.Locked,
						})
						statuses[s] = true
					}
				}
			}
			So(len(statuses), ShouldEqual, 4)
		})
	})
}

func TestStatusColor(t *testing.T) {
	Convey("Given the four statuses", t, func() {
		So(calendar.Submitted.Color(), ShouldEqual, "green")
		So(calendar.OpenForInput.Color(), ShouldEqual, "blue")
		So(calendar.Missing.Color(), ShouldEqual, "red")
		So(calendar.Locked.Color(), ShouldEqual, "gray")
	})
}

func TestClassifyYear(t *testing.T) {
	Convey("Given a user with one submitted actual week", t, func() {
		today := date(2024, 3, 13)
		submitted := date(2024, 3, 1)
		idx := entry.NewBucketIndex([]entry.Entry{
			{Kind: entry.Actual, WeekKey: submitted, Project: "Apollo", Days: 5, WrittenAt: today},
		}, entry.Actual)

		Convey("When classifying the actual year", func() {
			year := calendar.ClassifyYear(today, entry.Actual, idx)

			Convey("Then each anchor carries its own status", func() {
				So(len(year), ShouldEqual, 52)
				byDate := map[time.Time]calendar.AnchorStatus{}
				for _, a := range year {
					byDate[a.Date] = a
				}
				So(byDate[submitted].Status, ShouldEqual, calendar.Submitted)
				So(byDate[submitted].HasEntry, ShouldBeTrue)
				So(byDate[date(2024, 3, 8)].Status, ShouldEqual, calendar.Missing)
				So(byDate[date(2024, 3, 15)].Status, ShouldEqual, calendar.Locked)
			})
		})
	})
}
