package outstanding_test

import (
	"testing"
	"time"

	"github.com/cadencehq/cadence/internal/domain/entry"
	"github.com/cadencehq/cadence/internal/domain/outstanding"
	. "github.com/smartystreets/goconvey/convey"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func actualEntry(week time.Time) entry.Entry {
	return entry.Entry{Kind: entry.Actual, WeekKey: week, Project: "Apollo", Days: 5, WrittenAt: week}
}

func forecastEntry(week time.Time) entry.Entry {
	return entry.Entry{Kind: entry.Forecast, WeekKey: week, Project: "Apollo", Days: 5, WrittenAt: week}
}

func TestResolve(t *testing.T) {
	Convey("Given today is Wednesday 2024-03-13", t, func() {
		today := date(2024, 3, 13)
		empty := entry.NewBucketIndex(nil, entry.Actual)
		emptyForecasts := entry.NewBucketIndex(nil, entry.Forecast)

		Convey("When the user has submitted nothing", func() {
			items := outstanding.Resolve(today, empty, emptyForecasts)

			Convey("Then 8 missing actuals precede one open forecast", func() {
				So(len(items), ShouldEqual, 9)
				for i, it := range items[:8] {
					So(it.Kind, ShouldEqual, entry.Actual)
					So(it.Status, ShouldEqual, outstanding.StatusMissing)
					So(it.Priority, ShouldEqual, outstanding.PriorityMissing)
					if i > 0 {
						So(items[i-1].AnchorDate.Before(it.AnchorDate), ShouldBeTrue)
					}
				}
				last := items[8]
				So(last.Kind, ShouldEqual, entry.Forecast)
				So(last.Status, ShouldEqual, outstanding.StatusOpen)
				So(last.Priority, ShouldEqual, outstanding.PriorityOpen)
				So(last.AnchorDate, ShouldEqual, date(2024, 3, 18))
			})

			Convey("Then the oldest missing actual comes first", func() {
				So(items[0].AnchorDate, ShouldEqual, date(2024, 1, 19))
			})

			Convey("Then week commencing is the Monday of the actual week", func() {
				So(items[0].WeekCommencing, ShouldEqual, date(2024, 1, 15))
				So(items[0].Label, ShouldEqual, "Week commencing 2024-01-15 - Missing Actuals")
			})
		})

		Convey("When some actual weeks are submitted", func() {
			actuals := entry.NewBucketIndex([]entry.Entry{
				actualEntry(date(2024, 3, 8)),
				actualEntry(date(2024, 3, 1)),
			}, entry.Actual)

			items := outstanding.Resolve(today, actuals, emptyForecasts)

			Convey("Then submitted weeks produce no items", func() {
				So(len(items), ShouldEqual, 7) // 6 missing actuals + 1 forecast
				for _, it := range items {
					So(it.AnchorDate, ShouldNotEqual, date(2024, 3, 8))
					So(it.AnchorDate, ShouldNotEqual, date(2024, 3, 1))
				}
			})
		})

		Convey("When the open forecast week is already submitted", func() {
			forecasts := entry.NewBucketIndex([]entry.Entry{
				forecastEntry(date(2024, 3, 18)),
			}, entry.Forecast)

			items := outstanding.Resolve(today, empty, forecasts)

			Convey("Then no forecast item is emitted", func() {
				for _, it := range items {
					So(it.Kind, ShouldEqual, entry.Actual)
				}
			})
		})

		Convey("Then never more than one forecast item is emitted", func() {
			items := outstanding.Resolve(today, empty, emptyForecasts)
			forecastCount := 0
			for _, it := range items {
				if it.Kind == entry.Forecast {
					forecastCount++
				}
			}
			So(forecastCount, ShouldEqual, 1)
		})

		Convey("Then future actual weeks never appear", func() {
			items := outstanding.Resolve(today, empty, emptyForecasts)
			for _, it := range items {
				if it.Kind == entry.Actual {
					So(it.AnchorDate.After(today), ShouldBeFalse)
				}
			}
		})
	})

	Convey("Given a reference date early in the year", t, func() {
		today := date(2024, 1, 10)
		empty := entry.NewBucketIndex(nil, entry.Actual)
		emptyForecasts := entry.NewBucketIndex(nil, entry.Forecast)

		Convey("When resolving", func() {
			items := outstanding.Resolve(today, empty, emptyForecasts)

			Convey("Then the look-back is naturally shorter", func() {
				So(len(items), ShouldEqual, 2) // one missing actual, one open forecast
				So(items[0].AnchorDate, ShouldEqual, date(2024, 1, 5))
			})
		})
	})
}
