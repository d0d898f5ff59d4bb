package scoring_test

import (
	"testing"
	"time"

	"github.com/cadencehq/cadence/internal/domain/calendar"
	"github.com/cadencehq/cadence/internal/domain/entry"
	"github.com/cadencehq/cadence/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// onTime builds entries whose latest write lands on the anchor date itself.
func onTime(kind entry.Kind, weeks []time.Time) []entry.Entry {
	entries := make([]entry.Entry, 0, len(weeks))
	for _, w := range weeks {
		entries = append(entries, entry.Entry{
			Kind: kind, WeekKey: w, Project: "Apollo", Days: 5,
			WrittenAt: w.Add(9 * time.Hour),
		})
	}
	return entries
}

func TestScore(t *testing.T) {
	Convey("Given today is Wednesday 2024-03-13", t, func() {
		today := date(2024, 3, 13)
		scorer := scoring.New()
		mondays := calendar.RecentAnchors(today, entry.Forecast, 8)
		fridays := calendar.RecentAnchors(today, entry.Actual, 8)
		noNudges := []time.Time(nil)

		Convey("When all 16 slots are on time with zero nudges", func() {
			forecasts := entry.NewBucketIndex(onTime(entry.Forecast, mondays), entry.Forecast)
			actuals := entry.NewBucketIndex(onTime(entry.Actual, fridays), entry.Actual)

			res := scorer.Score(today, forecasts, actuals, noNudges)

			Convey("Then the score is exactly 100", func() {
				So(res.Score, ShouldEqual, 100)
				So(res.WeeksCompleted, ShouldEqual, 16)
				So(res.WeeksTotal, ShouldEqual, 16)
				So(res.NudgeCount, ShouldEqual, 0)
			})
		})

		Convey("When all 16 slots are missing", func() {
			empty := entry.NewBucketIndex(nil, entry.Forecast)

			res := scorer.Score(today, empty, empty, noNudges)

			Convey("Then the score is exactly 0", func() {
				So(res.Score, ShouldEqual, 0)
				So(res.WeeksCompleted, ShouldEqual, 0)
				So(res.WeeksTotal, ShouldEqual, 16)
			})
		})

		Convey("When 8 forecasts are on time and 6 of 8 actuals are on time", func() {
			forecasts := entry.NewBucketIndex(onTime(entry.Forecast, mondays), entry.Forecast)
			actuals := entry.NewBucketIndex(onTime(entry.Actual, fridays[:6]), entry.Actual)

			res := scorer.Score(today, forecasts, actuals, noNudges)

			Convey("Then 140 of 160 points rounds to 88", func() {
				So(res.Score, ShouldEqual, 88)
				So(res.WeeksCompleted, ShouldEqual, 14)
				So(res.WeeksTotal, ShouldEqual, 16)
			})
		})

		Convey("When a submission lands inside the one-day grace window", func() {
			anchor := fridays[len(fridays)-1]
			late := []entry.Entry{{
				Kind: entry.Actual, WeekKey: anchor, Project: "Apollo", Days: 5,
				WrittenAt: anchor.AddDate(0, 0, 1).Add(23 * time.Hour),
			}}
			actuals := entry.NewBucketIndex(late, entry.Actual)
			empty := entry.NewBucketIndex(nil, entry.Forecast)

			res := scorer.Score(today, empty, actuals, noNudges)

			Convey("Then the slot still earns full points", func() {
				// 10 of 160 -> round(6.25) = 6
				So(res.Score, ShouldEqual, 6)
				So(res.WeeksCompleted, ShouldEqual, 1)
			})
		})

		Convey("When a submission lands after the grace window", func() {
			anchor := fridays[0]
			late := []entry.Entry{{
				Kind: entry.Actual, WeekKey: anchor, Project: "Apollo", Days: 5,
				WrittenAt: anchor.AddDate(0, 0, 2),
			}}
			actuals := entry.NewBucketIndex(late, entry.Actual)
			empty := entry.NewBucketIndex(nil, entry.Forecast)

			res := scorer.Score(today, empty, actuals, noNudges)

			Convey("Then the slot earns half points but still counts as completed", func() {
				// 5 of 160 -> round(3.125) = 3
				So(res.Score, ShouldEqual, 3)
				So(res.WeeksCompleted, ShouldEqual, 1)
			})
		})

		Convey("When recent nudges exist", func() {
			forecasts := entry.NewBucketIndex(onTime(entry.Forecast, mondays), entry.Forecast)
			actuals := entry.NewBucketIndex(onTime(entry.Actual, fridays), entry.Actual)
			nudges := []time.Time{
				today.AddDate(0, 0, -3),
				today.AddDate(0, 0, -20),
				today.AddDate(0, 0, -100), // outside the 8-week look-back
			}

			res := scorer.Score(today, forecasts, actuals, nudges)

			Convey("Then only nudges inside the look-back are deducted", func() {
				So(res.NudgeCount, ShouldEqual, 2)
				// 160 - 4 = 156 of 160 -> round(97.5) = 98
				So(res.Score, ShouldEqual, 98)
			})
		})

		Convey("When penalties exceed earned points", func() {
			empty := entry.NewBucketIndex(nil, entry.Forecast)
			nudges := make([]time.Time, 50)
			for i := range nudges {
				nudges[i] = today.AddDate(0, 0, -1)
			}

			res := scorer.Score(today, empty, empty, nudges)

			Convey("Then the score floors at 0", func() {
				So(res.Score, ShouldEqual, 0)
			})
		})

		Convey("Then the score is always within [0,100]", func() {
			forecasts := entry.NewBucketIndex(onTime(entry.Forecast, mondays), entry.Forecast)
			for days := 0; days < 60; days += 7 {
				res := scorer.Score(today.AddDate(0, 0, days), forecasts, forecasts, noNudges)
				So(res.Score, ShouldBeBetweenOrEqual, 0, 100)
			}
		})
	})

	Convey("Given no anchors exist yet", t, func() {
		Convey("When scoring with the default vacuous score", func() {
			// Zero-slot windows cannot occur with year anchors, so shrink
			// the window to zero via a one-week window against a year with
			// no elapsed anchors of either kind. January 1 2028 is a
			// Saturday: no Monday or Friday has occurred yet that year.
			today := date(2028, 1, 1)
			scorer := scoring.New()
			empty := entry.NewBucketIndex(nil, entry.Forecast)

			res := scorer.Score(today, empty, empty, nil)

			Convey("Then the defined score is 100", func() {
				So(res.Score, ShouldEqual, 100)
				So(res.WeeksTotal, ShouldEqual, 0)
			})
		})

		Convey("When the vacuous score is configured differently", func() {
			today := date(2028, 1, 1)
			scorer := scoring.New(scoring.WithVacuousScore(0))
			empty := entry.NewBucketIndex(nil, entry.Forecast)

			res := scorer.Score(today, empty, empty, nil)

			So(res.Score, ShouldEqual, 0)
		})
	})

	Convey("Given a narrower configured window", t, func() {
		today := date(2024, 3, 13)
		scorer := scoring.New(scoring.WithWindowWeeks(4))
		empty := entry.NewBucketIndex(nil, entry.Forecast)

		Convey("When scoring with nothing submitted", func() {
			res := scorer.Score(today, empty, empty, nil)

			Convey("Then only 8 slots are considered", func() {
				So(res.WeeksTotal, ShouldEqual, 8)
			})
		})
	})
}
