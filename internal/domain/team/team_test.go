package team_test

import (
	"testing"

	"github.com/cadencehq/cadence/internal/domain/team"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAggregate(t *testing.T) {
	Convey("Given manager groups with member scores", t, func() {
		groups := []team.Group{
			{ManagerEmail: "ana@example.com", ManagerFirstName: "Ana", MemberScores: []int{90, 80}},
			{ManagerEmail: "bob@example.com", ManagerFirstName: "Bob", MemberScores: []int{100, 95, 99}},
			{ManagerEmail: "cay@example.com", ManagerFirstName: "Cay", MemberScores: nil},
			{ManagerEmail: "dee@example.com", ManagerFirstName: "Dee", MemberScores: []int{85}},
		}

		Convey("When aggregating", func() {
			teams := team.Aggregate(groups)

			Convey("Then managers without resolved scores are dropped", func() {
				So(len(teams), ShouldEqual, 3)
				for _, tm := range teams {
					So(tm.ManagerEmail, ShouldNotEqual, "cay@example.com")
				}
			})

			Convey("Then teams are ranked descending by rounded average", func() {
				So(teams[0].TeamName, ShouldEqual, "Team Bob")
				So(teams[0].AverageScore, ShouldEqual, 98) // mean 98
				So(teams[0].Rank, ShouldEqual, 1)
				So(teams[1].TeamName, ShouldEqual, "Team Ana")
				So(teams[1].AverageScore, ShouldEqual, 85)
				So(teams[1].Rank, ShouldEqual, 2)
				So(teams[2].TeamName, ShouldEqual, "Team Dee")
				So(teams[2].Rank, ShouldEqual, 3)
			})

			Convey("Then member counts are carried through", func() {
				So(teams[0].MemberCount, ShouldEqual, 3)
				So(teams[2].MemberCount, ShouldEqual, 1)
			})
		})

		Convey("When averages tie", func() {
			teams := team.Aggregate([]team.Group{
				{ManagerEmail: "x@example.com", ManagerFirstName: "X", MemberScores: []int{90}},
				{ManagerEmail: "y@example.com", ManagerFirstName: "Y", MemberScores: []int{90}},
			})

			Convey("Then original relative order is kept", func() {
				So(teams[0].ManagerEmail, ShouldEqual, "x@example.com")
				So(teams[1].ManagerEmail, ShouldEqual, "y@example.com")
				So(teams[0].Rank, ShouldEqual, 1)
				So(teams[1].Rank, ShouldEqual, 2)
			})
		})

		Convey("When the directory has no first name", func() {
			teams := team.Aggregate([]team.Group{
				{ManagerEmail: "sam.field@example.com", MemberScores: []int{70}},
			})

			Convey("Then the email local part names the team", func() {
				So(teams[0].TeamName, ShouldEqual, "Team sam.field")
			})
		})

		Convey("When averaging rounds half up", func() {
			teams := team.Aggregate([]team.Group{
				{ManagerEmail: "z@example.com", ManagerFirstName: "Z", MemberScores: []int{90, 91}},
			})
			So(teams[0].AverageScore, ShouldEqual, 91) // 90.5 rounds up
		})
	})
}
