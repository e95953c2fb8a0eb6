package award_test

import (
	"testing"

	"github.com/shirafune/gmrank/internal/domain/award"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRank(t *testing.T) {
	Convey("Given the clear-lamp order", t, func() {
		Convey("Then lamps rank from F-COMBO down to the floor", func() {
			So(award.Rank("F-COMBO"), ShouldEqual, 6)
			So(award.Rank("EXH-CLEAR"), ShouldEqual, 5)
			So(award.Rank("H-CLEAR"), ShouldEqual, 4)
			So(award.Rank("CLEAR"), ShouldEqual, 3)
			So(award.Rank("E-CLEAR"), ShouldEqual, 2)
			So(award.Rank("A-CLEAR"), ShouldEqual, 1)
		})

		Convey("Then FAILED and NO PLAY share the floor", func() {
			So(award.Rank("FAILED"), ShouldEqual, award.Rank("NO PLAY"))
			So(award.Rank("FAILED"), ShouldBeLessThan, award.Rank("A-CLEAR"))
		})

		Convey("Then unknown labels rank at the floor", func() {
			So(award.Rank(""), ShouldEqual, 0)
			So(award.Rank("PERFECT"), ShouldEqual, 0)
			So(award.Rank("clear"), ShouldEqual, 0)
		})
	})
}

func TestIsImprovement(t *testing.T) {
	Convey("Given the strict improvement rule", t, func() {
		Convey("When the new label outranks the old", func() {
			So(award.IsImprovement("CLEAR", "A-CLEAR"), ShouldBeTrue)
			So(award.IsImprovement("F-COMBO", "EXH-CLEAR"), ShouldBeTrue)
		})

		Convey("When ranks are equal, the first-seen label wins", func() {
			So(award.IsImprovement("CLEAR", "CLEAR"), ShouldBeFalse)
			So(award.IsImprovement("FAILED", "NO PLAY"), ShouldBeFalse)
		})

		Convey("When the new label is worse or unknown", func() {
			So(award.IsImprovement("FAILED", "CLEAR"), ShouldBeFalse)
			So(award.IsImprovement("", "A-CLEAR"), ShouldBeFalse)
			So(award.IsImprovement("MYSTERY", "A-CLEAR"), ShouldBeFalse)
		})
	})
}

func TestDerive(t *testing.T) {
	Convey("Given per-row award derivation", t, func() {
		Convey("When the reported lamp beats the best known lamp", func() {
			So(award.Derive("H-CLEAR", "CLEAR"), ShouldEqual, "H-CLEAR")
			So(award.Derive("A-CLEAR", ""), ShouldEqual, "A-CLEAR")
		})

		Convey("When the reported lamp does not improve", func() {
			So(award.Derive("CLEAR", "CLEAR"), ShouldEqual, "")
			So(award.Derive("FAILED", ""), ShouldEqual, "")
			So(award.Derive("", "CLEAR"), ShouldEqual, "")
		})
	})
}
