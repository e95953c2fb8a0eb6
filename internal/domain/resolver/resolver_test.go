package resolver_test

import (
	"testing"

	"github.com/shirafune/gmrank/internal/domain/resolver"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Given a resolver with the default cutoff", t, func() {
		r := resolver.New()
		candidates := []string{"Sunset Drive", "Ocean Pulse"}

		Convey("When the title is a near-miss of a catalog song", func() {
			out := r.Resolve("Sunset Driv", candidates)
			So(out.Matched, ShouldBeTrue)
			So(out.Name, ShouldEqual, "Sunset Drive")
		})

		Convey("When the title matches exactly", func() {
			out := r.Resolve("Ocean Pulse", candidates)
			So(out.Matched, ShouldBeTrue)
			So(out.Name, ShouldEqual, "Ocean Pulse")
		})

		Convey("When the candidate list is empty", func() {
			out := r.Resolve("anything at all", nil)
			So(out.Matched, ShouldBeFalse)
			So(out.Name, ShouldEqual, "anything at all")
		})

		Convey("When the title is empty", func() {
			// Zero similarity misses the cutoff, but the empty string is a
			// substring of every candidate, so the first one wins.
			out := r.Resolve("", candidates)
			So(out.Matched, ShouldBeTrue)
			So(out.Name, ShouldEqual, "Sunset Drive")
		})
	})

	Convey("Given a resolver with a strict cutoff", t, func() {
		r := resolver.New(resolver.WithCutoff(0.95))
		candidates := []string{"Sunset Drive", "Ocean Pulse"}

		Convey("When similarity misses but the title is contained in a candidate", func() {
			out := r.Resolve("Pulse", candidates)
			So(out.Matched, ShouldBeTrue)
			So(out.Name, ShouldEqual, "Ocean Pulse")
		})

		Convey("When a candidate is contained in the title", func() {
			out := r.Resolve("Ocean Pulse (extended mix)", candidates)
			So(out.Matched, ShouldBeTrue)
			So(out.Name, ShouldEqual, "Ocean Pulse")
		})

		Convey("When nothing overlaps", func() {
			out := r.Resolve("zzz", candidates)
			So(out.Matched, ShouldBeFalse)
			So(out.Name, ShouldEqual, "zzz")
		})
	})

	Convey("Given the permissive default behavior", t, func() {
		r := resolver.New()

		Convey("When the title shares only trivial overlap, the best candidate still wins", func() {
			// The low cutoff is deliberate: fragmenting one song's ranking
			// across spelling variants costs more than a wrong merge.
			out := r.Resolve("Sunst Drv", []string{"Sunset Drive", "Ocean Pulse"})
			So(out.Matched, ShouldBeTrue)
			So(out.Name, ShouldEqual, "Sunset Drive")
		})

		Convey("When cutoff options are out of range they are ignored", func() {
			same := resolver.New(resolver.WithCutoff(0), resolver.WithCutoff(1.5))
			out := same.Resolve("Sunset Driv", []string{"Sunset Drive"})
			So(out.Matched, ShouldBeTrue)
		})
	})
}
