package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shirafune/gmrank/internal/domain/catalog"
	"github.com/shirafune/gmrank/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	Convey("Given a well-formed entry list", t, func() {
		entries := []model.CatalogEntry{
			{Name: "Sunset Drive", Ordinal: 3, Notes: 250},
			{Name: "Ocean Pulse", Ordinal: 1, Notes: 500},
			{Name: "Neon Cascade", Ordinal: 2, Notes: 321},
		}

		Convey("When building the catalog", func() {
			cat, err := catalog.New(ctx, entries)
			So(err, ShouldBeNil)
			So(cat.Len(), ShouldEqual, 3)

			Convey("Then names keep first-appearance order", func() {
				So(cat.Names(), ShouldResemble, []string{"Sunset Drive", "Ocean Pulse", "Neon Cascade"})
			})

			Convey("Then ordinals come back ascending", func() {
				So(cat.Ordinals(), ShouldResemble, []int{1, 2, 3})
			})

			Convey("Then entries come back in ordinal order", func() {
				got := cat.Entries()
				So(got[0].Name, ShouldEqual, "Ocean Pulse")
				So(got[1].Name, ShouldEqual, "Neon Cascade")
				So(got[2].Name, ShouldEqual, "Sunset Drive")
			})

			Convey("Then lookup finds members and rejects strangers", func() {
				e, ok := cat.Lookup("Ocean Pulse")
				So(ok, ShouldBeTrue)
				So(e.Notes, ShouldEqual, 500)

				_, ok = cat.Lookup("Ocean Puls")
				So(ok, ShouldBeFalse)
			})
		})
	})

	Convey("Given malformed entries", t, func() {
		Convey("When an entry has no name", func() {
			_, err := catalog.New(ctx, []model.CatalogEntry{{Ordinal: 1, Notes: 100}})
			So(errors.Is(err, catalog.ErrMalformedCatalog), ShouldBeTrue)
		})

		Convey("When an entry has a non-positive ordinal", func() {
			_, err := catalog.New(ctx, []model.CatalogEntry{{Name: "Sunset Drive", Ordinal: 0, Notes: 100}})
			So(errors.Is(err, catalog.ErrMalformedCatalog), ShouldBeTrue)
		})
	})

	Convey("Given duplicate names", t, func() {
		entries := []model.CatalogEntry{
			{Name: "Sunset Drive", Ordinal: 1, Notes: 250},
			{Name: "Ocean Pulse", Ordinal: 2, Notes: 500},
			{Name: "Sunset Drive", Ordinal: 3, Notes: 999},
		}

		Convey("When the default last-wins policy applies", func() {
			cat, err := catalog.New(ctx, entries)
			So(err, ShouldBeNil)
			So(cat.Len(), ShouldEqual, 2)

			Convey("Then the later entry's values win but the position stays", func() {
				So(cat.Names(), ShouldResemble, []string{"Sunset Drive", "Ocean Pulse"})
				e, _ := cat.Lookup("Sunset Drive")
				So(e.Ordinal, ShouldEqual, 3)
				So(e.Notes, ShouldEqual, 999)
				So(cat.Ordinals(), ShouldResemble, []int{2, 3})
			})
		})

		Convey("When duplicates are rejected", func() {
			_, err := catalog.New(ctx, entries, catalog.WithDuplicatePolicy(catalog.RejectDuplicates))
			So(errors.Is(err, catalog.ErrDuplicateName), ShouldBeTrue)
		})
	})
}
