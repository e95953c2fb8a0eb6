package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shirafune/gmrank/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store := repository.NewMemStore()

		Convey("When looking up an unknown record", func() {
			_, err := store.Get(ctx, "Sunset Drive", "@kei")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When an unknown song is ranked", func() {
			So(store.Ranked(ctx, "Sunset Drive"), ShouldBeEmpty)
		})

		Convey("When records are inserted", func() {
			store.Put(ctx, "Sunset Drive", "@kei", repository.Record{PlayerID: "@kei", Score: 500})
			store.Put(ctx, "Ocean Pulse", "@kei", repository.Record{PlayerID: "@kei", Score: 100})
			store.Put(ctx, "Sunset Drive", "@ryo", repository.Record{PlayerID: "@ryo", Score: 800})
			store.Put(ctx, "Sunset Drive", "@aoi", repository.Record{PlayerID: "@aoi", Score: 500})

			Convey("Then Get returns the stored record", func() {
				rec, err := store.Get(ctx, "Sunset Drive", "@kei")
				So(err, ShouldBeNil)
				So(rec.Score, ShouldEqual, 500)
			})

			Convey("Then songs keep first-seen order", func() {
				So(store.Songs(ctx), ShouldResemble, []string{"Sunset Drive", "Ocean Pulse"})
			})

			Convey("Then ranked views order by score with stable ties", func() {
				ranked := store.Ranked(ctx, "Sunset Drive")
				So(ranked, ShouldHaveLength, 3)
				So(ranked[0].PlayerID, ShouldEqual, "@ryo")
				// @kei and @aoi tie on 500; @kei arrived first.
				So(ranked[1].PlayerID, ShouldEqual, "@kei")
				So(ranked[2].PlayerID, ShouldEqual, "@aoi")
			})

			Convey("Then players are counted once across songs", func() {
				So(store.Players(ctx), ShouldEqual, 3)
			})

			Convey("When a record is replaced", func() {
				store.Put(ctx, "Sunset Drive", "@kei", repository.Record{PlayerID: "@kei", Score: 900})

				Convey("Then the ranking reorders but ordering state stays consistent", func() {
					ranked := store.Ranked(ctx, "Sunset Drive")
					So(ranked[0].PlayerID, ShouldEqual, "@kei")
					So(ranked[0].Score, ShouldEqual, 900)
					So(store.Players(ctx), ShouldEqual, 3)
				})
			})
		})
	})
}
