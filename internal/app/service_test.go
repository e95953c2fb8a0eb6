package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shirafune/gmrank/internal/app"
	"github.com/shirafune/gmrank/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	Convey("Given a song list and a submission sheet on disk", t, func() {
		dir := t.TempDir()
		catalogPath := writeInput(t, dir, "song_list.json", `{
			"selected_songs": [
				{"song_name": "Sunset Drive", "song_no": 1, "chart_notes": 250},
				{"song_name": "Ocean Pulse", "song_no": 2, "chart_notes": 500}
			]
		}`)
		submissionsPath := writeInput(t, dir, "result_summary.csv", ""+
			"submission_date,submission_time,sns_id,user_name,song_name,options,score,clear_lamp,best_clear_lamp,play_format,comment,post_url\n"+
			"2024-01-01,10:00,@kei,Kei,Sunset Drive,RAN,500,CLEAR,,AC,,\n"+
			"2024-01-02,10:00,@kei,Kei,Sunset Driv,MIR,800,FAILED,CLEAR,AC,,\n"+
			"2024-01-02,11:00,@ryo,Ryo,Ocean Pulse,OFF,400,CLEAR,,AC,,\n"+
			"2024-01-03,09:00,,Ghost,Sunset Drive,,100,,,,,\n")
		outDir := filepath.Join(dir, "Result")

		svc := app.New(app.WithPaths(catalogPath, submissionsPath, outDir))

		Convey("When the pipeline runs", func() {
			summary, err := svc.Run(ctx)
			So(err, ShouldBeNil)

			Convey("Then the summary accounts for every row", func() {
				So(summary.RunID, ShouldNotBeEmpty)
				So(summary.Stats.Read, ShouldEqual, 4)
				So(summary.Stats.Excluded, ShouldEqual, 1)
				So(summary.Songs, ShouldEqual, 2)
				So(summary.Players, ShouldEqual, 2)
			})

			Convey("Then per-song and composite files land in the output dir", func() {
				// 2 songs x (ranking + history) + leaderboard + its history.
				So(summary.Outputs, ShouldHaveLength, 6)
				for _, path := range summary.Outputs {
					_, statErr := os.Stat(path)
					So(statErr, ShouldBeNil)
				}

				data, readErr := os.ReadFile(filepath.Join(outDir, "Sunset Drive.csv"))
				So(readErr, ShouldBeNil)

				Convey("And the misspelled resubmission folded into the canonical song", func() {
					body := string(data)
					So(body, ShouldContainSubstring, "Kei,@kei,800,MIRROR")
					So(body, ShouldContainSubstring, "CLEAR")
				})
			})
		})
	})

	Convey("Given a malformed song list", t, func() {
		dir := t.TempDir()
		catalogPath := writeInput(t, dir, "song_list.json", `{
			"selected_songs": [{"song_name": "", "song_no": 1, "chart_notes": 100}]
		}`)
		submissionsPath := writeInput(t, dir, "result_summary.csv",
			"sns_id,song_name,score\n@kei,Sunset Drive,100\n")

		svc := app.New(app.WithPaths(catalogPath, submissionsPath, filepath.Join(dir, "Result")))

		Convey("Then the run aborts before any output", func() {
			_, err := svc.Run(ctx)
			So(errors.Is(err, catalog.ErrMalformedCatalog), ShouldBeTrue)
		})
	})

	Convey("Given a missing submission sheet", t, func() {
		dir := t.TempDir()
		catalogPath := writeInput(t, dir, "song_list.json",
			`{"selected_songs": [{"song_name": "Sunset Drive", "song_no": 1, "chart_notes": 250}]}`)

		svc := app.New(app.WithPaths(catalogPath, filepath.Join(dir, "missing.csv"), filepath.Join(dir, "Result")))

		Convey("Then the run fails cleanly", func() {
			_, err := svc.Run(ctx)
			So(err, ShouldNotBeNil)
		})
	})
}
