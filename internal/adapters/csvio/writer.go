package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirafune/gmrank/internal/adapters/repository"
	"github.com/shirafune/gmrank/internal/domain/composite"
	"github.com/shirafune/gmrank/internal/domain/model"
	"github.com/shirafune/gmrank/internal/domain/playopt"
)

// WriteSongRanking writes one song's best-record table, already ordered by
// the caller. Returns the file path written.
func WriteSongRanking(dir, song string, records []repository.Record) (string, error) {
	path := filepath.Join(dir, sanitizeFilename(song)+".csv")
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, []string{"UserName", "SNS", "score", "Left", "Right", "FLIP", "LEGACY", "A-SCR", "clear_award"})
	for _, rec := range records {
		row := []string{rec.DisplayName, rec.PlayerID, strconv.Itoa(rec.Score)}
		row = append(row, optionCells(rec.Options)...)
		row = append(row, rec.Award)
		rows = append(rows, row)
	}
	return path, writeAll(path, rows)
}

// WriteSongHistory writes one song's chronological submission history.
func WriteSongHistory(dir, song string, entries []model.HistoryEntry) (string, error) {
	path := filepath.Join(dir, sanitizeFilename(song)+"_history.csv")
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, []string{
		"submission_date", "submission_time", "UserName", "SNS", "score",
		"Left", "Right", "FLIP", "LEGACY", "A-SCR", "play_format", "clear_award",
	})
	for _, ent := range entries {
		row := []string{ent.Date, ent.Time, ent.DisplayName, ent.PlayerID, strconv.Itoa(ent.Score)}
		row = append(row, optionCells(ent.Options)...)
		row = append(row, ent.PlayFormat, ent.Award)
		rows = append(rows, row)
	}
	return path, writeAll(path, rows)
}

// WriteComposite writes the GrandMaster leaderboard. Rate cells print with 4
// decimals; a song a player never qualified on prints as an empty cell, which
// keeps "0.0000 achieved" distinguishable from "never attempted".
func WriteComposite(path string, ordinals []int, rows []composite.Row) error {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, compositeHeader(nil, ordinals))
	for _, r := range rows {
		row := []string{r.DisplayName}
		row = append(row, rateCells(r.Rates, ordinals)...)
		row = append(row, formatRate(r.Total), r.Handle, r.Comment)
		out = append(out, row)
	}
	return writeAll(path, out)
}

// WriteCompositeHistory writes the event-level GrandMaster history.
func WriteCompositeHistory(path string, ordinals []int, rows []composite.HistoryRow) error {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, compositeHeader([]string{"submission_date", "submission_time"}, ordinals))
	for _, r := range rows {
		row := []string{r.Date, r.Time, r.DisplayName}
		row = append(row, rateCells(r.Rates, ordinals)...)
		row = append(row, formatRate(r.Total), r.Handle, r.Comment)
		out = append(out, row)
	}
	return writeAll(path, out)
}

func compositeHeader(prefix []string, ordinals []int) []string {
	header := append([]string{}, prefix...)
	header = append(header, "UserName")
	for _, no := range ordinals {
		header = append(header, fmt.Sprintf("song_no%d", no))
	}
	return append(header, "total_score", "SNS", "Comment")
}

func rateCells(rates map[int]float64, ordinals []int) []string {
	cells := make([]string, 0, len(ordinals))
	for _, no := range ordinals {
		if rate, ok := rates[no]; ok {
			cells = append(cells, formatRate(rate))
		} else {
			cells = append(cells, "")
		}
	}
	return cells
}

func formatRate(r float64) string {
	return strconv.FormatFloat(r, 'f', 4, 64)
}

func optionCells(f playopt.Fields) []string {
	return []string{
		f.Left,
		f.Right,
		flagCell(f.Flip, "FLIP"),
		flagCell(f.Legacy, "LEGACY"),
		flagCell(f.AssistScore, "A-SCR"),
	}
}

func flagCell(set bool, literal string) string {
	if set {
		return literal
	}
	return ""
}

// sanitizeFilename keeps song-derived file names path-safe.
func sanitizeFilename(song string) string {
	return strings.ReplaceAll(song, "/", "_")
}

func writeAll(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
