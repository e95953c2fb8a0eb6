// Package composite derives the cross-song GrandMaster leaderboard from
// reconciled best records.
//
// A player's completion rate for a song is best score / (note count × 2);
// the composite total is the sum of rates over the catalog. Only
// catalog-matched records participate; unresolved passthrough songs never
// contribute.
package composite

import (
	"context"
	"sort"
	"strings"

	"github.com/shirafune/gmrank/internal/domain/catalog"
	"github.com/shirafune/gmrank/internal/domain/model"
)

// Source is the reconciliation output the builder consumes.
type Source interface {
	// Players lists catalog-qualifying players in first-encounter order.
	Players(ctx context.Context) []model.Profile
	// Best returns a player's best score for a canonical song.
	Best(ctx context.Context, playerID, song string) (int, bool)
	// AllHistory lists retained submission events in fold order.
	AllHistory(ctx context.Context) []model.HistoryEntry
}

// Row is one composite leaderboard line. Rates holds only the songs the
// player has a qualifying record for; a missing ordinal renders as an empty
// cell, which is distinct from an achieved rate of zero.
type Row struct {
	DisplayName string
	Rates       map[int]float64 // ordinal -> completion rate
	Total       float64
	Handle      string
	Comment     string
}

// HistoryRow is one composite history line, keyed per submission event
// rather than per player. Events sharing an identity key (one post reporting
// several songs) merge into a single line with all their rates.
type HistoryRow struct {
	Date        string
	Time        string
	DisplayName string
	Rates       map[int]float64
	Total       float64
	Handle      string
	Comment     string
}

// Builder computes composite views against a fixed catalog.
type Builder struct {
	cat *catalog.Catalog
}

// New creates a Builder bound to a catalog.
func New(cat *catalog.Catalog) *Builder {
	return &Builder{cat: cat}
}

// Leaderboard builds the per-player composite ranking, sorted by total rate
// descending; ties keep first-encounter order.
func (b *Builder) Leaderboard(ctx context.Context, src Source) []Row {
	entries := b.cat.Entries()
	players := src.Players(ctx)

	rows := make([]Row, 0, len(players))
	for _, p := range players {
		row := Row{
			DisplayName: p.DisplayName,
			Rates:       make(map[int]float64, len(entries)),
			Handle:      p.PlayerID,
			Comment:     strings.Join(p.Comments, " | "),
		}
		for _, e := range entries {
			score, ok := src.Best(ctx, p.PlayerID, e.Name)
			if !ok {
				continue
			}
			rate := b.rate(score, e.Notes)
			row.Rates[e.Ordinal] = rate
			row.Total += rate
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })
	return rows
}

// History builds the event-level composite view: one line per identity key,
// sorted by (date, time) ascending, stable.
func (b *Builder) History(ctx context.Context, src Source) []HistoryRow {
	type accum struct {
		row      *HistoryRow
		comments []string
	}
	byKey := make(map[string]*accum)
	var order []string

	for _, ent := range src.AllHistory(ctx) {
		if !ent.InCatalog {
			continue
		}
		entry, ok := b.cat.Lookup(ent.Song)
		if !ok {
			continue
		}
		a, seen := byKey[ent.Key]
		if !seen {
			a = &accum{row: &HistoryRow{
				Date:        ent.Date,
				Time:        ent.Time,
				DisplayName: ent.DisplayName,
				Rates:       make(map[int]float64),
				Handle:      ent.PlayerID,
			}}
			byKey[ent.Key] = a
			order = append(order, ent.Key)
		}
		a.row.Rates[entry.Ordinal] = b.rate(ent.Score, entry.Notes)
		if ent.Comment != "" && !containsString(a.comments, ent.Comment) {
			a.comments = append(a.comments, ent.Comment)
		}
	}

	rows := make([]HistoryRow, 0, len(order))
	for _, key := range order {
		a := byKey[key]
		for _, r := range a.row.Rates {
			a.row.Total += r
		}
		a.row.Comment = strings.Join(a.comments, " | ")
		rows = append(rows, *a.row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].Time < rows[j].Time
	})
	return rows
}

// rate normalizes a score by twice the note count. Scores are assumed
// bounded by that denominator; out-of-range input is reflected faithfully.
func (b *Builder) rate(score, notes int) float64 {
	if notes == 0 {
		return 0
	}
	return float64(score) / float64(notes*2)
}

func containsString(list []string, s string) bool {
	for _, have := range list {
		if have == s {
			return true
		}
	}
	return false
}
