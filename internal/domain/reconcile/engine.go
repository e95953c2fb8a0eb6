// Package reconcile folds the submission sequence into per-song best records
// and lossless per-song histories.
//
// Best-record updates are intentionally split: a strictly higher score
// replaces score, options and display name together (options always travel
// with whichever submission set the best score), while a strictly better
// clear award replaces the award alone, even when that submission scored
// lower. The two fields may therefore originate from different submissions;
// this mirrors the upstream ranking behavior and must not be unified into a
// single "best overall submission" rule.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shirafune/gmrank/internal/adapters/repository"
	"github.com/shirafune/gmrank/internal/domain/award"
	"github.com/shirafune/gmrank/internal/domain/catalog"
	"github.com/shirafune/gmrank/internal/domain/dedupe"
	"github.com/shirafune/gmrank/internal/domain/model"
	"github.com/shirafune/gmrank/internal/domain/playopt"
	"github.com/shirafune/gmrank/internal/domain/resolver"
	"github.com/shirafune/gmrank/pkg/logger"
	"github.com/shirafune/gmrank/pkg/metrics"
)

// Stats summarizes one reconciliation pass.
type Stats struct {
	Read             int
	Excluded         int
	Unresolved       int
	OptionWarnings   int
	DuplicateHistory int
}

// Engine is the stateful reconciliation fold. State is local to one run;
// construct a fresh Engine per pass.
type Engine struct {
	cat   *catalog.Catalog
	store repository.Store
	seen  dedupe.Deduper
	res   *resolver.Resolver
	dec   *playopt.Decoder
	log   logger.Logger

	histories    map[string][]model.HistoryEntry
	histOrder    []string
	allHistory   []model.HistoryEntry
	profiles     map[string]*model.Profile
	profileOrder []string
	seq          int
	stats        Stats
}

// New creates an Engine bound to a catalog.
func New(cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		cat:       cat,
		store:     repository.NewMemStore(),
		seen:      dedupe.NewInMemoryDeduper(),
		res:       resolver.New(),
		dec:       playopt.NewDecoder(),
		histories: make(map[string][]model.HistoryEntry),
		profiles:  make(map[string]*model.Profile),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fold observes every submission in order.
func (e *Engine) Fold(ctx context.Context, subs []model.Submission) {
	for _, sub := range subs {
		e.Observe(ctx, sub)
	}
	metrics.UpdateSongsTracked(len(e.store.Songs(ctx)))
	metrics.UpdatePlayersTracked(e.store.Players(ctx))
}

// Observe processes a single submission. Per-row problems never abort the
// fold: bad rows are excluded or sanitized and the next row is unaffected.
func (e *Engine) Observe(ctx context.Context, sub model.Submission) {
	e.seq++
	e.stats.Read++
	metrics.RecordSubmissionRead()

	if sub.PlayerID == "" {
		e.exclude(ctx, sub, "missing player id")
		return
	}

	out := e.res.Resolve(sub.Title, e.cat.Names())
	if !out.Matched {
		e.stats.Unresolved++
		metrics.RecordUnresolvedTitle()
	}
	if out.Name == "" {
		e.exclude(ctx, sub, "missing song key")
		return
	}

	fields, rejected := e.dec.Decode(sub.RawOptions)
	for _, tok := range rejected {
		e.stats.OptionWarnings++
		metrics.RecordOptionTokenWarning()
		if e.log != nil {
			e.log.Warn(ctx, "unknown side-modifier token, sanitized to empty",
				logger.String("token", tok),
				logger.String("player", sub.PlayerID),
				logger.String("display_name", sub.DisplayName),
			)
		}
	}

	clearAward := award.Derive(strings.TrimSpace(sub.ClearLamp), strings.TrimSpace(sub.BestLamp))

	e.updateBest(ctx, out.Name, sub, fields, clearAward)
	e.appendHistory(ctx, out, sub, fields, clearAward)
	if out.Matched {
		e.updateProfile(sub)
	}
}

func (e *Engine) updateBest(ctx context.Context, song string, sub model.Submission, fields playopt.Fields, clearAward string) {
	rec, err := e.store.Get(ctx, song, sub.PlayerID)
	if errors.Is(err, repository.ErrNotFound) {
		e.store.Put(ctx, song, sub.PlayerID, repository.Record{
			DisplayName: sub.DisplayName,
			PlayerID:    sub.PlayerID,
			Score:       sub.Score,
			Options:     fields,
			Award:       clearAward,
		})
		return
	}
	if sub.Score > rec.Score {
		rec.Score = sub.Score
		rec.Options = fields
		rec.DisplayName = sub.DisplayName
	}
	if award.IsImprovement(clearAward, rec.Award) {
		rec.Award = clearAward
	}
	e.store.Put(ctx, song, sub.PlayerID, rec)
}

func (e *Engine) appendHistory(ctx context.Context, out resolver.Outcome, sub model.Submission, fields playopt.Fields, clearAward string) {
	key := sub.Ref
	if key == "" {
		// Synthesized keys carry the fold sequence so same-timestamp
		// submissions never collapse.
		key = fmt.Sprintf("%s|%s|%s|%d", sub.PlayerID, sub.Date, sub.Time, e.seq)
	}
	if e.seen.SeenAndRecord(ctx, out.Name+"\x00"+key) {
		e.stats.DuplicateHistory++
		metrics.RecordDuplicateHistory()
		return
	}
	ent := model.HistoryEntry{
		Date:        sub.Date,
		Time:        sub.Time,
		DisplayName: sub.DisplayName,
		PlayerID:    sub.PlayerID,
		Song:        out.Name,
		Score:       sub.Score,
		Options:     fields,
		PlayFormat:  sub.PlayFormat,
		Award:       clearAward,
		Comment:     strings.TrimSpace(sub.Comment),
		Key:         key,
		InCatalog:   out.Matched,
	}
	if _, ok := e.histories[out.Name]; !ok {
		e.histOrder = append(e.histOrder, out.Name)
	}
	e.histories[out.Name] = append(e.histories[out.Name], ent)
	e.allHistory = append(e.allHistory, ent)
}

func (e *Engine) updateProfile(sub model.Submission) {
	p, ok := e.profiles[sub.PlayerID]
	if !ok {
		p = &model.Profile{PlayerID: sub.PlayerID, DisplayName: sub.DisplayName}
		e.profiles[sub.PlayerID] = p
		e.profileOrder = append(e.profileOrder, sub.PlayerID)
	}
	if p.DisplayName == "" && sub.DisplayName != "" {
		p.DisplayName = sub.DisplayName
	}
	if c := strings.TrimSpace(sub.Comment); c != "" {
		for _, have := range p.Comments {
			if have == c {
				return
			}
		}
		p.Comments = append(p.Comments, c)
	}
}

func (e *Engine) exclude(ctx context.Context, sub model.Submission, reason string) {
	e.stats.Excluded++
	metrics.RecordRowExcluded()
	if e.log != nil {
		e.log.Debug(ctx, "submission excluded",
			logger.String("reason", reason),
			logger.String("player", sub.PlayerID),
			logger.String("title", sub.Title),
		)
	}
}

// Songs returns every song key seen by the fold, in first-seen order. Keys
// for unresolved titles are the passthrough strings themselves.
func (e *Engine) Songs(ctx context.Context) []string {
	return e.store.Songs(ctx)
}

// Rankings returns a song's best records by score descending, ties in
// fold-encounter order. A song with zero records yields an empty table.
func (e *Engine) Rankings(ctx context.Context, song string) []repository.Record {
	return e.store.Ranked(ctx, song)
}

// History returns a song's retained submission events sorted by (date, time)
// ascending, stable.
func (e *Engine) History(_ context.Context, song string) []model.HistoryEntry {
	src := e.histories[song]
	out := make([]model.HistoryEntry, len(src))
	copy(out, src)
	sortByTimestamp(out)
	return out
}

// AllHistory returns every retained submission event across songs in fold
// order.
func (e *Engine) AllHistory(_ context.Context) []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(e.allHistory))
	copy(out, e.allHistory)
	return out
}

// Players returns profiles of players with at least one catalog-matched
// submission, in first-encounter order.
func (e *Engine) Players(_ context.Context) []model.Profile {
	out := make([]model.Profile, 0, len(e.profileOrder))
	for _, id := range e.profileOrder {
		out = append(out, *e.profiles[id])
	}
	return out
}

// Best returns a player's best score for a song.
func (e *Engine) Best(ctx context.Context, playerID, song string) (int, bool) {
	rec, err := e.store.Get(ctx, song, playerID)
	if err != nil {
		return 0, false
	}
	return rec.Score, true
}

// Stats returns the pass summary.
func (e *Engine) Stats() Stats {
	return e.stats
}

func sortByTimestamp(entries []model.HistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].Time < entries[j].Time
	})
}
