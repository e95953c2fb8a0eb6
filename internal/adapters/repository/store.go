// Package repository defines the best-record store interface and errors.
package repository

import (
	"context"

	"github.com/shirafune/gmrank/internal/domain/playopt"
)

// Record is the per (song, player) best aggregate. Score, Options and
// DisplayName always originate from the same submission (whichever set the
// current best score); Award improves independently and may come from a
// different submission.
type Record struct {
	DisplayName string
	PlayerID    string
	Score       int
	Options     playopt.Fields
	Award       string
}

// Store provides read/write access to best records for one reconciliation
// run. Implementations must preserve first-seen ordering of songs and of
// players within a song so that ranked views can break score ties by
// fold-encounter order.
type Store interface {
	// Get returns the current record for (song, playerID).
	// Returns ErrNotFound if no record exists yet.
	Get(ctx context.Context, song, playerID string) (Record, error)

	// Put inserts or replaces the record for (song, playerID).
	Put(ctx context.Context, song, playerID string, rec Record)

	// Songs returns the tracked song keys in first-seen order.
	Songs(ctx context.Context) []string

	// Ranked returns a song's records ordered by score descending; ties keep
	// first-seen order. Unknown songs yield an empty slice, not an error.
	Ranked(ctx context.Context, song string) []Record

	// Players returns the number of distinct players across all songs.
	Players(ctx context.Context) int
}
