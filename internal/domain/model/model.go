// Package model contains domain models passed between layers.
package model

import "github.com/shirafune/gmrank/internal/domain/playopt"

// Submission is one raw play report as ingested from the source sheet.
// It is immutable once decoded; the reconciliation engine folds over a
// sequence of these in arrival order.
type Submission struct {
	PlayerID    string // stable social-handle key; empty means the row is excluded
	DisplayName string
	Title       string // submitted song title, free text
	RawOptions  string // raw play-option string, e.g. "R-RAN/MIR,FLIP"
	Score       int
	ClearLamp   string // lamp reported for this play
	BestLamp    string // best lamp the source knew about at submission time; may lag
	Date        string // submission date, lexicographically ordered by the source
	Time        string // submission time
	PlayFormat  string
	Comment     string
	Ref         string // external reference (post URL); history identity when set
}

// CatalogEntry is one canonical song. Ordinal is the stable column number
// used for composite output ordering; Notes is the chart note count used as
// the completion-rate denominator.
type CatalogEntry struct {
	Name    string `json:"song_name" yaml:"song_name"`
	Ordinal int    `json:"song_no" yaml:"song_no"`
	Notes   int    `json:"chart_notes" yaml:"chart_notes"`
}

// HistoryEntry is one retained submission event for a song. Entries are never
// collapsed across players or scores; Key is the deduplication identity
// (external ref, or a synthesized player|date|time|seq key).
type HistoryEntry struct {
	Date        string
	Time        string
	DisplayName string
	PlayerID    string
	Song        string
	Score       int
	Options     playopt.Fields
	PlayFormat  string
	Award       string
	Comment     string
	Key         string
	InCatalog   bool // resolver matched the title onto the catalog
}

// Profile accumulates per-player identity across catalog-matched submissions:
// the first non-empty display name and distinct comments in arrival order.
type Profile struct {
	PlayerID    string
	DisplayName string
	Comments    []string
}
