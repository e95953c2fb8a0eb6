package repository

import (
	"context"
	"sort"
)

// MemStore implements Store with insertion-ordered in-memory maps. It is
// owned by a single reconciliation pass and is not safe for concurrent use;
// the fold is strictly sequential.
type MemStore struct {
	records     map[string]map[string]Record // song -> playerID -> record
	songOrder   []string
	playerOrder map[string][]string // song -> playerIDs in first-seen order
	players     map[string]struct{}
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithSongCapacityHint pre-sizes the song maps.
func WithSongCapacityHint(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.records = make(map[string]map[string]Record, n)
			s.playerOrder = make(map[string][]string, n)
			s.songOrder = make([]string, 0, n)
		}
	}
}

// NewMemStore creates an empty in-memory best-record store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		records:     make(map[string]map[string]Record),
		playerOrder: make(map[string][]string),
		players:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the current record for (song, playerID).
func (s *MemStore) Get(_ context.Context, song, playerID string) (Record, error) {
	if byPlayer, ok := s.records[song]; ok {
		if rec, ok := byPlayer[playerID]; ok {
			return rec, nil
		}
	}
	return Record{}, ErrNotFound
}

// Put inserts or replaces the record for (song, playerID).
func (s *MemStore) Put(_ context.Context, song, playerID string, rec Record) {
	byPlayer, ok := s.records[song]
	if !ok {
		byPlayer = make(map[string]Record)
		s.records[song] = byPlayer
		s.songOrder = append(s.songOrder, song)
	}
	if _, seen := byPlayer[playerID]; !seen {
		s.playerOrder[song] = append(s.playerOrder[song], playerID)
	}
	byPlayer[playerID] = rec
	s.players[playerID] = struct{}{}
}

// Songs returns tracked songs in first-seen order.
func (s *MemStore) Songs(_ context.Context) []string {
	out := make([]string, len(s.songOrder))
	copy(out, s.songOrder)
	return out
}

// Ranked returns a song's records by score descending, ties in first-seen
// order.
func (s *MemStore) Ranked(_ context.Context, song string) []Record {
	ids := s.playerOrder[song]
	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.records[song][id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Players returns the number of distinct players across all songs.
func (s *MemStore) Players(_ context.Context) int {
	return len(s.players)
}
