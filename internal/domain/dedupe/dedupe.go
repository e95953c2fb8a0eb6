// Package dedupe defines the interface for history identity-key tracking.
package dedupe

import "context"

// Deduper records seen identity keys so each submission event materializes
// exactly one history entry. Keys are either external references (post URLs)
// or synthesized per-row keys, scoped by song by the caller.
type Deduper interface {
	// SeenAndRecord checks whether key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	// Size returns the number of recorded keys.
	Size() int
}

// inMemoryDeduper implements Deduper with a plain map. History must be
// lossless within a run, so there is no eviction; state lives only for one
// reconciliation pass.
type inMemoryDeduper struct {
	seen map[string]struct{}
}

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithCapacityHint pre-sizes the key map for an expected submission count.
func WithCapacityHint(n int) Option {
	return func(d *inMemoryDeduper) {
		if n > 0 {
			d.seen = make(map[string]struct{}, n)
		}
	}
}

// NewInMemoryDeduper creates an unbounded in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{seen: make(map[string]struct{})}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Size() int {
	return len(d.seen)
}
