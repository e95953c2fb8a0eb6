// Package resolver maps free-text submitted song titles onto the canonical
// catalog using approximate matching with deterministic fallbacks.
//
// Resolution is three-tiered: best similarity ratio above a deliberately low
// cutoff, then substring containment in either direction, then passthrough.
// The low cutoff is intentional: source titles are frequently typo'd, and a
// wrong merge costs less than fragmenting one song's ranking across spelling
// variants.
package resolver

import "strings"

// DefaultCutoff is the minimum similarity ratio a candidate must reach.
const DefaultCutoff = 0.1

// Outcome is the tagged result of a resolution. Matched reports whether Name
// came from the candidate list; when false, Name is the original title passed
// through and must not be treated as a catalog member even if it happens to
// equal one.
type Outcome struct {
	Name    string
	Matched bool
}

// Resolver resolves titles against a candidate list.
type Resolver struct {
	cutoff float64
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithCutoff sets the similarity acceptance cutoff in (0, 1].
func WithCutoff(cutoff float64) Option {
	return func(r *Resolver) {
		if cutoff > 0 && cutoff <= 1 {
			r.cutoff = cutoff
		}
	}
}

// New creates a Resolver with the default cutoff.
func New(opts ...Option) *Resolver {
	r := &Resolver{cutoff: DefaultCutoff}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps title onto the closest candidate. An empty candidate list
// passes the title through unresolved.
func (r *Resolver) Resolve(title string, candidates []string) Outcome {
	if len(candidates) == 0 {
		return Outcome{Name: title}
	}

	best, bestRatio := "", -1.0
	for _, cand := range candidates {
		if ratio := similarity(title, cand); ratio > bestRatio {
			best, bestRatio = cand, ratio
		}
	}
	if bestRatio >= r.cutoff {
		return Outcome{Name: best, Matched: true}
	}

	for _, cand := range candidates {
		if strings.Contains(cand, title) || strings.Contains(title, cand) {
			return Outcome{Name: cand, Matched: true}
		}
	}

	return Outcome{Name: title}
}
