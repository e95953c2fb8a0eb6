// Package catalog holds the fixed canonical song set for one run.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/shirafune/gmrank/internal/domain/model"
	"github.com/shirafune/gmrank/pkg/logger"
)

// DuplicatePolicy decides what happens when two entries share a name.
type DuplicatePolicy int

const (
	// LastWins keeps the later entry's ordinal and note count under the
	// name's original position. This is the default, permissive policy.
	LastWins DuplicatePolicy = iota
	// RejectDuplicates fails loading with ErrDuplicateName.
	RejectDuplicates
)

// Catalog is the immutable canonical song set. Names keep first-appearance
// order (the resolver's candidate order); ordinals are exposed ascending for
// composite column layout.
type Catalog struct {
	names    []string
	byName   map[string]model.CatalogEntry
	ordinals []int
	log      logger.Logger
}

// Option applies a configuration option during catalog construction.
type Option func(*settings)

type settings struct {
	policy DuplicatePolicy
	log    logger.Logger
}

// WithDuplicatePolicy sets the duplicate-name policy.
func WithDuplicatePolicy(policy DuplicatePolicy) Option {
	return func(s *settings) { s.policy = policy }
}

// WithLogger sets the logger used for data-quality warnings. Without one the
// catalog stays silent.
func WithLogger(log logger.Logger) Option {
	return func(s *settings) { s.log = log }
}

// New validates entries and builds a Catalog. An entry with an empty name or
// a non-positive ordinal makes the whole load fail with ErrMalformedCatalog:
// composite normalization is undefined without a complete catalog.
func New(ctx context.Context, entries []model.CatalogEntry, opts ...Option) (*Catalog, error) {
	s := settings{policy: LastWins}
	for _, opt := range opts {
		opt(&s)
	}

	c := &Catalog{
		byName: make(map[string]model.CatalogEntry, len(entries)),
		log:    s.log,
	}
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrMalformedCatalog, i)
		}
		if e.Ordinal <= 0 {
			return nil, fmt.Errorf("%w: entry %q has ordinal %d", ErrMalformedCatalog, e.Name, e.Ordinal)
		}
		if _, seen := c.byName[e.Name]; seen {
			if s.policy == RejectDuplicates {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
			}
			c.warnDuplicate(ctx, e.Name)
			c.byName[e.Name] = e // last one wins, position kept
			continue
		}
		c.byName[e.Name] = e
		c.names = append(c.names, e.Name)
	}

	c.ordinals = make([]int, 0, len(c.names))
	for _, name := range c.names {
		c.ordinals = append(c.ordinals, c.byName[name].Ordinal)
	}
	sort.Ints(c.ordinals)
	return c, nil
}

func (c *Catalog) warnDuplicate(ctx context.Context, name string) {
	if c.log == nil {
		return
	}
	c.log.Warn(ctx, "duplicate catalog song name, keeping the later entry",
		logger.String("song", name),
	)
}

// Names returns the canonical names in first-appearance order.
func (c *Catalog) Names() []string {
	return c.names
}

// Lookup returns the entry for a canonical name.
func (c *Catalog) Lookup(name string) (model.CatalogEntry, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// Ordinals returns the song ordinals in ascending order.
func (c *Catalog) Ordinals() []int {
	return c.ordinals
}

// Entries returns the surviving entries ordered by ascending ordinal.
func (c *Catalog) Entries() []model.CatalogEntry {
	out := make([]model.CatalogEntry, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.byName[name])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out
}

// Len returns the number of distinct songs.
func (c *Catalog) Len() int {
	return len(c.names)
}
