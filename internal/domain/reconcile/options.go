package reconcile

import (
	"github.com/shirafune/gmrank/internal/adapters/repository"
	"github.com/shirafune/gmrank/internal/domain/dedupe"
	"github.com/shirafune/gmrank/internal/domain/playopt"
	"github.com/shirafune/gmrank/internal/domain/resolver"
	"github.com/shirafune/gmrank/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithStore sets the best-record store.
func WithStore(store repository.Store) Option {
	return func(e *Engine) {
		if store != nil {
			e.store = store
		}
	}
}

// WithDeduper sets the history identity-key deduper.
func WithDeduper(d dedupe.Deduper) Option {
	return func(e *Engine) {
		if d != nil {
			e.seen = d
		}
	}
}

// WithResolver sets the song-name resolver.
func WithResolver(r *resolver.Resolver) Option {
	return func(e *Engine) {
		if r != nil {
			e.res = r
		}
	}
}

// WithDecoder sets the play-option decoder.
func WithDecoder(d *playopt.Decoder) Option {
	return func(e *Engine) {
		if d != nil {
			e.dec = d
		}
	}
}

// WithLogger sets the logger for data-quality warnings. Without one the
// engine stays silent.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}
