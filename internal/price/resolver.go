package price

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/okulov/casetrack/internal/cache"
	"github.com/okulov/casetrack/internal/steam"
)

const (
	// Unavailable is returned when the price lookup fails. It is
	// distinguishable from a legitimate zero price so consumers can render
	// "lookup failed" instead of "free". Parse turns it into 0.0.
	Unavailable = "price unavailable"

	// ZeroPrice is the default text when the service reports no lowest
	// price for an item.
	ZeroPrice = "0,00 pуб."
)

// Source is the market price lookup the resolver queries.
type Source interface {
	GetPriceOverview(ctx context.Context, marketHashName string) (*steam.PriceOverview, error)
}

// Resolver resolves item display names to raw market price text, caching
// successful lookups.
type Resolver struct {
	source Source
	cache  cache.Cache // nil disables caching
	ttl    time.Duration
	logger *slog.Logger
}

// NewResolver creates a resolver. A nil cache disables caching; a nil
// logger falls back to slog.Default().
func NewResolver(source Source, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		source: source,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// Resolve returns the raw lowest-price text for an item. Lookup failures
// return Unavailable, never an error: a dead price service must not stop
// the tracking loop. Only successful lookups are cached; the sentinel and
// the absent-field default are not.
func (r *Resolver) Resolve(ctx context.Context, marketHashName string) string {
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, marketHashName); err == nil {
			return cached
		} else if !errors.Is(err, cache.ErrMiss) {
			r.logger.Warn("price cache read failed", "item", marketHashName, "error", err)
		}
	}

	overview, err := r.source.GetPriceOverview(ctx, marketHashName)
	if err != nil {
		r.logger.Warn("price lookup failed", "item", marketHashName, "error", err)
		return Unavailable
	}

	if overview.LowestPrice == "" {
		return ZeroPrice
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, marketHashName, overview.LowestPrice, r.ttl); err != nil {
			r.logger.Warn("price cache write failed", "item", marketHashName, "error", err)
		}
	}

	return overview.LowestPrice
}
