package fx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/cache"
	"tally/internal/core"
)

// Resolver answers rate lookups, memoizing results per (date, base,
// quote). Historical rates never change upstream within a day, so a
// generous TTL is safe; the cache only saves round trips at data-entry
// time and has no effect on stored records.
type Resolver struct {
	source RateSource
	rates  *cache.LRUCache[decimal.Decimal]
}

// NewResolver wraps a rate source with an LRU cache.
func NewResolver(source RateSource) *Resolver {
	return &Resolver{
		source: source,
		rates:  cache.NewLRUCache[decimal.Decimal](256, 24*time.Hour),
	}
}

// Cache exposes the rate cache for expiry sweeps.
func (r *Resolver) Cache() cache.Cleaner { return r.rates }

// Resolve returns the base→quote rate on the given date. Identical
// currencies resolve to exactly 1 without an upstream call.
func (r *Resolver) Resolve(ctx context.Context, date core.Date, base, quote string) (decimal.Decimal, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	quote = strings.ToUpper(strings.TrimSpace(quote))
	if err := core.ValidateCurrency(base); err != nil {
		return decimal.Zero, err
	}
	if err := core.ValidateCurrency(quote); err != nil {
		return decimal.Zero, err
	}
	if base == quote {
		return decimal.NewFromInt(1), nil
	}

	key := date.String() + "|" + base + "|" + quote
	if rate, ok := r.rates.Get(key); ok {
		return rate, nil
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	rate, err := r.source.Rate(ctx, date, base, quote)
	if err != nil {
		if IsUnavailable(err) {
			return decimal.Zero, err
		}
		return decimal.Zero, fmt.Errorf("%w: %v", core.ErrRateUnavailable, err)
	}

	r.rates.Set(key, rate)
	return rate, nil
}
