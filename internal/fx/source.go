// Package fx resolves historical exchange rates into the accounting
// currency. Rates are resolved once, at expense-creation time, and pinned
// on the record; the resolver is never consulted again for a stored
// expense.
package fx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

// RateSource supplies the historical rate from base to quote on a
// calendar date. Implementations must return core.ErrRateUnavailable
// (possibly wrapped) when no rate can be supplied; they must never
// silently fall back to a rate of 1.
type RateSource interface {
	Rate(ctx context.Context, date core.Date, base, quote string) (decimal.Decimal, error)
}

// DefaultTimeout bounds a single upstream rate request. A timeout is
// reported as ErrRateUnavailable so the caller can supply a manual rate.
const DefaultTimeout = 10 * time.Second

// Frankfurter fetches historical rates from api.frankfurter.app, which
// needs no API key.
type Frankfurter struct {
	BaseURL string
	Client  *http.Client
}

// NewFrankfurter creates a rate source with the default endpoint and a
// bounded-timeout HTTP client.
func NewFrankfurter() *Frankfurter {
	return &Frankfurter{
		BaseURL: "https://api.frankfurter.app",
		Client:  &http.Client{Timeout: DefaultTimeout},
	}
}

// Rates arrive as JSON numbers; keep them raw and parse into decimals
// without going through float64.
type frankfurterResponse struct {
	Base     string                     `json:"base"`
	Date     string                     `json:"date"`
	RawRates map[string]json.RawMessage `json:"rates"`
}

// Rate implements RateSource.
func (f *Frankfurter) Rate(ctx context.Context, date core.Date, base, quote string) (decimal.Decimal, error) {
	u := fmt.Sprintf("%s/%s?from=%s&to=%s",
		f.BaseURL, date.Format("2006-01-02"), url.QueryEscape(base), url.QueryEscape(quote))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: build request: %v", core.ErrRateUnavailable, err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s/%s on %s: %v", core.ErrRateUnavailable, base, quote, date, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: upstream status %d for %s/%s on %s",
			core.ErrRateUnavailable, resp.StatusCode, base, quote, date)
	}

	var body frankfurterResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decode response: %v", core.ErrRateUnavailable, err)
	}

	raw, ok := body.RawRates[quote]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: missing %s in response for %s on %s",
			core.ErrRateUnavailable, quote, base, date)
	}

	rate, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid rate value %q", core.ErrRateUnavailable, raw)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate %s", core.ErrRateUnavailable, rate)
	}
	return rate, nil
}

// IsUnavailable reports whether err means the rate source could not
// supply a rate (including timeouts).
func IsUnavailable(err error) bool {
	return errors.Is(err, core.ErrRateUnavailable) || errors.Is(err, context.DeadlineExceeded)
}
