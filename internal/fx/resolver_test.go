package fx

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

type fakeSource struct {
	rate  decimal.Decimal
	err   error
	calls int
}

func (f *fakeSource) Rate(ctx context.Context, date core.Date, base, quote string) (decimal.Decimal, error) {
	f.calls++
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.rate, nil
}

func TestResolveSameCurrencyIsExactlyOne(t *testing.T) {
	src := &fakeSource{rate: decimal.NewFromInt(99)}
	r := NewResolver(src)

	rate, err := r.Resolve(context.Background(), core.NewDate(2025, 10, 23), "CAD", "CAD")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !rate.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("rate = %s, want 1", rate)
	}
	if src.calls != 0 {
		t.Fatalf("source called %d times, want 0", src.calls)
	}
}

func TestResolveCachesPerDateAndPair(t *testing.T) {
	src := &fakeSource{rate: decimal.RequireFromString("0.0385")}
	r := NewResolver(src)
	date := core.NewDate(2025, 10, 23)

	for i := 0; i < 3; i++ {
		rate, err := r.Resolve(context.Background(), date, "THB", "CAD")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if !rate.Equal(decimal.RequireFromString("0.0385")) {
			t.Fatalf("rate = %s", rate)
		}
	}
	if src.calls != 1 {
		t.Fatalf("source called %d times, want 1", src.calls)
	}

	// Different date misses the cache.
	if _, err := r.Resolve(context.Background(), core.NewDate(2025, 10, 24), "THB", "CAD"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.calls != 2 {
		t.Fatalf("source called %d times, want 2", src.calls)
	}
}

func TestResolveUnavailableIsNeverOne(t *testing.T) {
	src := &fakeSource{err: core.ErrRateUnavailable}
	r := NewResolver(src)

	rate, err := r.Resolve(context.Background(), core.NewDate(2025, 10, 23), "THB", "CAD")
	if !errors.Is(err, core.ErrRateUnavailable) {
		t.Fatalf("got %v, want ErrRateUnavailable", err)
	}
	if rate.Equal(decimal.NewFromInt(1)) {
		t.Fatal("an unavailable rate must not default to 1")
	}
}

func TestResolveRejectsUnknownCurrency(t *testing.T) {
	r := NewResolver(&fakeSource{rate: decimal.NewFromInt(1)})
	if _, err := r.Resolve(context.Background(), core.NewDate(2025, 10, 23), "NOPE", "CAD"); !errors.Is(err, core.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestRecentCurrencies(t *testing.T) {
	r := NewRecentCurrencies(3)
	for _, c := range []string{"thb", "CAD", "USD", "EUR"} {
		r.Touch(c)
	}
	got := r.List()
	want := []string{"EUR", "USD", "CAD"} // THB evicted beyond pin count
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	// Re-touching moves to front without growing the list.
	r.Touch("CAD")
	got = r.List()
	if got[0] != "CAD" || len(got) != 3 {
		t.Fatalf("got %v", got)
	}

	r.Touch("  ")
	if len(r.List()) != 3 {
		t.Fatal("blank code must be ignored")
	}
}
