package fx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

func TestFrankfurterRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2025-10-23" {
			t.Errorf("path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("from"); got != "CAD" {
			t.Errorf("from=%q", got)
		}
		w.Write([]byte(`{"amount":1.0,"base":"CAD","date":"2025-10-23","rates":{"THB":25.3829}}`))
	}))
	defer srv.Close()

	f := &Frankfurter{BaseURL: srv.URL, Client: srv.Client()}
	rate, err := f.Rate(context.Background(), core.NewDate(2025, 10, 23), "CAD", "THB")
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("25.3829")) {
		t.Fatalf("rate = %s, want 25.3829", rate)
	}
}

func TestFrankfurterUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	f := &Frankfurter{BaseURL: srv.URL, Client: srv.Client()}
	if _, err := f.Rate(context.Background(), core.NewDate(2025, 10, 23), "CAD", "THB"); !errors.Is(err, core.ErrRateUnavailable) {
		t.Fatalf("got %v, want ErrRateUnavailable", err)
	}
}

func TestFrankfurterMissingQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"amount":1.0,"base":"CAD","date":"2025-10-23","rates":{}}`))
	}))
	defer srv.Close()

	f := &Frankfurter{BaseURL: srv.URL, Client: srv.Client()}
	if _, err := f.Rate(context.Background(), core.NewDate(2025, 10, 23), "CAD", "THB"); !errors.Is(err, core.ErrRateUnavailable) {
		t.Fatalf("got %v, want ErrRateUnavailable", err)
	}
}
