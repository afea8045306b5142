package http

import (
	"fmt"
	"net/http"

	"tally/internal/core"
)

type rateView struct {
	Date  string `json:"date"`
	Base  string `json:"base"`
	Quote string `json:"quote"`
	Rate  string `json:"rate"`
}

// handleFxRate quotes a rate for a date without pinning anything; the
// client pins it by sending it back on expense creation.
func (s *Server) handleFxRate(w http.ResponseWriter, r *http.Request) {
	if s.resolver == nil {
		s.respondError(w, r, fmt.Errorf("%w: no rate source configured", core.ErrRateUnavailable))
		return
	}

	q := r.URL.Query()
	base := q.Get("base")
	quote := q.Get("quote")
	if quote == "" {
		quote = core.AccountingCurrency
	}
	if base == "" {
		s.respondError(w, r, fmt.Errorf("%w: missing base parameter", core.ErrValidation))
		return
	}

	date, err := core.ParseDate(q.Get("date"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rate, err := s.resolver.Resolve(r.Context(), date, base, quote)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, rateView{
		Date:  date.String(),
		Base:  base,
		Quote: quote,
		Rate:  rate.String(),
	})
}

func (s *Server) handleRecentCurrencies(w http.ResponseWriter, r *http.Request) {
	if s.recent == nil {
		s.respondJSON(w, http.StatusOK, []string{})
		return
	}
	s.respondJSON(w, http.StatusOK, s.recent.List())
}

type touchCurrencyRequest struct {
	Code string `json:"code"`
}

// handleTouchCurrency bumps a currency in the recently-used ranking
// without recording anything.
func (s *Server) handleTouchCurrency(w http.ResponseWriter, r *http.Request) {
	var req touchCurrencyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := core.ValidateCurrency(req.Code); err != nil {
		s.respondError(w, r, err)
		return
	}
	if s.recent != nil {
		s.recent.Touch(req.Code)
		s.respondJSON(w, http.StatusOK, s.recent.List())
		return
	}
	s.respondJSON(w, http.StatusOK, []string{})
}
