package http

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"tally/internal/core"
	"tally/internal/ledger"
	"tally/internal/services"
)

// expenseInput turns the request body into a service input, resolving
// the FX rate when the client did not pin one explicitly.
func (s *Server) expenseInput(r *http.Request, req expenseRequest) (services.ExpenseInput, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return services.ExpenseInput{}, err
	}

	var rate decimal.Decimal
	if req.FxToCAD != nil {
		rate = *req.FxToCAD
	} else {
		if s.resolver == nil {
			return services.ExpenseInput{}, fmt.Errorf("%w: fx_to_cad is required", core.ErrValidation)
		}
		rate, err = s.resolver.Resolve(r.Context(), date, req.Currency, core.AccountingCurrency)
		if err != nil {
			return services.ExpenseInput{}, err
		}
	}

	return services.ExpenseInput{
		Date:            date,
		Description:     req.Description,
		Category:        core.Category(req.Category),
		Currency:        req.Currency,
		Amount:          req.Amount,
		FxToCAD:         rate,
		PaidByID:        req.PaidByID,
		WeightHousehold: req.WeightHousehold,
		WeightBev:       req.WeightBev,
		Notes:           req.Notes,
	}, nil
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	in, err := s.expenseInput(r, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	created, err := s.svc.CreateExpense(r.Context(), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if s.recent != nil {
		s.recent.Touch(created.Amount.Currency)
	}

	view, err := toExpenseView(created)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, view)
}

// handlePreviewSplit computes shares for a would-be expense without
// persisting anything.
func (s *Server) handlePreviewSplit(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	in, err := s.expenseInput(r, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	shares, err := s.svc.PreviewSplit(r.Context(), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, sharesView{
		TotalCAD:       shares.Household.Amount.Add(shares.Bev.Amount).String(),
		ShareHousehold: shares.Household.Amount.String(),
		ShareBev:       shares.Bev.Amount.String(),
	})
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.svc.ListExpenses(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	views := make([]expenseView, 0, len(expenses))
	for _, e := range expenses {
		view, err := toExpenseView(e)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		views = append(views, view)
	}
	s.respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.GetExpense(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	view, err := toExpenseView(e)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req expenseUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	upd := ledger.ExpenseUpdate{
		Description:     req.Description,
		FxToCAD:         req.FxToCAD,
		PaidByID:        req.PaidByID,
		WeightHousehold: req.WeightHousehold,
		WeightBev:       req.WeightBev,
		Notes:           req.Notes,
	}
	if req.Date != nil {
		date, err := core.ParseDate(*req.Date)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		upd.Date = &date
	}
	if req.Category != nil {
		category := core.Category(*req.Category)
		upd.Category = &category
	}
	if req.Amount != nil || req.Currency != nil {
		// A money change may touch either component; merge with the
		// stored value so the pair stays consistent.
		current, err := s.svc.GetExpense(r.Context(), id)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		amount := current.Amount.Amount
		currency := current.Amount.Currency
		if req.Amount != nil {
			amount = *req.Amount
		}
		if req.Currency != nil {
			currency = *req.Currency
		}
		money, err := core.NewMoney(amount, currency)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		upd.Amount = &money
	}

	updated, err := s.svc.UpdateExpense(r.Context(), id, upd)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	view, err := toExpenseView(updated)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}
