package http

import (
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

// Decimal fields render as JSON strings so no precision is lost in
// transit; shopspring accepts both strings and numbers on input.

type personView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party"`
}

func toPersonView(p core.Person) personView {
	return personView{ID: p.ID, Name: p.Name, Party: string(p.Party)}
}

type expenseView struct {
	ID              string     `json:"id"`
	Date            string     `json:"date"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	Amount          string     `json:"amount"`
	Currency        string     `json:"currency"`
	FxToCAD         string     `json:"fx_to_cad"`
	PaidBy          personView `json:"paid_by"`
	WeightHousehold string     `json:"weight_household"`
	WeightBev       string     `json:"weight_bev"`
	Notes           string     `json:"notes,omitempty"`
	TotalCAD        string     `json:"total_cad"`
	ShareHousehold  string     `json:"share_household"`
	ShareBev        string     `json:"share_bev"`
	CreatedAt       time.Time  `json:"created_at"`
}

func toExpenseView(e core.Expense) (expenseView, error) {
	shares, err := core.Split(e)
	if err != nil {
		return expenseView{}, err
	}
	return expenseView{
		ID:              e.ID,
		Date:            e.Date.String(),
		Description:     e.Description,
		Category:        string(e.Category),
		Amount:          e.Amount.Amount.String(),
		Currency:        e.Amount.Currency,
		FxToCAD:         e.FxToCAD.String(),
		PaidBy:          toPersonView(e.PaidBy),
		WeightHousehold: e.WeightHousehold.String(),
		WeightBev:       e.WeightBev.String(),
		Notes:           e.Notes,
		TotalCAD:        core.TotalCAD(e).String(),
		ShareHousehold:  shares.Household.Amount.String(),
		ShareBev:        shares.Bev.Amount.String(),
		CreatedAt:       e.CreatedAt,
	}, nil
}

type settlementView struct {
	ID        string     `json:"id"`
	Date      string     `json:"date"`
	From      personView `json:"from"`
	To        personView `json:"to"`
	AmountCAD string     `json:"amount_cad"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toSettlementView(s core.Settlement) settlementView {
	return settlementView{
		ID:        s.ID,
		Date:      s.Date.String(),
		From:      toPersonView(s.From),
		To:        toPersonView(s.To),
		AmountCAD: s.AmountCAD.String(),
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
	}
}

type summaryView struct {
	BevOwesFromExpenses       string `json:"bev_owes_from_expenses"`
	HouseholdOwesFromExpenses string `json:"household_owes_from_expenses"`
	SettlementsBevToHousehold string `json:"settlements_bev_to_household"`
	SettlementsHouseholdToBev string `json:"settlements_household_to_bev"`
	Net                       string `json:"net"`
	Currency                  string `json:"currency"`
}

func toSummaryView(s core.Summary) summaryView {
	return summaryView{
		BevOwesFromExpenses:       s.BevOwesFromExpenses.String(),
		HouseholdOwesFromExpenses: s.HouseholdOwesFromExpenses.String(),
		SettlementsBevToHousehold: s.SettlementsBevToHousehold.String(),
		SettlementsHouseholdToBev: s.SettlementsHouseholdToBev.String(),
		Net:                       s.Net.String(),
		Currency:                  core.AccountingCurrency,
	}
}

type sharesView struct {
	TotalCAD       string `json:"total_cad"`
	ShareHousehold string `json:"share_household"`
	ShareBev       string `json:"share_bev"`
}

type expenseRequest struct {
	Date            string           `json:"date"`
	Description     string           `json:"description"`
	Category        string           `json:"category"`
	Amount          decimal.Decimal  `json:"amount"`
	Currency        string           `json:"currency"`
	FxToCAD         *decimal.Decimal `json:"fx_to_cad,omitempty"`
	PaidByID        string           `json:"paid_by_id"`
	WeightHousehold decimal.Decimal  `json:"weight_household"`
	WeightBev       decimal.Decimal  `json:"weight_bev"`
	Notes           string           `json:"notes,omitempty"`
}

type expenseUpdateRequest struct {
	Date            *string          `json:"date,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Currency        *string          `json:"currency,omitempty"`
	FxToCAD         *decimal.Decimal `json:"fx_to_cad,omitempty"`
	PaidByID        *string          `json:"paid_by_id,omitempty"`
	WeightHousehold *decimal.Decimal `json:"weight_household,omitempty"`
	WeightBev       *decimal.Decimal `json:"weight_bev,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

type settlementRequest struct {
	Date      string          `json:"date"`
	FromID    string          `json:"from_id"`
	ToID      string          `json:"to_id"`
	AmountCAD decimal.Decimal `json:"amount_cad"`
	Notes     string          `json:"notes,omitempty"`
}

type personRequest struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}
