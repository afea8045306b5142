package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Summary is the net position between the parties, recomputed from the
// full record set on every request and never persisted.
//
// Sign convention: positive Net means Bev currently owes the household,
// negative means the household owes Bev.
type Summary struct {
	BevOwesFromExpenses       decimal.Decimal
	HouseholdOwesFromExpenses decimal.Decimal
	SettlementsBevToHousehold decimal.Decimal
	SettlementsHouseholdToBev decimal.Decimal
	Net                       decimal.Decimal
}

// Summarize folds all expenses and settlements into a Summary.
//
// A party owes its computed share of an expense only when the other party
// paid; the share of a self-paid expense is no cross-party debt and
// contributes nothing. Settlement totals are kept directional so the
// breakdown stays auditable; only Net nets them against each other.
//
// The fold is a pure function of the record set: exact decimal
// accumulation makes it independent of input order.
func Summarize(expenses []Expense, settlements []Settlement) (Summary, error) {
	var s Summary

	for _, e := range expenses {
		shares, err := Split(e)
		if err != nil {
			return Summary{}, fmt.Errorf("split expense %s: %w", e.ID, err)
		}
		switch e.PaidBy.Party {
		case PartyHousehold:
			s.BevOwesFromExpenses = s.BevOwesFromExpenses.Add(shares.Bev.Amount)
		case PartyBev:
			s.HouseholdOwesFromExpenses = s.HouseholdOwesFromExpenses.Add(shares.Household.Amount)
		default:
			return Summary{}, fmt.Errorf("expense %s: %w: unknown payer party", e.ID, ErrValidation)
		}
	}

	for _, st := range settlements {
		switch {
		case st.From.Party == PartyBev && st.To.Party == PartyHousehold:
			s.SettlementsBevToHousehold = s.SettlementsBevToHousehold.Add(st.AmountCAD)
		case st.From.Party == PartyHousehold && st.To.Party == PartyBev:
			s.SettlementsHouseholdToBev = s.SettlementsHouseholdToBev.Add(st.AmountCAD)
		default:
			// Same-party transfer: net effect is zero, skip.
		}
	}

	s.Net = s.BevOwesFromExpenses.Sub(s.HouseholdOwesFromExpenses).
		Sub(s.SettlementsBevToHousehold.Sub(s.SettlementsHouseholdToBev))

	return s, nil
}
