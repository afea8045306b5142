package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Shares is the CAD-equivalent allocation of one expense.
type Shares struct {
	Household Money
	Bev       Money
}

// Split allocates an expense's CAD total between the parties by weight.
//
// The household share is computed directly and the Bev share derived as
// total minus household, so the two always sum to the exact total: no
// remainder is ever lost to independent rounding. PaidBy does not enter
// the computation.
func Split(e Expense) (Shares, error) {
	if !e.Amount.Amount.IsPositive() {
		return Shares{}, fmt.Errorf("%w: expense amount must be positive", ErrInvalidAmount)
	}
	if !e.FxToCAD.IsPositive() {
		return Shares{}, fmt.Errorf("%w: fx rate must be positive", ErrInvalidAmount)
	}
	if e.WeightHousehold.IsNegative() || e.WeightBev.IsNegative() {
		return Shares{}, fmt.Errorf("%w: weights must be non-negative", ErrInvalidWeights)
	}
	weightTotal := e.WeightHousehold.Add(e.WeightBev)
	if !weightTotal.IsPositive() {
		return Shares{}, fmt.Errorf("%w: at least one weight must be positive", ErrInvalidWeights)
	}

	totalCAD := e.Amount.Amount.Mul(e.FxToCAD)
	household := totalCAD.Mul(e.WeightHousehold).Div(weightTotal)
	bev := totalCAD.Sub(household)

	return Shares{
		Household: Money{Amount: household, Currency: AccountingCurrency},
		Bev:       Money{Amount: bev, Currency: AccountingCurrency},
	}, nil
}

// TotalCAD returns the expense's full cost in the accounting currency.
func TotalCAD(e Expense) decimal.Decimal {
	return e.Amount.Amount.Mul(e.FxToCAD)
}
