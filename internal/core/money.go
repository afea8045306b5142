// Package core holds the ledger domain: parties, people, expenses,
// settlements and the balance computation between the two parties.
//
// All monetary values are exact decimals. Binary floating point is never
// used for amounts, rates or shares, so repeated summation cannot drift
// and the same ledger always folds to the same summary.
package core

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// AccountingCurrency is the single currency all balances are expressed in.
const AccountingCurrency = "CAD"

// Money is an exact decimal amount in a specific currency.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// NewMoney builds a Money value, rejecting negative amounts and unknown
// currency codes.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if err := ValidateCurrency(currency); err != nil {
		return Money{}, err
	}
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: negative amount %s", ErrInvalidAmount, amount)
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// MustMoney is NewMoney for statically known values; it panics on error.
// Intended for tests and seed data only.
func MustMoney(amount, currency string) Money {
	m, err := NewMoney(decimal.RequireFromString(amount), currency)
	if err != nil {
		panic(err)
	}
	return m
}

// ValidateCurrency checks the code against the ISO 4217 table.
func ValidateCurrency(code string) error {
	if gomoney.GetCurrency(strings.ToUpper(strings.TrimSpace(code))) == nil {
		return fmt.Errorf("%w: unknown currency %q", ErrValidation, code)
	}
	return nil
}

// Add sums two amounts of the same currency. Cross-currency addition is
// refused: convert to the accounting currency first.
func (m Money) Add(n Money) (Money, error) {
	if m.Currency != n.Currency {
		return Money{}, fmt.Errorf("%w: cannot add %s to %s", ErrValidation, n.Currency, m.Currency)
	}
	return Money{Amount: m.Amount.Add(n.Amount), Currency: m.Currency}, nil
}

// Convert applies a point-in-time exchange rate, yielding the equivalent
// amount in the target currency. The rate must be strictly positive.
func (m Money) Convert(rate decimal.Decimal, target string) (Money, error) {
	if !rate.IsPositive() {
		return Money{}, fmt.Errorf("%w: non-positive rate %s", ErrInvalidAmount, rate)
	}
	if err := ValidateCurrency(target); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Mul(rate), Currency: strings.ToUpper(strings.TrimSpace(target))}, nil
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.Amount.IsZero() }

// StringFixed renders the amount with the currency's minor-unit precision
// (2 for CAD). Display only; arithmetic stays on the full value.
func (m Money) StringFixed() string {
	places := int32(2)
	if cur := gomoney.GetCurrency(m.Currency); cur != nil {
		places = int32(cur.Fraction)
	}
	return m.Amount.StringFixed(places)
}

func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency
}
