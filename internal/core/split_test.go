package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSplitWeighted(t *testing.T) {
	// 3000 THB at 0.0385 -> 115.50 CAD, split 2:1.
	shares, err := Split(validExpense())
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if !shares.Household.Amount.Equal(decimal.RequireFromString("77")) {
		t.Fatalf("household share %s, want 77", shares.Household.Amount)
	}
	if !shares.Bev.Amount.Equal(decimal.RequireFromString("38.5")) {
		t.Fatalf("bev share %s, want 38.5", shares.Bev.Amount)
	}
	if shares.Household.Currency != AccountingCurrency || shares.Bev.Currency != AccountingCurrency {
		t.Fatal("shares must be in the accounting currency")
	}
}

func TestSplitSharesSumToTotal(t *testing.T) {
	// Weights that do not divide evenly: the Bev share is derived by
	// subtraction, so no remainder can leak.
	cases := []struct {
		amount, fx, wh, wb string
	}{
		{"100", "1", "1", "2"},
		{"0.01", "1", "1", "1"},
		{"3000", "0.0385", "2", "1"},
		{"99.99", "0.7312", "3", "7"},
		{"1", "1", "1", "3"},
	}
	for _, tc := range cases {
		e := validExpense()
		e.Amount = MustMoney(tc.amount, "THB")
		e.FxToCAD = decimal.RequireFromString(tc.fx)
		e.WeightHousehold = decimal.RequireFromString(tc.wh)
		e.WeightBev = decimal.RequireFromString(tc.wb)

		shares, err := Split(e)
		if err != nil {
			t.Fatalf("Split(%+v): %v", tc, err)
		}
		sum := shares.Household.Amount.Add(shares.Bev.Amount)
		if !sum.Equal(TotalCAD(e)) {
			t.Fatalf("shares %s + %s = %s, want exactly %s",
				shares.Household.Amount, shares.Bev.Amount, sum, TotalCAD(e))
		}
	}
}

func TestSplitZeroWeightMeansZeroShare(t *testing.T) {
	e := validExpense()
	e.WeightBev = decimal.Zero
	shares, err := Split(e)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if !shares.Bev.Amount.IsZero() {
		t.Fatalf("bev share %s, want 0", shares.Bev.Amount)
	}
	if !shares.Household.Amount.Equal(TotalCAD(e)) {
		t.Fatalf("household share %s, want full total", shares.Household.Amount)
	}

	e = validExpense()
	e.WeightHousehold = decimal.Zero
	shares, err = Split(e)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if !shares.Household.Amount.IsZero() {
		t.Fatalf("household share %s, want 0", shares.Household.Amount)
	}
}

func TestSplitRejectsInvalidInput(t *testing.T) {
	e := validExpense()
	e.FxToCAD = decimal.Zero
	if _, err := Split(e); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero fx: got %v, want ErrInvalidAmount", err)
	}

	e = validExpense()
	e.Amount.Amount = decimal.NewFromInt(-5)
	if _, err := Split(e); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("negative amount: got %v, want ErrInvalidAmount", err)
	}

	e = validExpense()
	e.WeightHousehold = decimal.Zero
	e.WeightBev = decimal.Zero
	if _, err := Split(e); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("zero weights: got %v, want ErrInvalidWeights", err)
	}
}

func TestSplitIgnoresPayer(t *testing.T) {
	a := validExpense()
	b := validExpense()
	b.PaidBy = Person{ID: "p2", Name: "Bev", Party: PartyBev}

	sa, err := Split(a)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	sb, err := Split(b)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if !sa.Household.Amount.Equal(sb.Household.Amount) || !sa.Bev.Amount.Equal(sb.Bev.Amount) {
		t.Fatal("payer must not affect the split")
	}
}
