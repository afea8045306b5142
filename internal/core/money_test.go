package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewMoney(t *testing.T) {
	cases := []struct {
		amount   string
		currency string
		ok       bool
	}{
		{"12.34", "CAD", true},
		{"0", "THB", true},
		{"3000", "thb", true}, // normalized to upper case
		{"-1", "CAD", false},
		{"10", "XXXX", false},
		{"10", "", false},
	}
	for _, tc := range cases {
		m, err := NewMoney(decimal.RequireFromString(tc.amount), tc.currency)
		if tc.ok {
			if err != nil {
				t.Fatalf("NewMoney(%s, %s): %v", tc.amount, tc.currency, err)
			}
			if m.Currency != "THB" && m.Currency != "CAD" {
				t.Fatalf("currency not normalized: %q", m.Currency)
			}
		} else if err == nil {
			t.Fatalf("NewMoney(%s, %s): expected error", tc.amount, tc.currency)
		}
	}
}

func TestMoneyAdd(t *testing.T) {
	a := MustMoney("10.50", "CAD")
	b := MustMoney("0.25", "CAD")
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !sum.Amount.Equal(decimal.RequireFromString("10.75")) {
		t.Fatalf("got %s", sum.Amount)
	}

	thb := MustMoney("100", "THB")
	if _, err := a.Add(thb); !errors.Is(err, ErrValidation) {
		t.Fatalf("cross-currency add: got %v, want ErrValidation", err)
	}
}

func TestMoneyConvert(t *testing.T) {
	thb := MustMoney("3000", "THB")
	cad, err := thb.Convert(decimal.RequireFromString("0.0385"), "CAD")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !cad.Amount.Equal(decimal.RequireFromString("115.5")) {
		t.Fatalf("got %s, want 115.5", cad.Amount)
	}
	if cad.Currency != "CAD" {
		t.Fatalf("currency %q", cad.Currency)
	}

	if _, err := thb.Convert(decimal.Zero, "CAD"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero rate: got %v, want ErrInvalidAmount", err)
	}
	if _, err := thb.Convert(decimal.NewFromInt(-1), "CAD"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("negative rate: got %v, want ErrInvalidAmount", err)
	}
}

func TestMoneyStringFixed(t *testing.T) {
	if got := MustMoney("115.5", "CAD").StringFixed(); got != "115.50" {
		t.Fatalf("got %q", got)
	}
}
