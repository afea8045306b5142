package core

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

var (
	chris = Person{ID: "p1", Name: "Chris", Party: PartyHousehold}
	bev   = Person{ID: "p2", Name: "Bev", Party: PartyBev}
)

func TestSummarizeEmptyLedger(t *testing.T) {
	s, err := Summarize(nil, nil)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	for name, v := range map[string]decimal.Decimal{
		"bev_owes": s.BevOwesFromExpenses,
		"hh_owes":  s.HouseholdOwesFromExpenses,
		"s_bev_hh": s.SettlementsBevToHousehold,
		"s_hh_bev": s.SettlementsHouseholdToBev,
		"net":      s.Net,
	} {
		if !v.IsZero() {
			t.Fatalf("%s = %s, want 0", name, v)
		}
	}
}

func TestSummarizeScenario(t *testing.T) {
	// 3000 THB at 0.0385 paid by the household, split 2:1 -> Bev owes
	// 38.50; a 50 CAD settlement from Bev overshoots by 11.50.
	expense := validExpense()
	settlement := Settlement{
		ID:        "s1",
		Date:      NewDate(2025, 11, 1),
		From:      bev,
		To:        chris,
		AmountCAD: decimal.NewFromInt(50),
	}

	s, err := Summarize([]Expense{expense}, []Settlement{settlement})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !s.BevOwesFromExpenses.Equal(decimal.RequireFromString("38.5")) {
		t.Fatalf("bev_owes_from_expenses = %s, want 38.5", s.BevOwesFromExpenses)
	}
	if !s.HouseholdOwesFromExpenses.IsZero() {
		t.Fatalf("household_owes_from_expenses = %s, want 0", s.HouseholdOwesFromExpenses)
	}
	if !s.SettlementsBevToHousehold.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("settlements_bev_to_household = %s, want 50", s.SettlementsBevToHousehold)
	}
	if !s.Net.Equal(decimal.RequireFromString("-11.5")) {
		t.Fatalf("net = %s, want -11.5 (household owes Bev)", s.Net)
	}
}

func TestSummarizeSelfPaidShareIsNoDebt(t *testing.T) {
	// Bev pays, Bev's own share is not cross-party debt; only the
	// household's share becomes a debt of the household.
	e := validExpense()
	e.PaidBy = bev

	s, err := Summarize([]Expense{e}, nil)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !s.BevOwesFromExpenses.IsZero() {
		t.Fatalf("bev_owes_from_expenses = %s, want 0", s.BevOwesFromExpenses)
	}
	if !s.HouseholdOwesFromExpenses.Equal(decimal.RequireFromString("77")) {
		t.Fatalf("household_owes_from_expenses = %s, want 77", s.HouseholdOwesFromExpenses)
	}
}

func TestSummarizeDirectionalSettlementsNotCancelled(t *testing.T) {
	a := Settlement{ID: "s1", Date: NewDate(2025, 11, 1), From: bev, To: chris, AmountCAD: decimal.NewFromInt(30)}
	b := Settlement{ID: "s2", Date: NewDate(2025, 11, 1), From: chris, To: bev, AmountCAD: decimal.NewFromInt(20)}

	s, err := Summarize(nil, []Settlement{a, b})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	// Both directions stay visible in the breakdown; only Net nets them.
	if !s.SettlementsBevToHousehold.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("bev->household = %s, want 30", s.SettlementsBevToHousehold)
	}
	if !s.SettlementsHouseholdToBev.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("household->bev = %s, want 20", s.SettlementsHouseholdToBev)
	}
	if !s.Net.Equal(decimal.NewFromInt(-10)) {
		t.Fatalf("net = %s, want -10", s.Net)
	}
}

func TestSummarizeSamePartySettlementIsNeutral(t *testing.T) {
	tressa := Person{ID: "p3", Name: "Tressa", Party: PartyHousehold}
	st := Settlement{ID: "s1", Date: NewDate(2025, 11, 1), From: chris, To: tressa, AmountCAD: decimal.NewFromInt(100)}

	s, err := Summarize(nil, []Settlement{st})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !s.Net.IsZero() || !s.SettlementsBevToHousehold.IsZero() || !s.SettlementsHouseholdToBev.IsZero() {
		t.Fatalf("same-party settlement must be neutral, got %+v", s)
	}
}

func TestSummarizePermutationInvariance(t *testing.T) {
	expenses := []Expense{}
	amounts := []string{"3000", "120.55", "7.25", "999.99", "42"}
	weights := [][2]string{{"2", "1"}, {"1", "1"}, {"0", "1"}, {"3", "7"}, {"1", "0"}}
	for i, a := range amounts {
		e := validExpense()
		e.ID = a
		e.Amount = MustMoney(a, "THB")
		e.WeightHousehold = decimal.RequireFromString(weights[i][0])
		e.WeightBev = decimal.RequireFromString(weights[i][1])
		if i%2 == 1 {
			e.PaidBy = bev
		}
		expenses = append(expenses, e)
	}
	settlements := []Settlement{
		{ID: "s1", Date: NewDate(2025, 11, 1), From: bev, To: chris, AmountCAD: decimal.RequireFromString("12.34")},
		{ID: "s2", Date: NewDate(2025, 11, 2), From: chris, To: bev, AmountCAD: decimal.RequireFromString("56.78")},
		{ID: "s3", Date: NewDate(2025, 11, 3), From: bev, To: chris, AmountCAD: decimal.RequireFromString("0.01")},
	}

	want, err := Summarize(expenses, settlements)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		es := append([]Expense(nil), expenses...)
		ss := append([]Settlement(nil), settlements...)
		rng.Shuffle(len(es), func(a, b int) { es[a], es[b] = es[b], es[a] })
		rng.Shuffle(len(ss), func(a, b int) { ss[a], ss[b] = ss[b], ss[a] })

		got, err := Summarize(es, ss)
		if err != nil {
			t.Fatalf("Summarize (shuffle %d): %v", i, err)
		}
		if !got.Net.Equal(want.Net) ||
			!got.BevOwesFromExpenses.Equal(want.BevOwesFromExpenses) ||
			!got.HouseholdOwesFromExpenses.Equal(want.HouseholdOwesFromExpenses) ||
			!got.SettlementsBevToHousehold.Equal(want.SettlementsBevToHousehold) ||
			!got.SettlementsHouseholdToBev.Equal(want.SettlementsHouseholdToBev) {
			t.Fatalf("shuffle %d changed the summary: got %+v, want %+v", i, got, want)
		}
	}
}
