package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"tally/internal/core"
	"tally/internal/ledger"
)

func testExpense(paidBy core.Person) core.Expense {
	return core.Expense{
		Date:            core.NewDate(2025, 10, 23),
		Description:     "hotel",
		Category:        core.CategoryLodging,
		Amount:          core.MustMoney("3000", "THB"),
		FxToCAD:         decimal.RequireFromString("0.0385"),
		PaidBy:          paidBy,
		WeightHousehold: decimal.NewFromInt(2),
		WeightBev:       decimal.NewFromInt(1),
	}
}

func TestExpenseRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()
	chris := core.Person{ID: "p1", Name: "Chris", Party: core.PartyHousehold}
	s.Seed(chris)

	created, err := s.CreateExpense(ctx, testExpense(chris))
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated ID")
	}

	got, err := s.GetExpense(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetExpense: %v", err)
	}
	// The stored amount, currency and pinned rate come back exactly.
	if !got.Amount.Amount.Equal(decimal.NewFromInt(3000)) || got.Amount.Currency != "THB" {
		t.Fatalf("amount %s %s", got.Amount.Amount, got.Amount.Currency)
	}
	if !got.FxToCAD.Equal(decimal.RequireFromString("0.0385")) {
		t.Fatalf("fx %s", got.FxToCAD)
	}
}

func TestCreateExpenseValidates(t *testing.T) {
	ctx := context.Background()
	s := New()
	chris := core.Person{ID: "p1", Name: "Chris", Party: core.PartyHousehold}

	e := testExpense(chris)
	e.FxToCAD = decimal.Zero
	if _, err := s.CreateExpense(ctx, e); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}

	e = testExpense(chris)
	e.WeightHousehold = decimal.Zero
	e.WeightBev = decimal.Zero
	if _, err := s.CreateExpense(ctx, e); !errors.Is(err, core.ErrInvalidWeights) {
		t.Fatalf("got %v, want ErrInvalidWeights", err)
	}

	// Nothing was stored.
	list, err := s.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("store holds %d expenses, want 0", len(list))
	}
}

func TestUpdateExpensePartial(t *testing.T) {
	ctx := context.Background()
	s := New()
	chris := core.Person{ID: "p1", Name: "Chris", Party: core.PartyHousehold}
	bev := core.Person{ID: "p2", Name: "Bev", Party: core.PartyBev}
	s.Seed(chris, bev)

	created, err := s.CreateExpense(ctx, testExpense(chris))
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	desc := "beach bungalow"
	updated, err := s.UpdateExpense(ctx, created.ID, ledger.ExpenseUpdate{
		Description: &desc,
		PaidByID:    &bev.ID,
	})
	if err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}
	if updated.Description != desc || updated.PaidBy.Party != core.PartyBev {
		t.Fatalf("update not applied: %+v", updated)
	}
	// Untouched fields survive.
	if !updated.FxToCAD.Equal(created.FxToCAD) {
		t.Fatalf("fx changed: %s", updated.FxToCAD)
	}

	// Invalid updates are rejected and leave the record unchanged.
	badFx := decimal.Zero
	if _, err := s.UpdateExpense(ctx, created.ID, ledger.ExpenseUpdate{FxToCAD: &badFx}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
	got, _ := s.GetExpense(ctx, created.ID)
	if !got.FxToCAD.Equal(created.FxToCAD) {
		t.Fatal("failed update must not mutate the record")
	}

	if _, err := s.UpdateExpense(ctx, "missing", ledger.ExpenseUpdate{Description: &desc}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteExpense(t *testing.T) {
	ctx := context.Background()
	s := New()
	chris := core.Person{ID: "p1", Name: "Chris", Party: core.PartyHousehold}
	s.Seed(chris)

	created, err := s.CreateExpense(ctx, testExpense(chris))
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if err := s.DeleteExpense(ctx, created.ID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	if err := s.DeleteExpense(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSettlements(t *testing.T) {
	ctx := context.Background()
	s := New()
	chris := core.Person{ID: "p1", Name: "Chris", Party: core.PartyHousehold}
	bev := core.Person{ID: "p2", Name: "Bev", Party: core.PartyBev}
	s.Seed(chris, bev)

	st, err := s.CreateSettlement(ctx, core.Settlement{
		Date:      core.NewDate(2025, 11, 1),
		From:      bev,
		To:        chris,
		AmountCAD: decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("CreateSettlement: %v", err)
	}

	list, err := s.ListSettlements(ctx)
	if err != nil {
		t.Fatalf("ListSettlements: %v", err)
	}
	if len(list) != 1 || list[0].ID != st.ID {
		t.Fatalf("got %+v", list)
	}

	if err := s.DeleteSettlement(ctx, st.ID); err != nil {
		t.Fatalf("DeleteSettlement: %v", err)
	}
	if err := s.DeleteSettlement(ctx, st.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestPeople(t *testing.T) {
	ctx := context.Background()
	s := New()

	p, err := s.CreatePerson(ctx, core.Person{Name: "Bev", Party: core.PartyBev})
	if err != nil {
		t.Fatalf("CreatePerson: %v", err)
	}
	got, err := s.GetPerson(ctx, p.ID)
	if err != nil || got.Name != "Bev" {
		t.Fatalf("GetPerson: %v %+v", err, got)
	}
	if _, err := s.GetPerson(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if _, err := s.CreatePerson(ctx, core.Person{Name: "", Party: core.PartyBev}); !errors.Is(err, core.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}
