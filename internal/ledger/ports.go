// Package ledger defines the ports to the record store. The balance
// engine is a pure fold over whatever snapshot these ports return.
package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

// ExpenseUpdate carries the mutable fields of an expense; nil fields are
// left unchanged. The pinned FX rate can be corrected by a privileged
// caller but is never re-resolved by the system.
type ExpenseUpdate struct {
	Date            *core.Date
	Description     *string
	Category        *core.Category
	Amount          *core.Money
	FxToCAD         *decimal.Decimal
	PaidByID        *string
	WeightHousehold *decimal.Decimal
	WeightBev       *decimal.Decimal
	Notes           *string
}

type (
	// ExpenseStore owns expense records.
	ExpenseStore interface {
		CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
		GetExpense(ctx context.Context, id string) (core.Expense, error)
		ListExpenses(ctx context.Context) ([]core.Expense, error)
		UpdateExpense(ctx context.Context, id string, upd ExpenseUpdate) (core.Expense, error)
		DeleteExpense(ctx context.Context, id string) error
	}

	// SettlementStore owns settlement records. Settlements are immutable:
	// there is no update; corrections are offsetting records, and delete
	// exists for administrative cleanup only.
	SettlementStore interface {
		CreateSettlement(ctx context.Context, s core.Settlement) (core.Settlement, error)
		ListSettlements(ctx context.Context) ([]core.Settlement, error)
		DeleteSettlement(ctx context.Context, id string) error
	}

	// PersonStore is the people/party directory.
	PersonStore interface {
		CreatePerson(ctx context.Context, p core.Person) (core.Person, error)
		GetPerson(ctx context.Context, id string) (core.Person, error)
		ListPeople(ctx context.Context) ([]core.Person, error)
	}

	// Store aggregates all ports behind one backend.
	Store interface {
		ExpenseStore
		SettlementStore
		PersonStore
		Close() error
	}
)
