// Package services orchestrates ledger operations across the store and
// the event pipeline.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/ledger"
)

// EventPublisher publishes ledger change events. It is optional: a nil
// publisher disables eventing without affecting ledger writes.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event *amqp.LedgerEvent) error
}

// LedgerService coordinates validation, persistence and event
// publication for the two-party ledger.
type LedgerService struct {
	store     ledger.Store
	publisher EventPublisher
}

func NewLedgerService(store ledger.Store, publisher EventPublisher) *LedgerService {
	return &LedgerService{store: store, publisher: publisher}
}

// ExpenseInput carries the fields of a new expense. The FX rate must
// already be resolved (or manually supplied); the service never fills
// one in.
type ExpenseInput struct {
	Date            core.Date
	Description     string
	Category        core.Category
	Currency        string
	Amount          decimal.Decimal
	FxToCAD         decimal.Decimal
	PaidByID        string
	WeightHousehold decimal.Decimal
	WeightBev       decimal.Decimal
	Notes           string
}

func (s *LedgerService) buildExpense(ctx context.Context, in ExpenseInput) (core.Expense, error) {
	payer, err := s.store.GetPerson(ctx, in.PaidByID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("resolve payer: %w", err)
	}
	amount, err := core.NewMoney(in.Amount, in.Currency)
	if err != nil {
		return core.Expense{}, err
	}
	e := core.Expense{
		Date:            in.Date,
		Description:     in.Description,
		Category:        in.Category,
		Amount:          amount,
		FxToCAD:         in.FxToCAD,
		PaidBy:          payer,
		WeightHousehold: in.WeightHousehold,
		WeightBev:       in.WeightBev,
		Notes:           in.Notes,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

// CreateExpense validates and persists a new expense. Nothing is stored
// when validation fails.
func (s *LedgerService) CreateExpense(ctx context.Context, in ExpenseInput) (core.Expense, error) {
	e, err := s.buildExpense(ctx, in)
	if err != nil {
		return core.Expense{}, err
	}

	created, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.publish(ctx, amqp.NewLedgerEvent(amqp.KindExpense, amqp.ActionCreated, created.ID))
	return created, nil
}

// PreviewSplit computes the CAD shares an expense would produce, without
// touching the store. Used at entry time for validation and preview.
func (s *LedgerService) PreviewSplit(ctx context.Context, in ExpenseInput) (core.Shares, error) {
	e, err := s.buildExpense(ctx, in)
	if err != nil {
		return core.Shares{}, err
	}
	return core.Split(e)
}

func (s *LedgerService) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	return s.store.GetExpense(ctx, id)
}

func (s *LedgerService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return s.store.ListExpenses(ctx)
}

func (s *LedgerService) UpdateExpense(ctx context.Context, id string, upd ledger.ExpenseUpdate) (core.Expense, error) {
	updated, err := s.store.UpdateExpense(ctx, id, upd)
	if err != nil {
		return core.Expense{}, err
	}
	s.publish(ctx, amqp.NewLedgerEvent(amqp.KindExpense, amqp.ActionUpdated, id))
	return updated, nil
}

func (s *LedgerService) DeleteExpense(ctx context.Context, id string) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.NewLedgerEvent(amqp.KindExpense, amqp.ActionDeleted, id))
	return nil
}

// SettlementInput carries the fields of a new settlement, always in the
// accounting currency.
type SettlementInput struct {
	Date      core.Date
	FromID    string
	ToID      string
	AmountCAD decimal.Decimal
	Notes     string
}

func (s *LedgerService) CreateSettlement(ctx context.Context, in SettlementInput) (core.Settlement, error) {
	from, err := s.store.GetPerson(ctx, in.FromID)
	if err != nil {
		return core.Settlement{}, fmt.Errorf("resolve sender: %w", err)
	}
	to, err := s.store.GetPerson(ctx, in.ToID)
	if err != nil {
		return core.Settlement{}, fmt.Errorf("resolve recipient: %w", err)
	}

	st := core.Settlement{
		Date:      in.Date,
		From:      from,
		To:        to,
		AmountCAD: in.AmountCAD,
		Notes:     in.Notes,
	}
	if err := st.Validate(); err != nil {
		return core.Settlement{}, err
	}

	created, err := s.store.CreateSettlement(ctx, st)
	if err != nil {
		return core.Settlement{}, fmt.Errorf("save settlement: %w", err)
	}

	s.publish(ctx, amqp.NewLedgerEvent(amqp.KindSettlement, amqp.ActionCreated, created.ID))
	return created, nil
}

func (s *LedgerService) ListSettlements(ctx context.Context) ([]core.Settlement, error) {
	return s.store.ListSettlements(ctx)
}

func (s *LedgerService) DeleteSettlement(ctx context.Context, id string) error {
	if err := s.store.DeleteSettlement(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.NewLedgerEvent(amqp.KindSettlement, amqp.ActionDeleted, id))
	return nil
}

func (s *LedgerService) ListPeople(ctx context.Context) ([]core.Person, error) {
	return s.store.ListPeople(ctx)
}

func (s *LedgerService) CreatePerson(ctx context.Context, p core.Person) (core.Person, error) {
	created, err := s.store.CreatePerson(ctx, p)
	if err != nil {
		return core.Person{}, err
	}
	s.publish(ctx, amqp.NewLedgerEvent(amqp.KindPerson, amqp.ActionCreated, created.ID))
	return created, nil
}

// Summary folds one snapshot of the full record set into the net
// position. The service holds no state between calls.
func (s *LedgerService) Summary(ctx context.Context) (core.Summary, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("list expenses: %w", err)
	}
	settlements, err := s.store.ListSettlements(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("list settlements: %w", err)
	}
	return core.Summarize(expenses, settlements)
}

// publish sends an event if a publisher is configured. Failures are
// logged, never surfaced: the ledger write already succeeded.
func (s *LedgerService) publish(ctx context.Context, event *amqp.LedgerEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"kind", event.Kind,
			"action", event.Action,
			"id", event.ID,
			"error", err)
	}
}

// Close releases the underlying store.
func (s *LedgerService) Close() error {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			return fmt.Errorf("close store: %w", err)
		}
	}
	return nil
}
