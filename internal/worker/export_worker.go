// Package worker consumes ledger events and exports the records to the
// audit spreadsheet.
package worker

import (
	"context"
	"errors"
	"fmt"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/export"
	"tally/internal/ledger"
	"tally/internal/log"
)

// ExportWorker fetches the record behind each event from the store and
// appends an audit row for it. Events carry only ids, so a record that
// vanished before the fetch is exported as a tombstone instead of
// failing the delivery.
type ExportWorker struct {
	store  ledger.Store
	rows   export.RowAppender
	logger *log.Logger
}

func NewExportWorker(store ledger.Store, rows export.RowAppender, logger *log.Logger) *ExportWorker {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentWorker})
	}
	return &ExportWorker{store: store, rows: rows, logger: logger}
}

// Run consumes events from the client until ctx is cancelled.
func (w *ExportWorker) Run(ctx context.Context, client *amqp.Client) error {
	return client.ConsumeLedgerEvents(ctx, func(event *amqp.LedgerEvent) error {
		return w.HandleEvent(ctx, event)
	})
}

// HandleEvent exports a single ledger event. Returning an error requeues
// the delivery, so only transient failures (store or sheet I/O) bubble
// up; everything else degrades to a tombstone row.
func (w *ExportWorker) HandleEvent(ctx context.Context, event *amqp.LedgerEvent) error {
	if err := event.Validate(); err != nil {
		w.logger.Warn("dropping invalid event", "error", err)
		return nil
	}

	w.logger.Info("exporting event", "kind", event.Kind, "action", event.Action, "id", event.ID)

	row, err := w.buildRow(ctx, event)
	if err != nil {
		return err
	}

	if err := w.rows.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("append audit row: %w", err)
	}
	return nil
}

func (w *ExportWorker) buildRow(ctx context.Context, event *amqp.LedgerEvent) ([]any, error) {
	if event.Action == amqp.ActionDeleted {
		return export.TombstoneRow(event.Action, event.Kind, event.ID), nil
	}

	switch event.Kind {
	case amqp.KindExpense:
		e, err := w.store.GetExpense(ctx, event.ID)
		if errors.Is(err, core.ErrNotFound) {
			return export.TombstoneRow(event.Action, event.Kind, event.ID), nil
		}
		if err != nil {
			return nil, fmt.Errorf("fetch expense %s: %w", event.ID, err)
		}
		row, err := export.ExpenseRow(event.Action, e)
		if err != nil {
			return nil, fmt.Errorf("render expense %s: %w", event.ID, err)
		}
		return row, nil

	case amqp.KindSettlement:
		s, err := w.findSettlement(ctx, event.ID)
		if errors.Is(err, core.ErrNotFound) {
			return export.TombstoneRow(event.Action, event.Kind, event.ID), nil
		}
		if err != nil {
			return nil, err
		}
		return export.SettlementRow(event.Action, s), nil

	default:
		return export.TombstoneRow(event.Action, event.Kind, event.ID), nil
	}
}

// findSettlement scans the list; the settlement port has no point read
// because settlements are immutable and only ever listed.
func (w *ExportWorker) findSettlement(ctx context.Context, id string) (core.Settlement, error) {
	settlements, err := w.store.ListSettlements(ctx)
	if err != nil {
		return core.Settlement{}, fmt.Errorf("list settlements: %w", err)
	}
	for _, s := range settlements {
		if s.ID == id {
			return s, nil
		}
	}
	return core.Settlement{}, fmt.Errorf("%w: settlement %s", core.ErrNotFound, id)
}
