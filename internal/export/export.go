// Package export renders ledger records as spreadsheet rows. The export
// is an append-only audit trail: updates and deletions append new rows
// instead of rewriting history.
package export

import (
	"context"
	"time"

	"tally/internal/core"
)

// RowAppender appends one row to the export destination.
type RowAppender interface {
	AppendRow(ctx context.Context, row []any) error
}

// Header is the column layout of the audit sheet.
func Header() []any {
	return []any{
		"exported_at", "action", "kind", "id", "date", "description",
		"category", "amount", "currency", "fx_to_cad", "total_cad",
		"share_household", "share_bev", "paid_by", "party", "notes",
	}
}

// ExpenseRow renders an expense with its computed shares.
func ExpenseRow(action string, e core.Expense) ([]any, error) {
	shares, err := core.Split(e)
	if err != nil {
		return nil, err
	}
	return []any{
		time.Now().UTC().Format(time.RFC3339),
		action,
		"expense",
		e.ID,
		e.Date.String(),
		e.Description,
		string(e.Category),
		e.Amount.Amount.String(),
		e.Amount.Currency,
		e.FxToCAD.String(),
		core.TotalCAD(e).String(),
		shares.Household.Amount.String(),
		shares.Bev.Amount.String(),
		e.PaidBy.Name,
		string(e.PaidBy.Party),
		e.Notes,
	}, nil
}

// SettlementRow renders a settlement. The amount lands in the total
// column; split columns stay empty.
func SettlementRow(action string, s core.Settlement) []any {
	return []any{
		time.Now().UTC().Format(time.RFC3339),
		action,
		"settlement",
		s.ID,
		s.Date.String(),
		s.From.Name + " -> " + s.To.Name,
		"",
		s.AmountCAD.String(),
		core.AccountingCurrency,
		"",
		s.AmountCAD.String(),
		"",
		"",
		s.From.Name,
		string(s.From.Party),
		s.Notes,
	}
}

// TombstoneRow marks a record known only by id, such as one deleted
// before the consumer could fetch it.
func TombstoneRow(action, kind, id string) []any {
	return []any{
		time.Now().UTC().Format(time.RFC3339),
		action,
		kind,
		id,
		"", "", "", "", "", "", "", "", "", "", "", "",
	}
}
