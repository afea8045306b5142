package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tally/internal/core"
	"tally/internal/ledger"
)

const expenseColumns = `e.id, e.date, e.description, e.category, e.currency, e.amount,
	e.fx_to_cad, e.weight_household, e.weight_bev, e.notes, e.created_at,
	p.id, p.name, p.party`

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, date, description, category, currency, amount,
		  fx_to_cad, paid_by, weight_household, weight_bev, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Date.String(), e.Description, string(e.Category),
		e.Amount.Currency, e.Amount.Amount.String(),
		e.FxToCAD.String(), e.PaidBy.ID,
		e.WeightHousehold.String(), e.WeightBev.String(),
		e.Notes, e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+`
		 FROM expenses e JOIN people p ON p.id = e.paid_by
		 WHERE e.id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, fmt.Errorf("%w: expense %s", core.ErrNotFound, id)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+expenseColumns+`
		 FROM expenses e JOIN people p ON p.id = e.paid_by
		 ORDER BY e.date DESC, e.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

// UpdateExpense applies the non-nil fields of upd inside a transaction,
// validating the merged record before it replaces the stored one.
func (r *SQLiteRepository) UpdateExpense(ctx context.Context, id string, upd ledger.ExpenseUpdate) (core.Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Expense{}, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+expenseColumns+`
		 FROM expenses e JOIN people p ON p.id = e.paid_by
		 WHERE e.id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, fmt.Errorf("%w: expense %s", core.ErrNotFound, id)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("load expense for update: %w", err)
	}

	if upd.Date != nil {
		e.Date = *upd.Date
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.Category != nil {
		e.Category = *upd.Category
	}
	if upd.Amount != nil {
		e.Amount = *upd.Amount
	}
	if upd.FxToCAD != nil {
		e.FxToCAD = *upd.FxToCAD
	}
	if upd.PaidByID != nil {
		var p core.Person
		var party string
		err := tx.QueryRowContext(ctx,
			"SELECT id, name, party FROM people WHERE id = ?", *upd.PaidByID,
		).Scan(&p.ID, &p.Name, &party)
		if errors.Is(err, sql.ErrNoRows) {
			return core.Expense{}, fmt.Errorf("%w: person %s", core.ErrNotFound, *upd.PaidByID)
		}
		if err != nil {
			return core.Expense{}, fmt.Errorf("load payer: %w", err)
		}
		p.Party = core.Party(party)
		e.PaidBy = p
	}
	if upd.WeightHousehold != nil {
		e.WeightHousehold = *upd.WeightHousehold
	}
	if upd.WeightBev != nil {
		e.WeightBev = *upd.WeightBev
	}
	if upd.Notes != nil {
		e.Notes = *upd.Notes
	}

	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE expenses SET date = ?, description = ?, category = ?, currency = ?,
		  amount = ?, fx_to_cad = ?, paid_by = ?, weight_household = ?, weight_bev = ?, notes = ?
		 WHERE id = ?`,
		e.Date.String(), e.Description, string(e.Category), e.Amount.Currency,
		e.Amount.Amount.String(), e.FxToCAD.String(), e.PaidBy.ID,
		e.WeightHousehold.String(), e.WeightBev.String(), e.Notes, id,
	)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Expense{}, fmt.Errorf("commit update: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: expense %s", core.ErrNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e                            core.Expense
		date, category, party        string
		amount, currency, fx, wh, wb string
		createdAt                    string
	)
	err := row.Scan(&e.ID, &date, &e.Description, &category, &currency, &amount,
		&fx, &wh, &wb, &e.Notes, &createdAt,
		&e.PaidBy.ID, &e.PaidBy.Name, &party)
	if err != nil {
		return core.Expense{}, err
	}

	e.Category = core.Category(category)
	e.PaidBy.Party = core.Party(party)
	e.CreatedAt = parseStoredTime(createdAt)

	if e.Date, err = parseStoredDate(date, "date"); err != nil {
		return core.Expense{}, err
	}
	amt, err := parseDecimal(amount, "amount")
	if err != nil {
		return core.Expense{}, err
	}
	e.Amount = core.Money{Amount: amt, Currency: currency}
	if e.FxToCAD, err = parseDecimal(fx, "fx_to_cad"); err != nil {
		return core.Expense{}, err
	}
	if e.WeightHousehold, err = parseDecimal(wh, "weight_household"); err != nil {
		return core.Expense{}, err
	}
	if e.WeightBev, err = parseDecimal(wb, "weight_bev"); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}
