package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tally/internal/core"
)

func (r *SQLiteRepository) CreateSettlement(ctx context.Context, s core.Settlement) (core.Settlement, error) {
	if err := s.Validate(); err != nil {
		return core.Settlement{}, err
	}
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settlements (id, date, from_person, to_person, amount_cad, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Date.String(), s.From.ID, s.To.ID,
		s.AmountCAD.String(), s.Notes, s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return core.Settlement{}, fmt.Errorf("insert settlement: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) ListSettlements(ctx context.Context) ([]core.Settlement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.date, s.amount_cad, s.notes, s.created_at,
		   f.id, f.name, f.party, t.id, t.name, t.party
		 FROM settlements s
		 JOIN people f ON f.id = s.from_person
		 JOIN people t ON t.id = s.to_person
		 ORDER BY s.date DESC, s.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}
	defer rows.Close()

	var out []core.Settlement
	for rows.Next() {
		var (
			s                       core.Settlement
			date, amount, createdAt string
			fromParty, toParty      string
		)
		err := rows.Scan(&s.ID, &date, &amount, &s.Notes, &createdAt,
			&s.From.ID, &s.From.Name, &fromParty,
			&s.To.ID, &s.To.Name, &toParty)
		if err != nil {
			return nil, fmt.Errorf("scan settlement: %w", err)
		}
		s.From.Party = core.Party(fromParty)
		s.To.Party = core.Party(toParty)
		s.CreatedAt = parseStoredTime(createdAt)
		if s.Date, err = parseStoredDate(date, "date"); err != nil {
			return nil, err
		}
		if s.AmountCAD, err = parseDecimal(amount, "amount_cad"); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settlements: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) DeleteSettlement(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM settlements WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete settlement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete settlement: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: settlement %s", core.ErrNotFound, id)
	}
	return nil
}
