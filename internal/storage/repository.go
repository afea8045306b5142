// Package storage is the SQLite-backed ledger store.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"tally/internal/core"
	"tally/internal/ledger"
)

var _ ledger.Store = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath
// and runs migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) CreatePerson(ctx context.Context, p core.Person) (core.Person, error) {
	if err := p.Validate(); err != nil {
		return core.Person{}, err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO people (id, name, party) VALUES (?, ?, ?)",
		p.ID, p.Name, string(p.Party),
	)
	if err != nil {
		return core.Person{}, fmt.Errorf("insert person: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) GetPerson(ctx context.Context, id string) (core.Person, error) {
	var p core.Person
	var party string
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, party FROM people WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &party)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Person{}, fmt.Errorf("%w: person %s", core.ErrNotFound, id)
	}
	if err != nil {
		return core.Person{}, fmt.Errorf("get person: %w", err)
	}
	p.Party = core.Party(party)
	return p, nil
}

func (r *SQLiteRepository) ListPeople(ctx context.Context) ([]core.Person, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, party FROM people ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var out []core.Person
	for rows.Next() {
		var p core.Person
		var party string
		if err := rows.Scan(&p.ID, &p.Name, &party); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		p.Party = core.Party(party)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}
	return out, nil
}

// parseDecimal converts a stored TEXT decimal back to an exact value.
func parseDecimal(s, column string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("corrupt %s value %q: %w", column, s, err)
	}
	return d, nil
}

func parseStoredDate(s, column string) (core.Date, error) {
	d, err := core.ParseDate(s)
	if err != nil {
		return core.Date{}, fmt.Errorf("corrupt %s value %q: %w", column, s, err)
	}
	return d, nil
}

func parseStoredTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
