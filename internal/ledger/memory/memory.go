// Package memory is a mutex-guarded in-memory ledger store, used as the
// default backend and in tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tally/internal/core"
	"tally/internal/ledger"
)

var _ ledger.Store = (*Store)(nil)

type Store struct {
	mu          sync.Mutex
	people      map[string]core.Person
	expenses    map[string]core.Expense
	settlements map[string]core.Settlement
}

func New() *Store {
	return &Store{
		people:      make(map[string]core.Person),
		expenses:    make(map[string]core.Expense),
		settlements: make(map[string]core.Settlement),
	}
}

// Seed inserts people without validation side effects; intended for
// bootstrap and tests.
func (s *Store) Seed(people ...core.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range people {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		s.people[p.ID] = p
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) CreatePerson(_ context.Context, p core.Person) (core.Person, error) {
	if err := p.Validate(); err != nil {
		return core.Person{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	s.people[p.ID] = p
	return p, nil
}

func (s *Store) GetPerson(_ context.Context, id string) (core.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.people[id]
	if !ok {
		return core.Person{}, fmt.Errorf("%w: person %s", core.ErrNotFound, id)
	}
	return p, nil
}

func (s *Store) ListPeople(_ context.Context) ([]core.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Person, 0, len(s.people))
	for _, p := range s.people {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateExpense(_ context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	s.expenses[e.ID] = e
	return e, nil
}

func (s *Store) GetExpense(_ context.Context, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[id]
	if !ok {
		return core.Expense{}, fmt.Errorf("%w: expense %s", core.ErrNotFound, id)
	}
	return e, nil
}

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		out = append(out, e)
	}
	// Newest first, matching the ledger's display order.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) UpdateExpense(ctx context.Context, id string, upd ledger.ExpenseUpdate) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok {
		return core.Expense{}, fmt.Errorf("%w: expense %s", core.ErrNotFound, id)
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
		p, ok := s.people[*upd.PaidByID]
		if !ok {
			return core.Expense{}, fmt.Errorf("%w: person %s", core.ErrNotFound, *upd.PaidByID)
		}
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
	s.expenses[id] = e
	return e, nil
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[id]; !ok {
		return fmt.Errorf("%w: expense %s", core.ErrNotFound, id)
	}
	delete(s.expenses, id)
	return nil
}

func (s *Store) CreateSettlement(_ context.Context, st core.Settlement) (core.Settlement, error) {
	if err := st.Validate(); err != nil {
		return core.Settlement{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now().UTC()
	}
	s.settlements[st.ID] = st
	return st, nil
}

func (s *Store) ListSettlements(_ context.Context) ([]core.Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Settlement, 0, len(s.settlements))
	for _, st := range s.settlements {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) DeleteSettlement(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.settlements[id]; !ok {
		return fmt.Errorf("%w: settlement %s", core.ErrNotFound, id)
	}
	delete(s.settlements, id)
	return nil
}
