package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Party is one of the two fixed sides of the ledger. The set is closed:
// every person belongs to either the household or Bev, and the sign
// convention of the summary depends on there being exactly two.
type Party string

const (
	PartyHousehold Party = "household"
	PartyBev       Party = "bev"
)

// ParseParty maps a stored slug to a Party.
func ParseParty(s string) (Party, error) {
	switch Party(strings.ToLower(strings.TrimSpace(s))) {
	case PartyHousehold:
		return PartyHousehold, nil
	case PartyBev:
		return PartyBev, nil
	}
	return "", fmt.Errorf("%w: unknown party %q", ErrValidation, s)
}

// Other returns the opposite party.
func (p Party) Other() Party {
	if p == PartyHousehold {
		return PartyBev
	}
	return PartyHousehold
}

func (p Party) Valid() bool { return p == PartyHousehold || p == PartyBev }

// Person is a named member of one party. People are referenced by
// expenses and settlements and are never deleted once referenced.
type Person struct {
	ID    string
	Name  string
	Party Party
}

func (p Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: empty person name", ErrValidation)
	}
	if !p.Party.Valid() {
		return fmt.Errorf("%w: person %q has unknown party", ErrValidation, p.Name)
	}
	return nil
}

// Category classifies an expense.
type Category string

const (
	CategoryLodging    Category = "lodging"
	CategoryFood       Category = "food"
	CategoryTransport  Category = "transport"
	CategoryActivities Category = "activities"
	CategoryOther      Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryLodging, CategoryFood, CategoryTransport, CategoryActivities, CategoryOther:
		return true
	}
	return false
}

// Categories lists all valid categories in display order.
func Categories() []Category {
	return []Category{CategoryLodging, CategoryFood, CategoryTransport, CategoryActivities, CategoryOther}
}

// Date is a calendar date; the time component is always midnight UTC.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: date cannot be zero", ErrValidation)
	}
	return nil
}

func (d Date) String() string { return d.Format("2006-01-02") }

// Expense is one shared cost. Amount is in the origin currency; FxToCAD is
// the rate pinned at creation time. Weights determine how the CAD total is
// allocated between the parties; PaidBy only records who fronted the money
// and never changes the allocation.
type Expense struct {
	ID              string
	Date            Date
	Description     string
	Category        Category
	Amount          Money
	FxToCAD         decimal.Decimal
	PaidBy          Person
	WeightHousehold decimal.Decimal
	WeightBev       decimal.Decimal
	Notes           string
	CreatedAt       time.Time
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: empty description", ErrValidation)
	}
	if len(e.Description) > 200 {
		return fmt.Errorf("%w: description too long (max 200 characters)", ErrValidation)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, e.Category)
	}
	if err := ValidateCurrency(e.Amount.Currency); err != nil {
		return err
	}
	if !e.Amount.Amount.IsPositive() {
		return fmt.Errorf("%w: expense amount must be positive", ErrInvalidAmount)
	}
	if !e.FxToCAD.IsPositive() {
		return fmt.Errorf("%w: fx rate must be positive", ErrInvalidAmount)
	}
	if err := e.PaidBy.Validate(); err != nil {
		return err
	}
	if e.WeightHousehold.IsNegative() || e.WeightBev.IsNegative() {
		return fmt.Errorf("%w: weights must be non-negative", ErrInvalidWeights)
	}
	if !e.WeightHousehold.Add(e.WeightBev).IsPositive() {
		return fmt.Errorf("%w: at least one weight must be positive", ErrInvalidWeights)
	}
	return nil
}

// Settlement is an actual transfer of money between the parties, recorded
// in the accounting currency. Settlements are immutable: corrections are
// new offsetting records.
type Settlement struct {
	ID        string
	Date      Date
	From      Person
	To        Person
	AmountCAD decimal.Decimal
	Notes     string
	CreatedAt time.Time
}

func (s Settlement) Validate() error {
	if err := s.Date.Validate(); err != nil {
		return err
	}
	if err := s.From.Validate(); err != nil {
		return err
	}
	if err := s.To.Validate(); err != nil {
		return err
	}
	if !s.AmountCAD.IsPositive() {
		return fmt.Errorf("%w: settlement amount must be positive", ErrInvalidAmount)
	}
	// From and To in the same party is economically meaningless but
	// harmless: it nets to zero in the summary.
	return nil
}

// Error taxonomy. Wrapped with %w at call sites so callers can errors.Is.
var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidWeights  = errors.New("invalid weights")
	ErrRateUnavailable = errors.New("rate unavailable")
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
)
