// Package amqp publishes and consumes ledger change events. Events are
// lightweight: only the record kind, id and action travel on the wire;
// consumers fetch current state from the store.
package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record kinds carried in ledger events.
const (
	KindExpense    = "expense"
	KindSettlement = "settlement"
	KindPerson     = "person"
)

// Actions carried in ledger events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// LedgerEvent signals that a record changed.
type LedgerEvent struct {
	Kind      string    `json:"kind"`
	Action    string    `json:"action"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEvent builds an event stamped with the current time.
func NewLedgerEvent(kind, action, id string) *LedgerEvent {
	return &LedgerEvent{
		Kind:      kind,
		Action:    action,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

func (e *LedgerEvent) Validate() error {
	switch e.Kind {
	case KindExpense, KindSettlement, KindPerson:
	default:
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
	switch e.Action {
	case ActionCreated, ActionUpdated, ActionDeleted:
	default:
		return fmt.Errorf("unknown event action %q", e.Action)
	}
	if e.ID == "" {
		return fmt.Errorf("event missing record id")
	}
	return nil
}

// ToJSON converts the event to JSON bytes.
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON parses an event from JSON bytes.
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
