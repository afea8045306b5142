package amqp

import (
	"testing"
)

func TestLedgerEventRoundTrip(t *testing.T) {
	e := NewLedgerEvent(KindExpense, ActionCreated, "abc-123")
	body, err := e.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got, err := LedgerEventFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.Kind != KindExpense || got.Action != ActionCreated || got.ID != "abc-123" {
		t.Fatalf("got %+v", got)
	}
}

func TestLedgerEventValidate(t *testing.T) {
	cases := []struct {
		name  string
		event LedgerEvent
	}{
		{"bad kind", LedgerEvent{Kind: "invoice", Action: ActionCreated, ID: "x"}},
		{"bad action", LedgerEvent{Kind: KindExpense, Action: "archived", ID: "x"}},
		{"missing id", LedgerEvent{Kind: KindExpense, Action: ActionCreated}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.event.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLedgerEventFromJSONRejectsGarbage(t *testing.T) {
	if _, err := LedgerEventFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error")
	}
	if _, err := LedgerEventFromJSON([]byte(`{"kind":"expense"}`)); err == nil {
		t.Fatal("expected validation error")
	}
}
