package amqp

import (
	"encoding/json"
	"time"

	"planner/internal/core"
)

type EventKind string

const (
	EventTransactionCreated EventKind = "transaction.created"
	EventTransactionUpdated EventKind = "transaction.updated"
	EventTransactionDeleted EventKind = "transaction.deleted"
)

// LedgerEvent describes one committed ledger mutation. Before is nil for
// creations and After is nil for deletions.
type LedgerEvent struct {
	Kind          EventKind         `json:"kind"`
	TransactionID string            `json:"transactionId"`
	UserID        string            `json:"userId"`
	Before        *core.Transaction `json:"before,omitempty"`
	After         *core.Transaction `json:"after,omitempty"`
	OccurredAt    time.Time         `json:"occurredAt"`
}

// NewLedgerEvent stamps an event for the given snapshots.
func NewLedgerEvent(kind EventKind, userID string, before, after *core.Transaction) *LedgerEvent {
	ev := &LedgerEvent{
		Kind:       kind,
		UserID:     userID,
		Before:     before,
		After:      after,
		OccurredAt: time.Now().UTC(),
	}
	switch {
	case after != nil:
		ev.TransactionID = after.ID
	case before != nil:
		ev.TransactionID = before.ID
	}
	return ev
}

// Current is the transaction state after the event, or the deleted row.
func (e *LedgerEvent) Current() *core.Transaction {
	if e.After != nil {
		return e.After
	}
	return e.Before
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var ev LedgerEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
