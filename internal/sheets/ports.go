package sheets

import (
	"context"
	"errors"
	"time"

	"planner/internal/core"
)

// ErrInvalidRow is returned for rows missing the fields every export needs.
var ErrInvalidRow = errors.New("invalid ledger row")

// LedgerRow is one line of the ledger audit export.
type LedgerRow struct {
	OccurredAt    time.Time
	Event         string
	TransactionID string
	UserID        string
	Date          core.Date
	Type          core.TransactionType
	Description   string
	Amount        core.Money
	Account       string
	Category      string
}

func (r LedgerRow) Validate() error {
	if r.TransactionID == "" || r.Event == "" || r.OccurredAt.IsZero() {
		return ErrInvalidRow
	}
	return nil
}

// LedgerWriter appends rows to an export target and returns a reference to
// the written row.
type LedgerWriter interface {
	AppendLedgerRow(ctx context.Context, row LedgerRow) (rowRef string, err error)
}
