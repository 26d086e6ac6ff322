package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"planner/internal/amqp"
	"planner/internal/core"
	"planner/internal/sheets"
)

// CategoryReader looks up a category regardless of owner.
type CategoryReader interface {
	GetCategoryByID(ctx context.Context, id string) (core.Category, error)
}

// LedgerWorker exports ledger events and flags categories that went over
// budget.
type LedgerWorker struct {
	categories CategoryReader
	export     sheets.LedgerWriter
}

func NewLedgerWorker(categories CategoryReader, export sheets.LedgerWriter) *LedgerWorker {
	return &LedgerWorker{categories: categories, export: export}
}

// HandleLedgerEvent is the AMQP handler. An export error is returned so the
// message is requeued; budget checks only log.
func (w *LedgerWorker) HandleLedgerEvent(ctx context.Context, ev *amqp.LedgerEvent) error {
	if ev.Current() == nil {
		slog.WarnContext(ctx, "Dropping ledger event without transaction snapshot",
			"kind", ev.Kind,
			"transaction_id", ev.TransactionID)
		return nil
	}

	ref, err := w.export.AppendLedgerRow(ctx, rowFromEvent(ev))
	if err != nil {
		return fmt.Errorf("export ledger row: %w", err)
	}
	slog.InfoContext(ctx, "Exported ledger event",
		"kind", ev.Kind,
		"transaction_id", ev.TransactionID,
		"row", ref)

	if _, err := w.checkBudget(ctx, ev); err != nil {
		slog.WarnContext(ctx, "Budget check failed", "transaction_id", ev.TransactionID, "error", err)
	}
	return nil
}

// checkBudget reports whether the category touched by the event now spends
// more than its budget.
func (w *LedgerWorker) checkBudget(ctx context.Context, ev *amqp.LedgerEvent) (bool, error) {
	if w.categories == nil || ev.After == nil || !ev.After.Posting().SpendsCategory() {
		return false, nil
	}

	c, err := w.categories.GetCategoryByID(ctx, ev.After.CategoryID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if c.CurrentSpent.Cents <= c.Budget.Cents {
		return false, nil
	}

	slog.WarnContext(ctx, "Category over budget",
		"category_id", c.ID,
		"category", c.Name,
		"user_id", c.UserID,
		"budget", c.Budget.String(),
		"spent", c.CurrentSpent.String())
	return true, nil
}

func rowFromEvent(ev *amqp.LedgerEvent) sheets.LedgerRow {
	t := ev.Current()
	row := sheets.LedgerRow{
		OccurredAt:    ev.OccurredAt,
		Event:         string(ev.Kind),
		TransactionID: ev.TransactionID,
		UserID:        ev.UserID,
		Date:          t.Date,
		Type:          t.Type,
		Description:   t.Description,
		Amount:        t.Amount,
	}
	if ev.Kind == amqp.EventTransactionDeleted {
		row.Amount = row.Amount.Neg()
	}
	if t.BankAccount != nil {
		row.Account = t.BankAccount.Name
	}
	if t.Category != nil {
		row.Category = t.Category.Name
	}
	return row
}
