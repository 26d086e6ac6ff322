package services

import (
	"context"
	"errors"
	"fmt"

	"planner/internal/amqp"
	"planner/internal/core"
	"planner/internal/log"
	"planner/internal/storage"
)

// EventPublisher delivers committed ledger events to other processes.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, ev *amqp.LedgerEvent) error
}

// Invalidator drops views derived from a user's ledger.
type Invalidator interface {
	InvalidateUser(userID string)
}

// LedgerService owns every write that moves account balances or category
// spend. Each operation runs the row change and its adjustments in one
// database transaction.
type LedgerService struct {
	repo        *storage.SQLiteRepository
	publisher   EventPublisher
	invalidator Invalidator
	today       func() core.Date
}

// NewLedgerService wires the service. publisher and invalidator may be nil.
func NewLedgerService(repo *storage.SQLiteRepository, publisher EventPublisher, invalidator Invalidator) *LedgerService {
	return &LedgerService{
		repo:        repo,
		publisher:   publisher,
		invalidator: invalidator,
		today:       core.Today,
	}
}

func (s *LedgerService) Get(ctx context.Context, userID, id string) (core.Transaction, error) {
	return s.repo.GetTransaction(ctx, userID, id)
}

// List returns the user's transactions dated within year/month (1-12),
// optionally restricted to one type.
func (s *LedgerService) List(ctx context.Context, userID string, year, month int, typ core.TransactionType) ([]core.Transaction, error) {
	from, to := core.MonthRange(year, month)
	return s.repo.ListTransactions(ctx, storage.TransactionFilter{
		UserID: userID,
		From:   from,
		To:     to,
		Type:   typ,
	})
}

// Create posts a new transaction and applies its balance and spend effects.
func (s *LedgerService) Create(ctx context.Context, userID string, in core.TransactionInput) (core.Transaction, error) {
	t := core.Transaction{UserID: userID}
	in.ApplyTo(&t)
	if err := t.Validate(s.today()); err != nil {
		return core.Transaction{}, err
	}

	var created core.Transaction
	err := s.repo.InLedgerTx(ctx, func(tx *storage.LedgerTx) error {
		if err := checkReferences(ctx, tx.Queries, userID, t); err != nil {
			return err
		}
		if err := tx.InsertTransaction(ctx, &t); err != nil {
			return err
		}
		if err := tx.Apply(ctx, core.PlanCreate(t.Posting())); err != nil {
			return fmt.Errorf("apply create: %w", err)
		}
		var err error
		created, err = tx.GetTransaction(ctx, userID, t.ID)
		return err
	})
	if err != nil {
		return core.Transaction{}, err
	}

	log.FromContext(ctx).InfoContext(ctx, "Transaction created",
		"transaction_id", created.ID,
		"type", created.Type,
		"amount", created.Amount.String())
	s.afterCommit(ctx, amqp.NewLedgerEvent(amqp.EventTransactionCreated, userID, nil, &created))
	return created, nil
}

// Update applies a partial change. Only the financial differences between
// the stored row and the new one are posted.
func (s *LedgerService) Update(ctx context.Context, userID, id string, in core.TransactionInput) (core.Transaction, error) {
	var before, after core.Transaction
	err := s.repo.InLedgerTx(ctx, func(tx *storage.LedgerTx) error {
		var err error
		if before, err = tx.GetTransaction(ctx, userID, id); err != nil {
			return err
		}

		next := before
		next.BankAccount, next.Category = nil, nil
		in.ApplyTo(&next)
		if err := next.Validate(s.today()); err != nil {
			return err
		}
		if err := checkReferences(ctx, tx.Queries, userID, next); err != nil {
			return err
		}

		if err := tx.UpdateTransaction(ctx, &next); err != nil {
			return err
		}
		if err := tx.Apply(ctx, core.PlanUpdate(before.Posting(), next.Posting())); err != nil {
			return fmt.Errorf("apply update: %w", err)
		}
		after, err = tx.GetTransaction(ctx, userID, id)
		return err
	})
	if err != nil {
		return core.Transaction{}, err
	}

	log.FromContext(ctx).InfoContext(ctx, "Transaction updated", "transaction_id", id)
	s.afterCommit(ctx, amqp.NewLedgerEvent(amqp.EventTransactionUpdated, userID, &before, &after))
	return after, nil
}

// Delete removes the transaction and reverses its effects.
func (s *LedgerService) Delete(ctx context.Context, userID, id string) error {
	var before core.Transaction
	err := s.repo.InLedgerTx(ctx, func(tx *storage.LedgerTx) error {
		var err error
		if before, err = tx.GetTransaction(ctx, userID, id); err != nil {
			return err
		}
		if err := tx.DeleteTransaction(ctx, userID, id); err != nil {
			return err
		}
		if err := tx.Apply(ctx, core.PlanDelete(before.Posting())); err != nil {
			return fmt.Errorf("apply delete: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.FromContext(ctx).InfoContext(ctx, "Transaction deleted", "transaction_id", id)
	s.afterCommit(ctx, amqp.NewLedgerEvent(amqp.EventTransactionDeleted, userID, &before, nil))
	return nil
}

// checkReferences verifies that the account and category exist and belong
// to userID. Missing and foreign rows both report ErrNotFound.
func checkReferences(ctx context.Context, q *storage.Queries, userID string, t core.Transaction) error {
	if _, err := q.GetAccount(ctx, userID, t.AccountID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return &core.NotFoundError{Resource: "Bank account"}
		}
		return err
	}
	if t.CategoryID == "" {
		return nil
	}
	if _, err := q.GetCategory(ctx, userID, t.CategoryID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return &core.NotFoundError{Resource: "Category"}
		}
		return err
	}
	return nil
}

func (s *LedgerService) afterCommit(ctx context.Context, ev *amqp.LedgerEvent) {
	if s.invalidator != nil {
		s.invalidator.InvalidateUser(ev.UserID)
	}

	if s.publisher == nil {
		log.FromContext(ctx).DebugContext(ctx, "AMQP publisher not configured, skipping ledger event", "kind", ev.Kind)
		return
	}
	// Publish even when the request context is already cancelled.
	if err := s.publisher.PublishLedgerEvent(context.WithoutCancel(ctx), ev); err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Failed to publish ledger event",
			"kind", ev.Kind,
			"transaction_id", ev.TransactionID,
			"error", err)
	}
}
