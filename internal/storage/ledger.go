package storage

import (
	"context"
	"fmt"

	"planner/internal/core"
)

// LedgerTx wraps the transaction-scoped Queries with the only statements
// allowed to move account balances and category spend.
type LedgerTx struct {
	*Queries
}

func (tx *LedgerTx) AdjustAccountBalance(ctx context.Context, accountID string, delta core.Money) error {
	res, err := tx.db.ExecContext(ctx,
		`UPDATE bank_accounts SET balance_cents = balance_cents + ?, updated_at = ? WHERE id = ?`,
		delta.Cents, formatTime(tx.now()), accountID)
	if err != nil {
		return fmt.Errorf("adjust account balance: %w", err)
	}
	if err := expectOne(res); err != nil {
		return fmt.Errorf("adjust account %s: %w", accountID, err)
	}
	return nil
}

func (tx *LedgerTx) AdjustCategorySpent(ctx context.Context, categoryID string, delta core.Money) error {
	res, err := tx.db.ExecContext(ctx,
		`UPDATE categories SET current_spent_cents = current_spent_cents + ?, updated_at = ? WHERE id = ?`,
		delta.Cents, formatTime(tx.now()), categoryID)
	if err != nil {
		return fmt.Errorf("adjust category spent: %w", err)
	}
	if err := expectOne(res); err != nil {
		return fmt.Errorf("adjust category %s: %w", categoryID, err)
	}
	return nil
}

// Apply runs adjustments in order and stops at the first failure.
func (tx *LedgerTx) Apply(ctx context.Context, adjustments []core.Adjustment) error {
	for _, adj := range adjustments {
		var err error
		switch adj.Target {
		case core.TargetAccount:
			err = tx.AdjustAccountBalance(ctx, adj.ID, adj.Delta)
		case core.TargetCategory:
			err = tx.AdjustCategorySpent(ctx, adj.ID, adj.Delta)
		default:
			err = fmt.Errorf("unknown adjustment target %q", adj.Target)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
