package storage

import (
	"context"
	"fmt"

	"planner/internal/core"
)

// MonthTotals sums income and expense amounts dated within [from, to].
func (q *Queries) MonthTotals(ctx context.Context, userID string, from, to core.Date) (income, expense core.Money, err error) {
	err = q.db.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount_cents END), 0),
			COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount_cents END), 0)
		FROM transactions WHERE user_id = ? AND date >= ? AND date <= ?`,
		userID, from.String(), to.String()).Scan(&income.Cents, &expense.Cents)
	if err != nil {
		return core.Money{}, core.Money{}, fmt.Errorf("month totals: %w", err)
	}
	return income, expense, nil
}

// CategoryMonthSpend returns expense totals per category for [from, to].
// Categories without expenses in the range are absent from the map.
func (q *Queries) CategoryMonthSpend(ctx context.Context, userID string, from, to core.Date) (map[string]core.Money, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT category_id, SUM(amount_cents) FROM transactions
		WHERE user_id = ? AND type = 'EXPENSE' AND category_id IS NOT NULL AND date >= ? AND date <= ?
		GROUP BY category_id`,
		userID, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("category month spend: %w", err)
	}
	defer rows.Close()

	spend := make(map[string]core.Money)
	for rows.Next() {
		var (
			id    string
			cents int64
		)
		if err := rows.Scan(&id, &cents); err != nil {
			return nil, fmt.Errorf("scan category spend: %w", err)
		}
		spend[id] = core.Money{Cents: cents}
	}
	return spend, rows.Err()
}

// AvailableFunds is the sum of the user's DAILY account balances.
func (q *Queries) AvailableFunds(ctx context.Context, userID string) (core.Money, error) {
	var m core.Money
	err := q.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(balance_cents), 0) FROM bank_accounts WHERE user_id = ? AND account_type = 'DAILY'`,
		userID).Scan(&m.Cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("available funds: %w", err)
	}
	return m, nil
}
