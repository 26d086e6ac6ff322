package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"planner/internal/core"

	"github.com/google/uuid"
)

const transactionSelect = `SELECT t.id, t.user_id, t.account_id, t.category_id, t.type, t.amount_cents,
	t.description, t.date, t.created_at, t.updated_at,
	a.name, a.account_type, a.color, c.name, c.color
FROM transactions t
JOIN bank_accounts a ON a.id = t.account_id
LEFT JOIN categories c ON c.id = t.category_id`

// TransactionFilter narrows ListTransactions to one user and a date range.
type TransactionFilter struct {
	UserID string
	From   core.Date
	To     core.Date
	Type   core.TransactionType // empty matches both
}

func scanTransaction(row scanner) (core.Transaction, error) {
	var (
		t                 core.Transaction
		categoryID        sql.NullString
		date              string
		created, updated  string
		account           core.AccountRef
		catName, catColor sql.NullString
	)
	err := row.Scan(&t.ID, &t.UserID, &t.AccountID, &categoryID, &t.Type, &t.Amount.Cents,
		&t.Description, &date, &created, &updated,
		&account.Name, &account.AccountType, &account.Color, &catName, &catColor)
	if err != nil {
		return core.Transaction{}, translate(err)
	}
	if t.Date, err = core.ParseDate(date); err != nil {
		return core.Transaction{}, err
	}
	if t.CreatedAt, err = parseTime(created); err != nil {
		return core.Transaction{}, err
	}
	if t.UpdatedAt, err = parseTime(updated); err != nil {
		return core.Transaction{}, err
	}
	account.ID = t.AccountID
	t.BankAccount = &account
	if categoryID.Valid {
		t.CategoryID = categoryID.String
		t.Category = &core.CategoryRef{ID: categoryID.String, Name: catName.String, Color: catColor.String}
	}
	return t, nil
}

// InsertTransaction stores t, assigning ID and timestamps. It does not touch
// balances; LedgerTx applies the matching adjustments.
func (q *Queries) InsertTransaction(ctx context.Context, t *core.Transaction) error {
	t.ID = uuid.NewString()
	t.CreatedAt = q.now().UTC()
	t.UpdatedAt = t.CreatedAt
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, account_id, category_id, type, amount_cents, description, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.AccountID, nullString(t.CategoryID), string(t.Type), t.Amount.Cents,
		t.Description, t.Date.String(), formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", translate(err))
	}
	return nil
}

func (q *Queries) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	t, err := scanTransaction(q.db.QueryRowContext(ctx, transactionSelect+` WHERE t.id = ? AND t.user_id = ?`, id, userID))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %s: %w", id, err)
	}
	return t, nil
}

// ListTransactions returns matching transactions, newest first.
func (q *Queries) ListTransactions(ctx context.Context, f TransactionFilter) ([]core.Transaction, error) {
	var (
		where = []string{"t.user_id = ?"}
		args  = []any{f.UserID}
	)
	if !f.From.IsZero() {
		where = append(where, "t.date >= ?")
		args = append(args, f.From.String())
	}
	if !f.To.IsZero() {
		where = append(where, "t.date <= ?")
		args = append(args, f.To.String())
	}
	if f.Type != "" {
		where = append(where, "t.type = ?")
		args = append(args, string(f.Type))
	}

	query := transactionSelect + ` WHERE ` + strings.Join(where, " AND ") + ` ORDER BY t.date DESC, t.created_at DESC`
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateTransaction rewrites the row. Callers pair it with the ledger
// adjustments from core.PlanUpdate.
func (q *Queries) UpdateTransaction(ctx context.Context, t *core.Transaction) error {
	t.UpdatedAt = q.now().UTC()
	res, err := q.db.ExecContext(ctx,
		`UPDATE transactions SET account_id = ?, category_id = ?, type = ?, amount_cents = ?,
			description = ?, date = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		t.AccountID, nullString(t.CategoryID), string(t.Type), t.Amount.Cents,
		t.Description, t.Date.String(), formatTime(t.UpdatedAt), t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", translate(err))
	}
	if err := expectOne(res); err != nil {
		return fmt.Errorf("update transaction %s: %w", t.ID, err)
	}
	return nil
}

func (q *Queries) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if err := expectOne(res); err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return nil
}
