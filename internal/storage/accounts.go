package storage

import (
	"context"
	"database/sql"
	"fmt"

	"planner/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const accountColumns = `id, user_id, account_type, name, account_number, balance_cents,
	interest_rate, interest_rate_limit_cents, interest_start_date, interest_end_date,
	target_amount_cents, target_date, color, created_at, updated_at`

func scanAccount(row scanner) (core.BankAccount, error) {
	var (
		a                 core.BankAccount
		rate              decimal.NullDecimal
		rateLimit, target sql.NullInt64
		start, end, tdate sql.NullString
		created, updated  string
	)
	err := row.Scan(&a.ID, &a.UserID, &a.AccountType, &a.Name, &a.AccountNumber, &a.Balance.Cents,
		&rate, &rateLimit, &start, &end, &target, &tdate, &a.Color, &created, &updated)
	if err != nil {
		return core.BankAccount{}, translate(err)
	}
	if rate.Valid {
		a.InterestRate = &rate.Decimal
	}
	a.InterestRateLimit = scanCents(rateLimit)
	a.TargetAmount = scanCents(target)
	if a.InterestStartDate, err = scanDate(start); err != nil {
		return core.BankAccount{}, err
	}
	if a.InterestEndDate, err = scanDate(end); err != nil {
		return core.BankAccount{}, err
	}
	if a.TargetDate, err = scanDate(tdate); err != nil {
		return core.BankAccount{}, err
	}
	if a.CreatedAt, err = parseTime(created); err != nil {
		return core.BankAccount{}, err
	}
	if a.UpdatedAt, err = parseTime(updated); err != nil {
		return core.BankAccount{}, err
	}
	return a, nil
}

func nullRate(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// CreateAccount inserts a with its opening balance, assigning ID and timestamps.
func (q *Queries) CreateAccount(ctx context.Context, a *core.BankAccount) error {
	a.ID = uuid.NewString()
	a.CreatedAt = q.now().UTC()
	a.UpdatedAt = a.CreatedAt
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO bank_accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, string(a.AccountType), a.Name, a.AccountNumber, a.Balance.Cents,
		nullRate(a.InterestRate), nullCents(a.InterestRateLimit), nullDate(a.InterestStartDate), nullDate(a.InterestEndDate),
		nullCents(a.TargetAmount), nullDate(a.TargetDate), a.Color, formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	if err != nil {
		return fmt.Errorf("create account: %w", translate(err))
	}
	return nil
}

// GetAccount returns the account only when it belongs to userID.
func (q *Queries) GetAccount(ctx context.Context, userID, id string) (core.BankAccount, error) {
	a, err := scanAccount(q.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM bank_accounts WHERE id = ? AND user_id = ?`, id, userID))
	if err != nil {
		return core.BankAccount{}, fmt.Errorf("get account %s: %w", id, err)
	}
	return a, nil
}

func (q *Queries) ListAccounts(ctx context.Context, userID string) ([]core.BankAccount, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM bank_accounts WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []core.BankAccount{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// UpdateAccount writes every descriptive field. The balance column is left
// alone; only LedgerTx changes it.
func (q *Queries) UpdateAccount(ctx context.Context, a *core.BankAccount) error {
	a.UpdatedAt = q.now().UTC()
	res, err := q.db.ExecContext(ctx,
		`UPDATE bank_accounts SET account_type = ?, name = ?, account_number = ?,
			interest_rate = ?, interest_rate_limit_cents = ?, interest_start_date = ?, interest_end_date = ?,
			target_amount_cents = ?, target_date = ?, color = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		string(a.AccountType), a.Name, a.AccountNumber,
		nullRate(a.InterestRate), nullCents(a.InterestRateLimit), nullDate(a.InterestStartDate), nullDate(a.InterestEndDate),
		nullCents(a.TargetAmount), nullDate(a.TargetDate), a.Color, formatTime(a.UpdatedAt),
		a.ID, a.UserID)
	if err != nil {
		return fmt.Errorf("update account: %w", translate(err))
	}
	if err := expectOne(res); err != nil {
		return fmt.Errorf("update account %s: %w", a.ID, err)
	}
	return nil
}

func (q *Queries) DeleteAccount(ctx context.Context, userID, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM bank_accounts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if err := expectOne(res); err != nil {
		return fmt.Errorf("delete account %s: %w", id, err)
	}
	return nil
}

func (q *Queries) CountAccountTransactions(ctx context.Context, accountID string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE account_id = ?`, accountID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count account transactions: %w", err)
	}
	return n, nil
}
