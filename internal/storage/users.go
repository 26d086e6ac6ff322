package storage

import (
	"context"
	"fmt"

	"planner/internal/core"

	"github.com/google/uuid"
)

const userColumns = `id, email, password_hash, first_name, last_name, created_at`

func scanUser(row scanner) (core.User, error) {
	var (
		u       core.User
		created string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &created); err != nil {
		return core.User{}, translate(err)
	}
	t, err := parseTime(created)
	if err != nil {
		return core.User{}, err
	}
	u.CreatedAt = t
	return u, nil
}

// CreateUser inserts u, assigning its ID and creation time.
func (q *Queries) CreateUser(ctx context.Context, u *core.User) error {
	u.ID = uuid.NewString()
	u.CreatedAt = q.now().UTC()
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, formatTime(u.CreatedAt))
	if err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

func (q *Queries) GetUserByID(ctx context.Context, id string) (core.User, error) {
	u, err := scanUser(q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return core.User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	u, err := scanUser(q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if err != nil {
		return core.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// DeleteUserData removes the user and everything it owns, children first.
// Callers run it inside a transaction.
func (q *Queries) DeleteUserData(ctx context.Context, userID string) error {
	for _, stmt := range []string{
		`DELETE FROM transactions WHERE user_id = ?`,
		`DELETE FROM categories WHERE user_id = ?`,
		`DELETE FROM bank_accounts WHERE user_id = ?`,
		`DELETE FROM sessions WHERE user_id = ?`,
	} {
		if _, err := q.db.ExecContext(ctx, stmt, userID); err != nil {
			return fmt.Errorf("delete user data: %w", err)
		}
	}
	res, err := q.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := expectOne(res); err != nil {
		return fmt.Errorf("delete user %s: %w", userID, err)
	}
	return nil
}

// CountUsers returns the number of registered users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
