package storage

import (
	"context"
	"fmt"
	"time"

	"planner/internal/core"
)

func (q *Queries) CreateSession(ctx context.Context, s core.Session) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = q.now()
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, email, expires_at, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.Token, s.UserID, s.Email, formatTime(s.ExpiresAt), formatTime(s.CreatedAt))
	if err != nil {
		return fmt.Errorf("create session: %w", translate(err))
	}
	return nil
}

// GetSession returns the session for token, or ErrNotFound when it is
// missing or expired at now.
func (q *Queries) GetSession(ctx context.Context, token string, now time.Time) (core.Session, error) {
	var (
		s                  core.Session
		expires, createdAt string
	)
	err := q.db.QueryRowContext(ctx,
		`SELECT token, user_id, email, expires_at, created_at FROM sessions WHERE token = ? AND expires_at > ?`,
		token, formatTime(now)).Scan(&s.Token, &s.UserID, &s.Email, &expires, &createdAt)
	if err != nil {
		return core.Session{}, fmt.Errorf("get session: %w", translate(err))
	}
	if s.ExpiresAt, err = parseTime(expires); err != nil {
		return core.Session{}, err
	}
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return core.Session{}, err
	}
	return s, nil
}

func (q *Queries) RenewSession(ctx context.Context, token string, expiresAt time.Time) error {
	res, err := q.db.ExecContext(ctx, `UPDATE sessions SET expires_at = ? WHERE token = ?`, formatTime(expiresAt), token)
	if err != nil {
		return fmt.Errorf("renew session: %w", err)
	}
	return expectOne(res)
}

func (q *Queries) DeleteSession(ctx context.Context, token string) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (q *Queries) DeleteUserSessions(ctx context.Context, userID string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete user sessions: %w", err)
	}
	return res.RowsAffected()
}

// PurgeExpiredSessions deletes sessions that expired before now.
func (q *Queries) PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, formatTime(now))
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions: %w", err)
	}
	return res.RowsAffected()
}
