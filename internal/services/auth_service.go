package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"planner/internal/core"
	"planner/internal/log"
	"planner/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("planner-dummy-password"), bcrypt.DefaultCost)

type AuthService struct {
	repo *storage.SQLiteRepository
	ttl  time.Duration
	now  func() time.Time
}

func NewAuthService(repo *storage.SQLiteRepository, ttl time.Duration) *AuthService {
	return &AuthService{repo: repo, ttl: ttl, now: time.Now}
}

// TTL is the lifetime of new and renewed sessions.
func (s *AuthService) TTL() time.Duration {
	return s.ttl
}

// Login checks the credentials and opens a session. Unknown emails and wrong
// passwords both return core.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in core.LoginInput) (core.Session, error) {
	if err := in.Validate(); err != nil {
		return core.Session{}, err
	}

	u, err := s.repo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
			return core.Session{}, core.ErrInvalidCredentials
		}
		return core.Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		log.FromContext(ctx).InfoContext(ctx, "Login rejected", "user_id", u.ID)
		return core.Session{}, core.ErrInvalidCredentials
	}

	return s.StartSession(ctx, u.Identity())
}

// StartSession opens a session for an already authenticated identity.
func (s *AuthService) StartSession(ctx context.Context, id core.Identity) (core.Session, error) {
	token, err := newToken()
	if err != nil {
		return core.Session{}, err
	}
	now := s.now().UTC()
	sess := core.Session{
		Token:     token,
		UserID:    id.ID,
		Email:     id.Email,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return core.Session{}, err
	}
	return sess, nil
}

// Authenticate resolves a session token. Sessions past half their lifetime
// are extended; renewed reports whether that happened.
func (s *AuthService) Authenticate(ctx context.Context, token string) (sess core.Session, renewed bool, err error) {
	if token == "" {
		return core.Session{}, false, core.ErrUnauthenticated
	}
	now := s.now().UTC()
	sess, err = s.repo.GetSession(ctx, token, now)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.Session{}, false, core.ErrUnauthenticated
		}
		return core.Session{}, false, err
	}

	if sess.ExpiresAt.Sub(now) < s.ttl/2 {
		expires := now.Add(s.ttl)
		if err := s.repo.RenewSession(ctx, token, expires); err != nil {
			log.FromContext(ctx).WarnContext(ctx, "Failed to renew session", "user_id", sess.UserID, "error", err)
			return sess, false, nil
		}
		sess.ExpiresAt = expires
		renewed = true
	}
	return sess, renewed, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.repo.DeleteSession(ctx, token)
}

// LogoutUser ends every session of userID.
func (s *AuthService) LogoutUser(ctx context.Context, userID string) (int64, error) {
	return s.repo.DeleteUserSessions(ctx, userID)
}

// PurgeExpired removes sessions that have already expired.
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.PurgeExpiredSessions(ctx, s.now().UTC())
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
