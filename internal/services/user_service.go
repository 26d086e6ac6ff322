package services

import (
	"context"
	"errors"
	"fmt"

	"planner/internal/core"
	"planner/internal/log"
	"planner/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo        *storage.SQLiteRepository
	invalidator Invalidator
	hashCost    int
}

func NewUserService(repo *storage.SQLiteRepository, invalidator Invalidator) *UserService {
	return &UserService{
		repo:        repo,
		invalidator: invalidator,
		hashCost:    bcrypt.DefaultCost,
	}
}

// Register creates the user together with a default DAILY account.
// A taken email yields core.ErrConflict.
func (s *UserService) Register(ctx context.Context, in core.RegisterInput) (core.User, error) {
	if err := in.Validate(); err != nil {
		return core.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := core.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	err = s.repo.InTx(ctx, func(q *storage.Queries) error {
		if err := q.CreateUser(ctx, &u); err != nil {
			return err
		}
		account := core.BankAccount{
			UserID:        u.ID,
			AccountType:   core.AccountDaily,
			Name:          core.DefaultAccountName,
			AccountNumber: core.DefaultAccountNumber,
			Color:         core.DefaultAccountColor,
		}
		return q.CreateAccount(ctx, &account)
	})
	if err != nil {
		return core.User{}, err
	}

	log.FromContext(ctx).InfoContext(ctx, "User registered", "user_id", u.ID)
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (core.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// Delete removes the caller and all of its data. Callers may only delete
// themselves.
func (s *UserService) Delete(ctx context.Context, caller core.Identity, id string) error {
	if caller.ID != id {
		return core.ErrForbidden
	}

	err := s.repo.InTx(ctx, func(q *storage.Queries) error {
		return q.DeleteUserData(ctx, id)
	})
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateUser(id)
	}
	log.FromContext(ctx).InfoContext(ctx, "User deleted", "user_id", id)
	return nil
}
