package services

import (
	"context"
	"fmt"

	"planner/internal/core"
	"planner/internal/log"
	"planner/internal/storage"
)

// AccountService manages bank account metadata. Balances are read-only here;
// they move only through LedgerService.
type AccountService struct {
	repo        *storage.SQLiteRepository
	invalidator Invalidator
}

func NewAccountService(repo *storage.SQLiteRepository, invalidator Invalidator) *AccountService {
	return &AccountService{repo: repo, invalidator: invalidator}
}

func (s *AccountService) List(ctx context.Context, userID string) ([]core.BankAccount, error) {
	return s.repo.ListAccounts(ctx, userID)
}

func (s *AccountService) Get(ctx context.Context, userID, id string) (core.BankAccount, error) {
	return s.repo.GetAccount(ctx, userID, id)
}

func (s *AccountService) Create(ctx context.Context, userID string, in core.AccountInput) (core.BankAccount, error) {
	a, err := in.NewAccount(userID)
	if err != nil {
		return core.BankAccount{}, err
	}
	if err := s.repo.CreateAccount(ctx, &a); err != nil {
		return core.BankAccount{}, err
	}
	s.invalidate(userID)
	log.FromContext(ctx).InfoContext(ctx, "Bank account created", "account_id", a.ID, "type", a.AccountType)
	return a, nil
}

// Update applies the present fields of in. A balance in the payload is ignored.
func (s *AccountService) Update(ctx context.Context, userID, id string, in core.AccountInput) (core.BankAccount, error) {
	var a core.BankAccount
	err := s.repo.InTx(ctx, func(q *storage.Queries) error {
		var err error
		if a, err = q.GetAccount(ctx, userID, id); err != nil {
			return err
		}
		in.ApplyTo(&a)
		if err := a.Validate(); err != nil {
			return err
		}
		return q.UpdateAccount(ctx, &a)
	})
	if err != nil {
		return core.BankAccount{}, err
	}
	s.invalidate(userID)
	return a, nil
}

// Delete refuses with core.ErrHasTransactions while transactions reference
// the account.
func (s *AccountService) Delete(ctx context.Context, userID, id string) error {
	err := s.repo.InTx(ctx, func(q *storage.Queries) error {
		if _, err := q.GetAccount(ctx, userID, id); err != nil {
			return err
		}
		n, err := q.CountAccountTransactions(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("bank account %s: %w", id, core.ErrHasTransactions)
		}
		return q.DeleteAccount(ctx, userID, id)
	})
	if err != nil {
		return err
	}
	s.invalidate(userID)
	log.FromContext(ctx).InfoContext(ctx, "Bank account deleted", "account_id", id)
	return nil
}

func (s *AccountService) invalidate(userID string) {
	if s.invalidator != nil {
		s.invalidator.InvalidateUser(userID)
	}
}
