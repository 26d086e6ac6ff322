package services

import (
	"context"
	"fmt"

	"planner/internal/core"
	"planner/internal/log"
	"planner/internal/storage"
)

type CategoryService struct {
	repo        *storage.SQLiteRepository
	invalidator Invalidator
}

func NewCategoryService(repo *storage.SQLiteRepository, invalidator Invalidator) *CategoryService {
	return &CategoryService{repo: repo, invalidator: invalidator}
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]core.Category, error) {
	return s.repo.ListCategories(ctx, userID)
}

func (s *CategoryService) Get(ctx context.Context, userID, id string) (core.Category, error) {
	return s.repo.GetCategory(ctx, userID, id)
}

// Create adds a category with zero spend. Duplicate names for the same user
// return core.ErrConflict.
func (s *CategoryService) Create(ctx context.Context, userID string, in core.CategoryInput) (core.Category, error) {
	c, err := in.NewCategory(userID)
	if err != nil {
		return core.Category{}, err
	}
	if err := s.repo.CreateCategory(ctx, &c); err != nil {
		return core.Category{}, err
	}
	s.invalidate(userID)
	log.FromContext(ctx).InfoContext(ctx, "Category created", "category_id", c.ID)
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id string, in core.CategoryInput) (core.Category, error) {
	var c core.Category
	err := s.repo.InTx(ctx, func(q *storage.Queries) error {
		var err error
		if c, err = q.GetCategory(ctx, userID, id); err != nil {
			return err
		}
		in.ApplyTo(&c)
		if err := c.Validate(); err != nil {
			return err
		}
		return q.UpdateCategory(ctx, &c)
	})
	if err != nil {
		return core.Category{}, err
	}
	s.invalidate(userID)
	return c, nil
}

// Delete refuses with core.ErrHasTransactions while transactions reference
// the category.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	err := s.repo.InTx(ctx, func(q *storage.Queries) error {
		if _, err := q.GetCategory(ctx, userID, id); err != nil {
			return err
		}
		n, err := q.CountCategoryTransactions(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("category %s: %w", id, core.ErrHasTransactions)
		}
		return q.DeleteCategory(ctx, userID, id)
	})
	if err != nil {
		return err
	}
	s.invalidate(userID)
	log.FromContext(ctx).InfoContext(ctx, "Category deleted", "category_id", id)
	return nil
}

func (s *CategoryService) invalidate(userID string) {
	if s.invalidator != nil {
		s.invalidator.InvalidateUser(userID)
	}
}
