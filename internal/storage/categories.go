package storage

import (
	"context"
	"fmt"

	"planner/internal/core"

	"github.com/google/uuid"
)

const categoryColumns = `id, user_id, name, color, budget_cents, current_spent_cents, created_at, updated_at`

func scanCategory(row scanner) (core.Category, error) {
	var (
		c                core.Category
		created, updated string
	)
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Budget.Cents, &c.CurrentSpent.Cents, &created, &updated)
	if err != nil {
		return core.Category{}, translate(err)
	}
	if c.CreatedAt, err = parseTime(created); err != nil {
		return core.Category{}, err
	}
	if c.UpdatedAt, err = parseTime(updated); err != nil {
		return core.Category{}, err
	}
	return c, nil
}

// CreateCategory inserts c with zero spend. A duplicate name for the same
// user yields ErrConflict.
func (q *Queries) CreateCategory(ctx context.Context, c *core.Category) error {
	c.ID = uuid.NewString()
	c.CurrentSpent = core.Money{}
	c.CreatedAt = q.now().UTC()
	c.UpdatedAt = c.CreatedAt
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO categories (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		c.ID, c.UserID, c.Name, c.Color, c.Budget.Cents, formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	if err != nil {
		return fmt.Errorf("create category: %w", translate(err))
	}
	return nil
}

func (q *Queries) GetCategory(ctx context.Context, userID, id string) (core.Category, error) {
	c, err := scanCategory(q.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ? AND user_id = ?`, id, userID))
	if err != nil {
		return core.Category{}, fmt.Errorf("get category %s: %w", id, err)
	}
	return c, nil
}

// GetCategoryByID looks a category up without an owner check. The ledger
// worker uses it to inspect budgets after the fact.
func (q *Queries) GetCategoryByID(ctx context.Context, id string) (core.Category, error) {
	c, err := scanCategory(q.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id))
	if err != nil {
		return core.Category{}, fmt.Errorf("get category %s: %w", id, err)
	}
	return c, nil
}

func (q *Queries) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = ? ORDER BY name COLLATE NOCASE, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []core.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategory writes name, color and budget. current_spent_cents is
// owned by LedgerTx.
func (q *Queries) UpdateCategory(ctx context.Context, c *core.Category) error {
	c.UpdatedAt = q.now().UTC()
	res, err := q.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, color = ?, budget_cents = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		c.Name, c.Color, c.Budget.Cents, formatTime(c.UpdatedAt), c.ID, c.UserID)
	if err != nil {
		return fmt.Errorf("update category: %w", translate(err))
	}
	if err := expectOne(res); err != nil {
		return fmt.Errorf("update category %s: %w", c.ID, err)
	}
	return nil
}

func (q *Queries) DeleteCategory(ctx context.Context, userID, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if err := expectOne(res); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}

func (q *Queries) CountCategoryTransactions(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE category_id = ?`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count category transactions: %w", err)
	}
	return n, nil
}
