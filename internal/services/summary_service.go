package services

import (
	"context"
	"fmt"
	"sync"

	"planner/internal/cache"
	"planner/internal/core"
	"planner/internal/log"
	"planner/internal/storage"
)

// SummaryService builds the monthly budget overview and caches it per
// user and month.
type SummaryService struct {
	repo  *storage.SQLiteRepository
	cache cache.Cache[core.MonthSummary]

	// generations counts invalidations per user. A summary is cached only
	// if no invalidation happened while it was being built.
	mu          sync.Mutex
	generations map[string]uint64

	// afterLoad runs between reading the summary and caching it.
	afterLoad func()
}

// NewSummaryService returns a service; a nil cache disables caching.
func NewSummaryService(repo *storage.SQLiteRepository, c cache.Cache[core.MonthSummary]) *SummaryService {
	return &SummaryService{repo: repo, cache: c, generations: make(map[string]uint64)}
}

func summaryKey(userID string, year, month int) string {
	return fmt.Sprintf("%s:%04d-%02d", userID, year, month)
}

// InvalidateUser drops every cached month of userID.
func (s *SummaryService) InvalidateUser(userID string) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[userID]++
	s.cache.DeletePrefix(userID + ":")
}

func (s *SummaryService) generation(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[userID]
}

// store caches sum unless userID was invalidated after gen was read.
func (s *SummaryService) store(userID, key string, gen uint64, sum core.MonthSummary) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[userID] != gen {
		return false
	}
	s.cache.Set(key, sum)
	return true
}

// MonthSummary returns totals for year/month (1-12). RemainingBudget is
// income minus the sum of budgets; AvailableFunds sums DAILY balances.
func (s *SummaryService) MonthSummary(ctx context.Context, userID string, year, month int) (core.MonthSummary, error) {
	key := summaryKey(userID, year, month)
	var gen uint64
	if s.cache != nil {
		if sum, ok := s.cache.Get(key); ok {
			return sum, nil
		}
		gen = s.generation(userID)
	}

	sum := core.MonthSummary{Year: year, Month: month, Categories: []core.CategorySummary{}}
	from, to := core.MonthRange(year, month)
	err := s.repo.InTx(ctx, func(q *storage.Queries) error {
		var err error
		if sum.TotalIncome, sum.TotalExpense, err = q.MonthTotals(ctx, userID, from, to); err != nil {
			return err
		}
		if sum.AvailableFunds, err = q.AvailableFunds(ctx, userID); err != nil {
			return err
		}
		spend, err := q.CategoryMonthSpend(ctx, userID, from, to)
		if err != nil {
			return err
		}
		categories, err := q.ListCategories(ctx, userID)
		if err != nil {
			return err
		}
		for _, c := range categories {
			sum.TotalBudget = sum.TotalBudget.Add(c.Budget)
			sum.Categories = append(sum.Categories, core.CategorySummary{
				ID:           c.ID,
				Name:         c.Name,
				Color:        c.Color,
				Budget:       c.Budget,
				CurrentSpent: c.CurrentSpent,
				MonthSpent:   spend[c.ID],
			})
		}
		return nil
	})
	if err != nil {
		return core.MonthSummary{}, fmt.Errorf("build month summary: %w", err)
	}
	sum.RemainingBudget = sum.TotalIncome.Add(sum.TotalBudget.Neg())

	if s.afterLoad != nil {
		s.afterLoad()
	}
	if s.cache != nil && !s.store(userID, key, gen, sum) {
		log.FromContext(ctx).DebugContext(ctx, "Skipped caching stale month summary", "user_id", userID, "month", key)
	}
	return sum, nil
}
