package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// SessionPurger deletes expired sessions.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Janitor purges expired sessions on a cron schedule.
type Janitor struct {
	purger   SessionPurger
	schedule string
	cron     *cron.Cron

	mu      sync.Mutex
	running bool
}

// NewJanitor validates schedule (standard cron or a descriptor such as
// "@every 1h").
func NewJanitor(purger SessionPurger, schedule string) (*Janitor, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid purge schedule %q: %w", schedule, err)
	}
	return &Janitor{
		purger:   purger,
		schedule: schedule,
		cron:     cron.New(),
	}, nil
}

// Start registers the job and starts the scheduler.
func (j *Janitor) Start(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.running {
		return fmt.Errorf("janitor is already running")
	}

	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule session purge: %w", err)
	}
	j.cron.Start()
	j.running = true

	slog.InfoContext(ctx, "Session janitor started", "schedule", j.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running purge to finish.
func (j *Janitor) Stop(ctx context.Context) error {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return nil
	}
	j.running = false
	j.mu.Unlock()

	select {
	case <-j.cron.Stop().Done():
		slog.InfoContext(ctx, "Session janitor stopped")
		return nil
	case <-ctx.Done():
		slog.WarnContext(ctx, "Session janitor stop timed out")
		return ctx.Err()
	}
}

// Run starts the janitor and blocks until ctx is done.
func (j *Janitor) Run(ctx context.Context) error {
	if err := j.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return j.Stop(context.WithoutCancel(ctx))
}

// RunOnce purges expired sessions now and returns how many were removed.
func (j *Janitor) RunOnce(ctx context.Context) int64 {
	n, err := j.purger.PurgeExpired(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to purge expired sessions", "error", err)
		return 0
	}
	if n > 0 {
		slog.InfoContext(ctx, "Purged expired sessions", "count", n)
	}
	return n
}
