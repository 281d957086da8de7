// Package budgetwatch runs budget checks off the request path. After an
// expense write the watcher recomputes the month's spend on a worker
// pool and raises a budget.exceeded event when the cap is crossed. A
// check failure is logged and dropped; it never surfaces to the request
// that triggered it.
package budgetwatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/homeledger/homeledger/internal/config"
	"github.com/homeledger/homeledger/internal/domain/budget"
	"github.com/homeledger/homeledger/internal/domain/expense"
	"github.com/homeledger/homeledger/internal/platform/messaging/producers"
)

const checkTimeout = 10 * time.Second

// Watcher checks monthly spend against the configured budget
type Watcher struct {
	expenses  expense.Repository
	budgets   budget.Repository
	publisher producers.EventPublisher // Nil when the event stream is disabled
	pool      *ants.Pool
	logger    *slog.Logger
}

// NewWatcher creates a watcher backed by a fixed-size worker pool
func NewWatcher(
	logger *slog.Logger,
	cfg config.BudgetWatchConfig,
	expenses expense.Repository,
	budgets budget.Repository,
	publisher producers.EventPublisher,
) (*Watcher, error) {
	pool, err := ants.NewPool(cfg.PoolSize)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		expenses:  expenses,
		budgets:   budgets,
		publisher: publisher,
		pool:      pool,
		logger:    logger,
	}, nil
}

// ExpenseRecorded schedules a budget check for the month the expense
// falls in. It returns immediately; the check runs on the pool.
func (w *Watcher) ExpenseRecorded(ownerID string, date time.Time) {
	year, month := date.Year(), date.Month()

	err := w.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
		w.check(ctx, ownerID, year, month)
	})
	if err != nil {
		w.logger.Error("Failed to submit budget check to worker pool",
			"owner_id", ownerID,
			"year", year,
			"month", int(month),
			"error", err,
		)
	}
}

func (w *Watcher) check(ctx context.Context, ownerID string, year int, month time.Month) {
	b, err := w.budgets.Get(ctx, ownerID, year, int(month))
	if err != nil {
		w.logger.Error("Budget check failed to load budget", "owner_id", ownerID, "error", err)
		return
	}
	if b == nil || b.Amount <= 0 {
		// No budget set for this month
		return
	}

	spent, err := w.expenses.SumForMonth(ctx, ownerID, year, month)
	if err != nil {
		w.logger.Error("Budget check failed to sum expenses", "owner_id", ownerID, "error", err)
		return
	}

	if spent <= b.Amount {
		return
	}

	w.logger.Warn("Monthly budget exceeded",
		"owner_id", ownerID,
		"year", year,
		"month", int(month),
		"budget", b.Amount,
		"spent", spent,
	)

	if w.publisher == nil {
		return
	}

	event := producers.Event{
		Type:       producers.EventBudgetExceeded,
		OwnerID:    ownerID,
		OccurredAt: time.Now(),
		Payload: map[string]interface{}{
			"year":   year,
			"month":  int(month),
			"budget": b.Amount,
			"spent":  spent,
		},
	}
	if err := w.publisher.PublishEvent(ctx, event); err != nil {
		w.logger.Error("Failed to publish budget exceeded event", "owner_id", ownerID, "error", err)
	}
}

// Close releases the worker pool
func (w *Watcher) Close() {
	w.logger.Info("Shutting down budget watcher", "running_workers", w.pool.Running())
	w.pool.Release()
}
