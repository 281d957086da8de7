package service

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/homeledger/homeledger/internal/domain/category"
	"github.com/homeledger/homeledger/internal/domain/expense"
)

// ExpenseServiceImpl implements the ExpenseService interface
type ExpenseServiceImpl struct {
	expenses   expense.Repository
	categories category.Repository
	watcher    BudgetWatcher // nil when budget watching is disabled
	logger     *slog.Logger
}

// NewExpenseService creates a new expense service. watcher may be nil.
func NewExpenseService(logger *slog.Logger, expenses expense.Repository, categories category.Repository, watcher BudgetWatcher) ExpenseService {
	return &ExpenseServiceImpl{
		expenses:   expenses,
		categories: categories,
		watcher:    watcher,
		logger:     logger,
	}
}

// CreateExpense validates the category reference and persists the record.
// On success the budget watcher is notified asynchronously.
func (s *ExpenseServiceImpl) CreateExpense(ctx context.Context, ownerID string, date time.Time, categoryID primitive.ObjectID, amount int64, description string, tagIDs []primitive.ObjectID, isExtra bool) (*expense.Expense, error) {
	if _, err := s.categories.GetByID(ctx, ownerID, categoryID); err != nil {
		return nil, err
	}

	e, err := expense.New(ownerID, date, categoryID, amount, description, tagIDs, isExtra)
	if err != nil {
		return nil, err
	}

	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, err
	}

	if s.watcher != nil {
		s.watcher.ExpenseRecorded(ownerID, date)
	}

	return e, nil
}

// ListExpenses returns the owner's expenses matching the query
func (s *ExpenseServiceImpl) ListExpenses(ctx context.Context, ownerID string, q expense.Query) ([]*expense.Expense, error) {
	return s.expenses.List(ctx, ownerID, q)
}

// DeleteExpense removes one expense record
func (s *ExpenseServiceImpl) DeleteExpense(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	return s.expenses.Delete(ctx, ownerID, id)
}
