package service

import (
	"context"

	"github.com/homeledger/homeledger/internal/domain/budget"
)

// BudgetServiceImpl implements the BudgetService interface
type BudgetServiceImpl struct {
	budgets budget.Repository
}

// NewBudgetService creates a new budget service
func NewBudgetService(budgets budget.Repository) BudgetService {
	return &BudgetServiceImpl{budgets: budgets}
}

// GetBudget returns the month's budget. When none has been set, a
// zero-amount budget is returned so clients always see a value.
func (s *BudgetServiceImpl) GetBudget(ctx context.Context, ownerID string, year, month int) (*budget.Budget, error) {
	if month < 1 || month > 12 {
		return nil, budget.ErrInvalidMonth
	}

	b, err := s.budgets.Get(ctx, ownerID, year, month)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return &budget.Budget{OwnerID: ownerID, Year: year, Month: month, Amount: 0}, nil
	}
	return b, nil
}

// SetBudget creates or replaces the month's budget
func (s *BudgetServiceImpl) SetBudget(ctx context.Context, ownerID string, year, month int, amount int64) (*budget.Budget, error) {
	b, err := budget.New(ownerID, year, month, amount)
	if err != nil {
		return nil, err
	}

	if err := s.budgets.Upsert(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}
