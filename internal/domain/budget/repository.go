package budget

import "context"

// Repository defines budget persistence operations
type Repository interface {
	// Get returns nil, nil when no budget is set for the month
	Get(ctx context.Context, ownerID string, year, month int) (*Budget, error)
	// Upsert creates or replaces the budget for (owner, year, month)
	Upsert(ctx context.Context, b *Budget) error
}
