package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/homeledger/homeledger/internal/domain/budget"
)

const (
	// BudgetCollectionName is the name of the budgets collection in MongoDB
	BudgetCollectionName = "budgets"
)

// BudgetRepository implements the budget.Repository interface for MongoDB
type BudgetRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewBudgetRepository creates a new MongoDB budget repository
func NewBudgetRepository(logger *slog.Logger, db *mongo.Database) budget.Repository {
	return &BudgetRepository{
		db:     db,
		logger: logger,
	}
}

// Get returns the budget for (owner, year, month), or nil, nil when none is set
func (r *BudgetRepository) Get(ctx context.Context, ownerID string, year, month int) (*budget.Budget, error) {
	collection := r.db.Collection(BudgetCollectionName)

	filter := bson.M{"owner_id": ownerID, "year": year, "month": month}
	var b budget.Budget
	err := collection.FindOne(ctx, filter).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error("Failed to get budget", "year", year, "month", month, "error", err)
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	return &b, nil
}

// Upsert creates or replaces the budget for (owner, year, month). The
// compound key keeps at most one record per owner-month.
func (r *BudgetRepository) Upsert(ctx context.Context, b *budget.Budget) error {
	collection := r.db.Collection(BudgetCollectionName)

	filter := bson.M{"owner_id": b.OwnerID, "year": b.Year, "month": b.Month}
	update := bson.M{
		"$set": bson.M{
			"amount":     b.Amount,
			"updated_at": time.Now(),
		},
		"$setOnInsert": bson.M{
			"owner_id":   b.OwnerID,
			"year":       b.Year,
			"month":      b.Month,
			"created_at": b.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		r.logger.Error("Failed to upsert budget", "year", b.Year, "month", b.Month, "error", err)
		return fmt.Errorf("failed to upsert budget: %w", err)
	}

	return nil
}
