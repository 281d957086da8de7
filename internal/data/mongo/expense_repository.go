package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/homeledger/homeledger/internal/domain/expense"
)

const (
	// ExpenseCollectionName is the name of the expenses collection in MongoDB
	ExpenseCollectionName = "expenses"
)

// ExpenseRepository implements the expense.Repository interface for MongoDB.
// Reporting totals are computed store-side with aggregation pipelines.
type ExpenseRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewExpenseRepository creates a new MongoDB expense repository
func NewExpenseRepository(logger *slog.Logger, db *mongo.Database) expense.Repository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new expense record
func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	collection := r.db.Collection(ExpenseCollectionName)

	_, err := collection.InsertOne(ctx, e)
	if err != nil {
		r.logger.Error("Failed to create expense", "expense_id", e.ID.Hex(), "error", err)
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// List retrieves the owner's expenses matching the query, sorted by date
// descending then most recently updated first
func (r *ExpenseRepository) List(ctx context.Context, ownerID string, q expense.Query) ([]*expense.Expense, error) {
	collection := r.db.Collection(ExpenseCollectionName)

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "updated_at", Value: -1}})

	cursor, err := collection.Find(ctx, queryFilter(ownerID, q), opts)
	if err != nil {
		r.logger.Error("Failed to list expenses", "error", err)
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer cursor.Close(ctx)

	expenses := []*expense.Expense{}
	if err := cursor.All(ctx, &expenses); err != nil {
		r.logger.Error("Failed to decode expenses", "error", err)
		return nil, fmt.Errorf("failed to decode expenses: %w", err)
	}

	return expenses, nil
}

// Delete removes the expense. Returns ErrExpenseNotFound if absent.
func (r *ExpenseRepository) Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	collection := r.db.Collection(ExpenseCollectionName)

	filter := bson.M{"_id": id, "owner_id": ownerID}
	result, err := collection.DeleteOne(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to delete expense", "expense_id", id.Hex(), "error", err)
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if result.DeletedCount == 0 {
		return expense.ErrExpenseNotFound{ExpenseID: id}
	}

	return nil
}

// Summarize computes total spend over the window, split by the extra flag
func (r *ExpenseRepository) Summarize(ctx context.Context, ownerID string, q expense.Query) (*expense.Summary, error) {
	collection := r.db.Collection(ExpenseCollectionName)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: queryFilter(ownerID, q)}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
			"extra_total": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$is_extra", "$amount", 0},
			}},
			"normal_total": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$is_extra", 0, "$amount"},
			}},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to summarize expenses", "error", err)
		return nil, fmt.Errorf("failed to summarize expenses: %w", err)
	}
	defer cursor.Close(ctx)

	var results []expense.Summary
	if err := cursor.All(ctx, &results); err != nil {
		r.logger.Error("Failed to decode expense summary", "error", err)
		return nil, fmt.Errorf("failed to decode expense summary: %w", err)
	}

	if len(results) == 0 {
		return &expense.Summary{}, nil
	}
	return &results[0], nil
}

// TotalsByCategory groups spend by category over the window
func (r *ExpenseRepository) TotalsByCategory(ctx context.Context, ownerID string, q expense.Query) ([]expense.CategoryTotal, error) {
	collection := r.db.Collection(ExpenseCollectionName)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: queryFilter(ownerID, q)}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"total": bson.M{"$sum": "$amount"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"total": -1}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to aggregate expenses by category", "error", err)
		return nil, fmt.Errorf("failed to aggregate expenses by category: %w", err)
	}
	defer cursor.Close(ctx)

	totals := []expense.CategoryTotal{}
	if err := cursor.All(ctx, &totals); err != nil {
		r.logger.Error("Failed to decode category totals", "error", err)
		return nil, fmt.Errorf("failed to decode category totals: %w", err)
	}

	return totals, nil
}

// TotalsByDate groups spend by calendar day over the window
func (r *ExpenseRepository) TotalsByDate(ctx context.Context, ownerID string, q expense.Query) ([]expense.DateTotal, error) {
	collection := r.db.Collection(ExpenseCollectionName)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: queryFilter(ownerID, q)}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$date",
			}},
			"total": bson.M{"$sum": "$amount"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to aggregate expenses by date", "error", err)
		return nil, fmt.Errorf("failed to aggregate expenses by date: %w", err)
	}
	defer cursor.Close(ctx)

	totals := []expense.DateTotal{}
	if err := cursor.All(ctx, &totals); err != nil {
		r.logger.Error("Failed to decode date totals", "error", err)
		return nil, fmt.Errorf("failed to decode date totals: %w", err)
	}

	return totals, nil
}

// TotalsByTag unwinds tag references and groups spend by tag
func (r *ExpenseRepository) TotalsByTag(ctx context.Context, ownerID string, q expense.Query) ([]expense.TagTotal, error) {
	collection := r.db.Collection(ExpenseCollectionName)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: queryFilter(ownerID, q)}},
		bson.D{{Key: "$unwind", Value: "$tags"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$tags",
			"total": bson.M{"$sum": "$amount"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"total": -1}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to aggregate expenses by tag", "error", err)
		return nil, fmt.Errorf("failed to aggregate expenses by tag: %w", err)
	}
	defer cursor.Close(ctx)

	totals := []expense.TagTotal{}
	if err := cursor.All(ctx, &totals); err != nil {
		r.logger.Error("Failed to decode tag totals", "error", err)
		return nil, fmt.Errorf("failed to decode tag totals: %w", err)
	}

	return totals, nil
}

// SumForMonth totals the owner's spend within one calendar month
func (r *ExpenseRepository) SumForMonth(ctx context.Context, ownerID string, year int, month time.Month) (int64, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	collection := r.db.Collection(ExpenseCollectionName)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"owner_id": ownerID,
			"date":     bson.M{"$gte": start, "$lt": end},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to sum expenses for month", "error", err)
		return 0, fmt.Errorf("failed to sum expenses for month: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		r.logger.Error("Failed to decode month sum", "error", err)
		return 0, fmt.Errorf("failed to decode month sum: %w", err)
	}

	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func queryFilter(ownerID string, q expense.Query) bson.M {
	filter := bson.M{"owner_id": ownerID}
	dateRange := bson.M{}
	if !q.StartDate.IsZero() {
		dateRange["$gte"] = q.StartDate
	}
	if !q.EndDate.IsZero() {
		dateRange["$lte"] = q.EndDate
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}
	if q.CategoryID != nil {
		filter["category"] = *q.CategoryID
	}
	return filter
}
