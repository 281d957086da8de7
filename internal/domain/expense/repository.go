package expense

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Query narrows expense listings and aggregations. Zero-value time
// bounds mean "unbounded"; a nil CategoryID means all categories.
type Query struct {
	StartDate  time.Time
	EndDate    time.Time
	CategoryID *primitive.ObjectID
}

// CategoryTotal is one row of a per-category aggregation
type CategoryTotal struct {
	CategoryID primitive.ObjectID `bson:"_id"`
	Total      int64              `bson:"total"`
}

// DateTotal is one row of a per-day aggregation; Date is formatted YYYY-MM-DD
type DateTotal struct {
	Date  string `bson:"_id"`
	Total int64  `bson:"total"`
}

// TagTotal is one row of a per-tag aggregation
type TagTotal struct {
	TagID primitive.ObjectID `bson:"_id"`
	Total int64              `bson:"total"`
}

// Summary aggregates spend over a query window, split by the extra flag
type Summary struct {
	Total       int64 `bson:"total"`
	ExtraTotal  int64 `bson:"extra_total"`
	NormalTotal int64 `bson:"normal_total"`
}

// Repository defines expense persistence and aggregation operations.
// Aggregations run store-side; callers never page raw records to sum them.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	List(ctx context.Context, ownerID string, q Query) ([]*Expense, error)
	Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error

	Summarize(ctx context.Context, ownerID string, q Query) (*Summary, error)
	TotalsByCategory(ctx context.Context, ownerID string, q Query) ([]CategoryTotal, error)
	TotalsByDate(ctx context.Context, ownerID string, q Query) ([]DateTotal, error)
	TotalsByTag(ctx context.Context, ownerID string, q Query) ([]TagTotal, error)
	// SumForMonth returns total spend for the owner's (year, month), used by the budget watcher
	SumForMonth(ctx context.Context, ownerID string, year int, month time.Month) (int64, error)
}

// ErrExpenseNotFound indicates missing expense record
type ErrExpenseNotFound struct {
	ExpenseID primitive.ObjectID
}

func (e ErrExpenseNotFound) Error() string {
	return "expense not found: " + e.ExpenseID.Hex()
}

// Is implements the errors.Is interface for ErrExpenseNotFound
func (e ErrExpenseNotFound) Is(target error) bool {
	t, ok := target.(ErrExpenseNotFound)
	if !ok {
		return false
	}
	if t.ExpenseID.IsZero() {
		return true
	}
	return e.ExpenseID == t.ExpenseID
}
