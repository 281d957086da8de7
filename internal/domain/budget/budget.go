package budget

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Common errors
var (
	ErrInvalidAmount = errors.New("budget amount cannot be negative")
	ErrInvalidMonth  = errors.New("budget month must be between 1 and 12")
)

// Budget caps planned spend for one owner and one calendar month.
// There is at most one record per (owner, year, month).
type Budget struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID   string             `json:"-" bson:"owner_id"`
	Year      int                `json:"year" bson:"year"`
	Month     int                `json:"month" bson:"month"`
	Amount    int64              `json:"amount" bson:"amount"` // Stored in cents/minor units
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// New creates a budget record after validating amount and month
func New(ownerID string, year, month int, amount int64) (*Budget, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	now := time.Now()
	return &Budget{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Year:      year,
		Month:     month,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
