package expense

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxDescriptionLen = 200

// Common errors
var (
	ErrInvalidAmount      = errors.New("expense amount must be positive")
	ErrMissingDate        = errors.New("expense date is required")
	ErrMissingCategory    = errors.New("expense category is required")
	ErrDescriptionTooLong = errors.New("expense description exceeds 200 characters")
)

// Expense is one spending record
type Expense struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	OwnerID     string               `json:"-" bson:"owner_id"`
	Date        time.Time            `json:"date" bson:"date"`
	CategoryID  primitive.ObjectID   `json:"category" bson:"category"`
	Amount      int64                `json:"amount" bson:"amount"` // Stored in cents/minor units
	Description string               `json:"description,omitempty" bson:"description,omitempty"`
	TagIDs      []primitive.ObjectID `json:"tags" bson:"tags"`
	IsExtra     bool                 `json:"is_extra" bson:"is_extra"`
	CreatedAt   time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" bson:"updated_at"`
}

// New creates an expense record after validating its fields
func New(ownerID string, date time.Time, categoryID primitive.ObjectID, amount int64, description string, tagIDs []primitive.ObjectID, isExtra bool) (*Expense, error) {
	if date.IsZero() {
		return nil, ErrMissingDate
	}
	if categoryID.IsZero() {
		return nil, ErrMissingCategory
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if len(description) > maxDescriptionLen {
		return nil, ErrDescriptionTooLong
	}
	if tagIDs == nil {
		tagIDs = []primitive.ObjectID{}
	}

	now := time.Now()
	return &Expense{
		ID:          primitive.NewObjectID(),
		OwnerID:     ownerID,
		Date:        date,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
		TagIDs:      tagIDs,
		IsExtra:     isExtra,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
