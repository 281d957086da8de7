package category

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind splits categories into spending and income buckets
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Common errors
var (
	ErrEmptyName   = errors.New("category name cannot be empty")
	ErrInvalidKind = errors.New("category type must be expense or income")
)

// Category is a per-owner expense/income classification
type Category struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID   string             `json:"-" bson:"owner_id"`
	Name      string             `json:"name" bson:"name"`
	Kind      Kind               `json:"type" bson:"kind"`
	Icon      string             `json:"icon,omitempty" bson:"icon,omitempty"`
	Color     string             `json:"color,omitempty" bson:"color,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// New creates a category after validating name and kind
func New(ownerID, name string, kind Kind, icon, color string) (*Category, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if kind != KindExpense && kind != KindIncome {
		return nil, ErrInvalidKind
	}

	now := time.Now()
	return &Category{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Name:      name,
		Kind:      kind,
		Icon:      icon,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
