package filter

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxNameLen = 50

// Common errors
var (
	ErrEmptyName   = errors.New("filter name cannot be empty")
	ErrNameTooLong = errors.New("filter name exceeds 50 characters")
)

// TimeRange is either a named preset (week, month, quarter, year and the
// last* variants) or a custom start/end window.
type TimeRange struct {
	Type      string     `json:"type" bson:"type"`
	Preset    string     `json:"preset,omitempty" bson:"preset,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
}

// AmountRange is one comparison against the expense amount
type AmountRange struct {
	Operator string `json:"operator" bson:"operator"` // gt, lt, eq, gte, lte
	Value    int64  `json:"value" bson:"value"`
}

// Conditions is the saved filter predicate set
type Conditions struct {
	TimeRange    *TimeRange           `json:"time_range,omitempty" bson:"time_range,omitempty"`
	AmountRanges []AmountRange        `json:"amount_ranges,omitempty" bson:"amount_ranges,omitempty"`
	Categories   []primitive.ObjectID `json:"categories,omitempty" bson:"categories,omitempty"`
	Tags         []primitive.ObjectID `json:"tags,omitempty" bson:"tags,omitempty"`
	IsExtra      *bool                `json:"is_extra,omitempty" bson:"is_extra,omitempty"`
}

// Filter is a named, per-owner saved search over expenses
type Filter struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID    string             `json:"-" bson:"owner_id"`
	Name       string             `json:"name" bson:"name"`
	Conditions Conditions         `json:"conditions" bson:"conditions"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// New creates a saved filter after validating the name
func New(ownerID, name string, conditions Conditions) (*Filter, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > maxNameLen {
		return nil, ErrNameTooLong
	}

	now := time.Now()
	return &Filter{
		ID:         primitive.NewObjectID(),
		OwnerID:    ownerID,
		Name:       name,
		Conditions: conditions,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
