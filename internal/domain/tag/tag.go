package tag

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrEmptyName = errors.New("tag name cannot be empty")

// Tag is a per-owner free-form label attached to expenses
type Tag struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID   string             `json:"-" bson:"owner_id"`
	Name      string             `json:"name" bson:"name"`
	Color     string             `json:"color,omitempty" bson:"color,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// New creates a tag after validating the name
func New(ownerID, name, color string) (*Tag, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	return &Tag{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
	}, nil
}
