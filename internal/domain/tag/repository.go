package tag

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines tag persistence operations
type Repository interface {
	Create(ctx context.Context, t *Tag) error
	GetByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*Tag, error)
	// GetByName returns nil, nil when no tag with that name exists
	GetByName(ctx context.Context, ownerID, name string) (*Tag, error)
	List(ctx context.Context, ownerID string) ([]*Tag, error)
	Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

// ErrTagNotFound indicates missing tag
type ErrTagNotFound struct {
	TagID primitive.ObjectID
}

func (e ErrTagNotFound) Error() string {
	return "tag not found: " + e.TagID.Hex()
}

// Is implements the errors.Is interface for ErrTagNotFound
func (e ErrTagNotFound) Is(target error) bool {
	t, ok := target.(ErrTagNotFound)
	if !ok {
		return false
	}
	if t.TagID.IsZero() {
		return true
	}
	return e.TagID == t.TagID
}

// ErrDuplicateName indicates a per-owner tag name collision
type ErrDuplicateName struct {
	Name string
}

func (e ErrDuplicateName) Error() string {
	return "tag with this name already exists: " + e.Name
}
