package filter

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines saved-filter persistence operations
type Repository interface {
	Create(ctx context.Context, f *Filter) error
	GetByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*Filter, error)
	List(ctx context.Context, ownerID string) ([]*Filter, error)
	Update(ctx context.Context, f *Filter) error
	Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

// ErrFilterNotFound indicates missing saved filter
type ErrFilterNotFound struct {
	FilterID primitive.ObjectID
}

func (e ErrFilterNotFound) Error() string {
	return "filter not found: " + e.FilterID.Hex()
}

// Is implements the errors.Is interface for ErrFilterNotFound
func (e ErrFilterNotFound) Is(target error) bool {
	t, ok := target.(ErrFilterNotFound)
	if !ok {
		return false
	}
	if t.FilterID.IsZero() {
		return true
	}
	return e.FilterID == t.FilterID
}
