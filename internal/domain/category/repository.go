package category

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines category persistence operations
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*Category, error)
	// GetByName returns nil, nil when no category with that name exists
	GetByName(ctx context.Context, ownerID, name string) (*Category, error)
	List(ctx context.Context, ownerID string) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

// ErrCategoryNotFound indicates missing category
type ErrCategoryNotFound struct {
	CategoryID primitive.ObjectID
}

func (e ErrCategoryNotFound) Error() string {
	return "category not found: " + e.CategoryID.Hex()
}

// Is implements the errors.Is interface for ErrCategoryNotFound
func (e ErrCategoryNotFound) Is(target error) bool {
	t, ok := target.(ErrCategoryNotFound)
	if !ok {
		return false
	}
	if t.CategoryID.IsZero() {
		return true
	}
	return e.CategoryID == t.CategoryID
}

// ErrDuplicateName indicates a per-owner category name collision
type ErrDuplicateName struct {
	Name string
}

func (e ErrDuplicateName) Error() string {
	return "category with this name already exists: " + e.Name
}
