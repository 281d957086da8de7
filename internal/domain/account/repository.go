package account

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines account persistence operations. All queries are
// scoped to an owner so multi-tenant isolation is a parameter, not an
// assumption baked into the store.
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*Account, error)
	List(ctx context.Context, ownerID string) ([]*Account, error)
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

// ErrAccountNotFound indicates missing account. Role names which side of
// a transfer the lookup served ("source account", "destination account")
// so callers can surface a precise message.
type ErrAccountNotFound struct {
	AccountID primitive.ObjectID
	Role      string
}

func (e ErrAccountNotFound) Error() string {
	role := e.Role
	if role == "" {
		role = "account"
	}
	return role + " not found: " + e.AccountID.Hex()
}

// Is implements the errors.Is interface for ErrAccountNotFound
func (e ErrAccountNotFound) Is(target error) bool {
	t, ok := target.(ErrAccountNotFound)
	if !ok {
		return false
	}
	// A zero target AccountID matches any ErrAccountNotFound
	if t.AccountID.IsZero() {
		return true
	}
	return e.AccountID == t.AccountID
}
