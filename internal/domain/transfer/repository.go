package transfer

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository manages ledger entry persistence. The ledger is append-only:
// there is intentionally no update or delete operation.
type Repository interface {
	Create(ctx context.Context, entry *Transfer) error
	GetByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*Transfer, error)
	List(ctx context.Context, ownerID string, accountID *primitive.ObjectID, limit, offset int) ([]*Transfer, error)
	Count(ctx context.Context, ownerID string, accountID *primitive.ObjectID) (int64, error)
}

// ErrTransferNotFound indicates missing ledger entry
type ErrTransferNotFound struct {
	TransferID primitive.ObjectID
}

func (e ErrTransferNotFound) Error() string {
	return "transfer not found: " + e.TransferID.Hex()
}

// Is implements the errors.Is interface for ErrTransferNotFound
func (e ErrTransferNotFound) Is(target error) bool {
	t, ok := target.(ErrTransferNotFound)
	if !ok {
		return false
	}
	if t.TransferID.IsZero() {
		return true
	}
	return e.TransferID == t.TransferID
}
