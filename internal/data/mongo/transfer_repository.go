package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/homeledger/homeledger/internal/domain/transfer"
)

const (
	// TransferCollectionName is the name of the ledger collection in MongoDB
	TransferCollectionName = "transfers"
)

// TransferRepository implements the transfer.Repository interface for
// MongoDB. The collection is append-only: this type exposes no update or
// delete operation, which keeps the ledger immutable by construction.
type TransferRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewTransferRepository creates a new MongoDB transfer repository
func NewTransferRepository(logger *slog.Logger, db *mongo.Database) transfer.Repository {
	return &TransferRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new ledger entry after checking its invariants
func (r *TransferRepository) Create(ctx context.Context, entry *transfer.Transfer) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	collection := r.db.Collection(TransferCollectionName)

	_, err := collection.InsertOne(ctx, entry)
	if err != nil {
		r.logger.Error("Failed to create transfer entry",
			"transfer_id", entry.ID.Hex(),
			"error", err)
		return fmt.Errorf("failed to create transfer entry: %w", err)
	}

	return nil
}

// GetByID retrieves a ledger entry. Returns ErrTransferNotFound if no
// entry exists with the given ID.
func (r *TransferRepository) GetByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*transfer.Transfer, error) {
	collection := r.db.Collection(TransferCollectionName)

	filter := bson.M{"_id": id, "owner_id": ownerID}
	var entry transfer.Transfer
	err := collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, transfer.ErrTransferNotFound{TransferID: id}
		}
		r.logger.Error("Failed to get transfer entry",
			"transfer_id", id.Hex(),
			"error", err)
		return nil, fmt.Errorf("failed to get transfer entry: %w", err)
	}

	return &entry, nil
}

// List retrieves paginated ledger entries, newest first. A non-nil
// accountID restricts the listing to entries touching that account on
// either side.
func (r *TransferRepository) List(ctx context.Context, ownerID string, accountID *primitive.ObjectID, limit, offset int) ([]*transfer.Transfer, error) {
	collection := r.db.Collection(TransferCollectionName)

	filter := listFilter(ownerID, accountID)
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list transfer entries", "error", err)
		return nil, fmt.Errorf("failed to list transfer entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []*transfer.Transfer{}
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode transfer entries", "error", err)
		return nil, fmt.Errorf("failed to decode transfer entries: %w", err)
	}

	return entries, nil
}

// Count counts ledger entries matching the same criteria as List
func (r *TransferRepository) Count(ctx context.Context, ownerID string, accountID *primitive.ObjectID) (int64, error) {
	collection := r.db.Collection(TransferCollectionName)

	count, err := collection.CountDocuments(ctx, listFilter(ownerID, accountID))
	if err != nil {
		r.logger.Error("Failed to count transfer entries", "error", err)
		return 0, fmt.Errorf("failed to count transfer entries: %w", err)
	}

	return count, nil
}

func listFilter(ownerID string, accountID *primitive.ObjectID) bson.M {
	filter := bson.M{"owner_id": ownerID}
	if accountID != nil {
		filter["$or"] = bson.A{
			bson.M{"from_account": *accountID},
			bson.M{"to_account": *accountID},
		}
	}
	return filter
}
