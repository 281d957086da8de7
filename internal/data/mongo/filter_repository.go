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

	"github.com/homeledger/homeledger/internal/domain/filter"
)

const (
	// FilterCollectionName is the name of the saved filters collection in MongoDB
	FilterCollectionName = "filters"
)

// FilterRepository implements the filter.Repository interface for MongoDB
type FilterRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewFilterRepository creates a new MongoDB saved-filter repository
func NewFilterRepository(logger *slog.Logger, db *mongo.Database) filter.Repository {
	return &FilterRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new saved filter
func (r *FilterRepository) Create(ctx context.Context, f *filter.Filter) error {
	collection := r.db.Collection(FilterCollectionName)

	_, err := collection.InsertOne(ctx, f)
	if err != nil {
		r.logger.Error("Failed to create filter", "name", f.Name, "error", err)
		return fmt.Errorf("failed to create filter: %w", err)
	}

	return nil
}

// GetByID retrieves a saved filter. Returns ErrFilterNotFound if absent.
func (r *FilterRepository) GetByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*filter.Filter, error) {
	collection := r.db.Collection(FilterCollectionName)

	var f filter.Filter
	err := collection.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, filter.ErrFilterNotFound{FilterID: id}
		}
		r.logger.Error("Failed to get filter", "filter_id", id.Hex(), "error", err)
		return nil, fmt.Errorf("failed to get filter: %w", err)
	}

	return &f, nil
}

// List retrieves all of the owner's saved filters, newest first
func (r *FilterRepository) List(ctx context.Context, ownerID string) ([]*filter.Filter, error) {
	collection := r.db.Collection(FilterCollectionName)

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		r.logger.Error("Failed to list filters", "error", err)
		return nil, fmt.Errorf("failed to list filters: %w", err)
	}
	defer cursor.Close(ctx)

	filters := []*filter.Filter{}
	if err := cursor.All(ctx, &filters); err != nil {
		r.logger.Error("Failed to decode filters", "error", err)
		return nil, fmt.Errorf("failed to decode filters: %w", err)
	}

	return filters, nil
}

// Update replaces the stored filter document
func (r *FilterRepository) Update(ctx context.Context, f *filter.Filter) error {
	collection := r.db.Collection(FilterCollectionName)

	result, err := collection.ReplaceOne(ctx, bson.M{"_id": f.ID, "owner_id": f.OwnerID}, f)
	if err != nil {
		r.logger.Error("Failed to update filter", "filter_id", f.ID.Hex(), "error", err)
		return fmt.Errorf("failed to update filter: %w", err)
	}

	if result.MatchedCount == 0 {
		return filter.ErrFilterNotFound{FilterID: f.ID}
	}

	return nil
}

// Delete removes the saved filter
func (r *FilterRepository) Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	collection := r.db.Collection(FilterCollectionName)

	result, err := collection.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		r.logger.Error("Failed to delete filter", "filter_id", id.Hex(), "error", err)
		return fmt.Errorf("failed to delete filter: %w", err)
	}

	if result.DeletedCount == 0 {
		return filter.ErrFilterNotFound{FilterID: id}
	}

	return nil
}
