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

	"github.com/homeledger/homeledger/internal/domain/tag"
)

const (
	// TagCollectionName is the name of the tags collection in MongoDB
	TagCollectionName = "tags"
)

// TagRepository implements the tag.Repository interface for MongoDB
type TagRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewTagRepository creates a new MongoDB tag repository
func NewTagRepository(logger *slog.Logger, db *mongo.Database) tag.Repository {
	return &TagRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new tag
func (r *TagRepository) Create(ctx context.Context, t *tag.Tag) error {
	collection := r.db.Collection(TagCollectionName)

	_, err := collection.InsertOne(ctx, t)
	if err != nil {
		r.logger.Error("Failed to create tag", "name", t.Name, "error", err)
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

// GetByID retrieves a tag. Returns ErrTagNotFound if absent.
func (r *TagRepository) GetByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*tag.Tag, error) {
	collection := r.db.Collection(TagCollectionName)

	filter := bson.M{"_id": id, "owner_id": ownerID}
	var t tag.Tag
	err := collection.FindOne(ctx, filter).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, tag.ErrTagNotFound{TagID: id}
		}
		r.logger.Error("Failed to get tag", "tag_id", id.Hex(), "error", err)
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return &t, nil
}

// GetByName returns nil, nil when no tag with that name exists
func (r *TagRepository) GetByName(ctx context.Context, ownerID, name string) (*tag.Tag, error) {
	collection := r.db.Collection(TagCollectionName)

	filter := bson.M{"owner_id": ownerID, "name": name}
	var t tag.Tag
	err := collection.FindOne(ctx, filter).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error("Failed to get tag by name", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get tag by name: %w", err)
	}

	return &t, nil
}

// List retrieves all of the owner's tags sorted by name
func (r *TagRepository) List(ctx context.Context, ownerID string) ([]*tag.Tag, error) {
	collection := r.db.Collection(TagCollectionName)

	filter := bson.M{"owner_id": ownerID}
	opts := options.Find().SetSort(bson.M{"name": 1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list tags", "error", err)
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer cursor.Close(ctx)

	tags := []*tag.Tag{}
	if err := cursor.All(ctx, &tags); err != nil {
		r.logger.Error("Failed to decode tags", "error", err)
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}

	return tags, nil
}

// Delete removes the tag
func (r *TagRepository) Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	collection := r.db.Collection(TagCollectionName)

	filter := bson.M{"_id": id, "owner_id": ownerID}
	result, err := collection.DeleteOne(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to delete tag", "tag_id", id.Hex(), "error", err)
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	if result.DeletedCount == 0 {
		return tag.ErrTagNotFound{TagID: id}
	}

	return nil
}
