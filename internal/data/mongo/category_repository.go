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

	"github.com/homeledger/homeledger/internal/domain/category"
)

const (
	// CategoryCollectionName is the name of the categories collection in MongoDB
	CategoryCollectionName = "categories"
)

// CategoryRepository implements the category.Repository interface for MongoDB
type CategoryRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewCategoryRepository creates a new MongoDB category repository
func NewCategoryRepository(logger *slog.Logger, db *mongo.Database) category.Repository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new category
func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	collection := r.db.Collection(CategoryCollectionName)

	_, err := collection.InsertOne(ctx, c)
	if err != nil {
		r.logger.Error("Failed to create category", "name", c.Name, "error", err)
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category. Returns ErrCategoryNotFound if absent.
func (r *CategoryRepository) GetByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*category.Category, error) {
	collection := r.db.Collection(CategoryCollectionName)

	filter := bson.M{"_id": id, "owner_id": ownerID}
	var c category.Category
	err := collection.FindOne(ctx, filter).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, category.ErrCategoryNotFound{CategoryID: id}
		}
		r.logger.Error("Failed to get category", "category_id", id.Hex(), "error", err)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &c, nil
}

// GetByName retrieves a category by its per-owner unique name.
// Returns nil, nil when no category with that name exists.
func (r *CategoryRepository) GetByName(ctx context.Context, ownerID, name string) (*category.Category, error) {
	collection := r.db.Collection(CategoryCollectionName)

	filter := bson.M{"owner_id": ownerID, "name": name}
	var c category.Category
	err := collection.FindOne(ctx, filter).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error("Failed to get category by name", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}

	return &c, nil
}

// List retrieves all of the owner's categories sorted by name
func (r *CategoryRepository) List(ctx context.Context, ownerID string) ([]*category.Category, error) {
	collection := r.db.Collection(CategoryCollectionName)

	filter := bson.M{"owner_id": ownerID}
	opts := options.Find().SetSort(bson.M{"name": 1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list categories", "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []*category.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		r.logger.Error("Failed to decode categories", "error", err)
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, nil
}

// Update replaces the stored category document
func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	collection := r.db.Collection(CategoryCollectionName)

	filter := bson.M{"_id": c.ID, "owner_id": c.OwnerID}
	result, err := collection.ReplaceOne(ctx, filter, c)
	if err != nil {
		r.logger.Error("Failed to update category", "category_id", c.ID.Hex(), "error", err)
		return fmt.Errorf("failed to update category: %w", err)
	}

	if result.MatchedCount == 0 {
		return category.ErrCategoryNotFound{CategoryID: c.ID}
	}

	return nil
}

// Delete removes the category
func (r *CategoryRepository) Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	collection := r.db.Collection(CategoryCollectionName)

	filter := bson.M{"_id": id, "owner_id": ownerID}
	result, err := collection.DeleteOne(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to delete category", "category_id", id.Hex(), "error", err)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if result.DeletedCount == 0 {
		return category.ErrCategoryNotFound{CategoryID: id}
	}

	return nil
}
