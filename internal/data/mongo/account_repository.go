// Package mongo provides MongoDB implementations of the domain
// repositories. Repositories take their session from the caller's
// context: operations invoked with a session context join the enclosing
// transaction, plain contexts run standalone.
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

	"github.com/homeledger/homeledger/internal/domain/account"
)

const (
	// AccountCollectionName is the name of the accounts collection in MongoDB
	AccountCollectionName = "accounts"
)

// AccountRepository implements the account.Repository interface for MongoDB
type AccountRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewAccountRepository creates a new MongoDB account repository
func NewAccountRepository(logger *slog.Logger, db *mongo.Database) account.Repository {
	return &AccountRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new account
func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	collection := r.db.Collection(AccountCollectionName)

	_, err := collection.InsertOne(ctx, acc)
	if err != nil {
		r.logger.Error("Failed to create account",
			"account_id", acc.ID.Hex(),
			"error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by its ID, scoped to the owner.
// Returns ErrAccountNotFound if no such account exists.
func (r *AccountRepository) GetByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*account.Account, error) {
	collection := r.db.Collection(AccountCollectionName)

	filter := bson.M{"_id": id, "owner_id": ownerID}
	var acc account.Account
	err := collection.FindOne(ctx, filter).Decode(&acc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, account.ErrAccountNotFound{AccountID: id}
		}
		r.logger.Error("Failed to get account",
			"account_id", id.Hex(),
			"error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acc, nil
}

// List retrieves all of the owner's accounts, newest-created first
func (r *AccountRepository) List(ctx context.Context, ownerID string) ([]*account.Account, error) {
	collection := r.db.Collection(AccountCollectionName)

	filter := bson.M{"owner_id": ownerID}
	opts := options.Find().SetSort(bson.M{"created_at": -1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list accounts", "error", err)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer cursor.Close(ctx)

	accounts := []*account.Account{}
	if err := cursor.All(ctx, &accounts); err != nil {
		r.logger.Error("Failed to decode accounts", "error", err)
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}

	return accounts, nil
}

// Update replaces the stored account document. Returns ErrAccountNotFound
// if the account no longer exists.
func (r *AccountRepository) Update(ctx context.Context, acc *account.Account) error {
	collection := r.db.Collection(AccountCollectionName)

	filter := bson.M{"_id": acc.ID, "owner_id": acc.OwnerID}
	result, err := collection.ReplaceOne(ctx, filter, acc)
	if err != nil {
		r.logger.Error("Failed to update account",
			"account_id", acc.ID.Hex(),
			"error", err)
		return fmt.Errorf("failed to update account: %w", err)
	}

	if result.MatchedCount == 0 {
		return account.ErrAccountNotFound{AccountID: acc.ID}
	}

	return nil
}

// Delete removes the account. Historical transfers referencing it are
// left in place; the dangling reference is an accepted tradeoff.
func (r *AccountRepository) Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	collection := r.db.Collection(AccountCollectionName)

	filter := bson.M{"_id": id, "owner_id": ownerID}
	result, err := collection.DeleteOne(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to delete account",
			"account_id", id.Hex(),
			"error", err)
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if result.DeletedCount == 0 {
		return account.ErrAccountNotFound{AccountID: id}
	}

	return nil
}
