package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/homeledger/homeledger/internal/domain/category"
)

func TestCategoryServiceImpl_CreateCategory(t *testing.T) {
	ctx := context.Background()
	ownerID := "owner-1"

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		svc := NewCategoryService(mockRepo)

		mockRepo.On("GetByName", ctx, ownerID, "Groceries").Return(nil, nil).Once()
		mockRepo.On("Create", ctx, mock.AnythingOfType("*category.Category")).Return(nil).Once()

		c, err := svc.CreateCategory(ctx, ownerID, "Groceries", category.KindExpense, "cart", "#00aa00")

		assert.NoError(t, err)
		assert.Equal(t, "Groceries", c.Name)
		assert.Equal(t, category.KindExpense, c.Kind)
		mockRepo.AssertExpectations(t)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		svc := NewCategoryService(mockRepo)

		existing := &category.Category{ID: primitive.NewObjectID(), OwnerID: ownerID, Name: "Groceries", Kind: category.KindExpense}
		mockRepo.On("GetByName", ctx, ownerID, "Groceries").Return(existing, nil).Once()

		c, err := svc.CreateCategory(ctx, ownerID, "Groceries", category.KindExpense, "", "")

		assert.Nil(t, c)
		var duplicate category.ErrDuplicateName
		assert.ErrorAs(t, err, &duplicate)
		assert.Equal(t, "Groceries", duplicate.Name)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("InvalidKind", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		svc := NewCategoryService(mockRepo)

		mockRepo.On("GetByName", ctx, ownerID, "Misc").Return(nil, nil).Once()

		_, err := svc.CreateCategory(ctx, ownerID, "Misc", "savings", "", "")

		assert.ErrorIs(t, err, category.ErrInvalidKind)
	})
}

func TestCategoryServiceImpl_UpdateCategory(t *testing.T) {
	ctx := context.Background()
	ownerID := "owner-1"

	t.Run("RenameToExistingNameRejected", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		svc := NewCategoryService(mockRepo)

		current := &category.Category{ID: primitive.NewObjectID(), OwnerID: ownerID, Name: "Dining", Kind: category.KindExpense}
		other := &category.Category{ID: primitive.NewObjectID(), OwnerID: ownerID, Name: "Groceries", Kind: category.KindExpense}

		mockRepo.On("GetByID", ctx, ownerID, current.ID).Return(current, nil).Once()
		mockRepo.On("GetByName", ctx, ownerID, "Groceries").Return(other, nil).Once()

		_, err := svc.UpdateCategory(ctx, ownerID, current.ID, "Groceries", category.KindExpense, "", "")

		var duplicate category.ErrDuplicateName
		assert.ErrorAs(t, err, &duplicate)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("KeepingOwnNameAllowed", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		svc := NewCategoryService(mockRepo)

		current := &category.Category{ID: primitive.NewObjectID(), OwnerID: ownerID, Name: "Dining", Kind: category.KindExpense}

		mockRepo.On("GetByID", ctx, ownerID, current.ID).Return(current, nil).Once()
		mockRepo.On("GetByName", ctx, ownerID, "Dining").Return(current, nil).Once()
		mockRepo.On("Update", ctx, current).Return(nil).Once()

		c, err := svc.UpdateCategory(ctx, ownerID, current.ID, "Dining", category.KindExpense, "utensils", "")

		assert.NoError(t, err)
		assert.Equal(t, "utensils", c.Icon)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		svc := NewCategoryService(mockRepo)

		id := primitive.NewObjectID()
		mockRepo.On("GetByID", ctx, ownerID, id).Return(nil, category.ErrCategoryNotFound{CategoryID: id}).Once()

		_, err := svc.UpdateCategory(ctx, ownerID, id, "Groceries", category.KindExpense, "", "")

		assert.ErrorIs(t, err, category.ErrCategoryNotFound{})
	})
}
