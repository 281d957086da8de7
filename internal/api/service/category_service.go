package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/homeledger/homeledger/internal/domain/category"
)

// CategoryServiceImpl implements the CategoryService interface
type CategoryServiceImpl struct {
	categories category.Repository
}

// NewCategoryService creates a new category service
func NewCategoryService(categories category.Repository) CategoryService {
	return &CategoryServiceImpl{categories: categories}
}

// ListCategories returns all of the owner's categories
func (s *CategoryServiceImpl) ListCategories(ctx context.Context, ownerID string) ([]*category.Category, error) {
	return s.categories.List(ctx, ownerID)
}

// CreateCategory creates a category, rejecting per-owner duplicate names
func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, ownerID, name string, kind category.Kind, icon, color string) (*category.Category, error) {
	existing, err := s.categories.GetByName(ctx, ownerID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, category.ErrDuplicateName{Name: name}
	}

	c, err := category.New(ownerID, name, kind, icon, color)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// UpdateCategory replaces the category's editable fields, keeping the
// per-owner name unique
func (s *CategoryServiceImpl) UpdateCategory(ctx context.Context, ownerID string, id primitive.ObjectID, name string, kind category.Kind, icon, color string) (*category.Category, error) {
	c, err := s.categories.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, category.ErrEmptyName
	}
	if kind != category.KindExpense && kind != category.KindIncome {
		return nil, category.ErrInvalidKind
	}

	existing, err := s.categories.GetByName(ctx, ownerID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, category.ErrDuplicateName{Name: name}
	}

	c.Name = name
	c.Kind = kind
	c.Icon = icon
	c.Color = color

	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// DeleteCategory removes the category. Expenses referencing it keep the
// dangling reference, mirroring account deletion.
func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	return s.categories.Delete(ctx, ownerID, id)
}
