package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/homeledger/homeledger/internal/domain/filter"
)

// FilterServiceImpl implements the FilterService interface
type FilterServiceImpl struct {
	filters filter.Repository
}

// NewFilterService creates a new saved-filter service
func NewFilterService(filters filter.Repository) FilterService {
	return &FilterServiceImpl{filters: filters}
}

// ListFilters returns all of the owner's saved filters
func (s *FilterServiceImpl) ListFilters(ctx context.Context, ownerID string) ([]*filter.Filter, error) {
	return s.filters.List(ctx, ownerID)
}

// CreateFilter validates and persists a new saved filter
func (s *FilterServiceImpl) CreateFilter(ctx context.Context, ownerID, name string, conditions filter.Conditions) (*filter.Filter, error) {
	f, err := filter.New(ownerID, name, conditions)
	if err != nil {
		return nil, err
	}

	if err := s.filters.Create(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

// UpdateFilter replaces the filter's name and conditions
func (s *FilterServiceImpl) UpdateFilter(ctx context.Context, ownerID string, id primitive.ObjectID, name string, conditions filter.Conditions) (*filter.Filter, error) {
	f, err := s.filters.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, filter.ErrEmptyName
	}

	f.Name = name
	f.Conditions = conditions

	if err := s.filters.Update(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

// DeleteFilter removes the saved filter
func (s *FilterServiceImpl) DeleteFilter(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	return s.filters.Delete(ctx, ownerID, id)
}
