package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/homeledger/homeledger/internal/domain/tag"
)

// TagServiceImpl implements the TagService interface
type TagServiceImpl struct {
	tags tag.Repository
}

// NewTagService creates a new tag service
func NewTagService(tags tag.Repository) TagService {
	return &TagServiceImpl{tags: tags}
}

// ListTags returns all of the owner's tags
func (s *TagServiceImpl) ListTags(ctx context.Context, ownerID string) ([]*tag.Tag, error) {
	return s.tags.List(ctx, ownerID)
}

// CreateTag creates a tag, rejecting per-owner duplicate names
func (s *TagServiceImpl) CreateTag(ctx context.Context, ownerID, name, color string) (*tag.Tag, error) {
	existing, err := s.tags.GetByName(ctx, ownerID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, tag.ErrDuplicateName{Name: name}
	}

	t, err := tag.New(ownerID, name, color)
	if err != nil {
		return nil, err
	}

	if err := s.tags.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// DeleteTag removes the tag
func (s *TagServiceImpl) DeleteTag(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	return s.tags.Delete(ctx, ownerID, id)
}
