package services

import (
	"context"

	"go.uber.org/zap"

	"blogapi/application/ports"
	"blogapi/domain/blog"
	"blogapi/pkg/identifier"
)

// TaxonomyService manages the categories and tags that posts reference.
type TaxonomyService interface {
	CreateCategory(ctx context.Context, name string) (*blog.Category, error)
	ListCategories(ctx context.Context) ([]*blog.Category, error)
	CreateTag(ctx context.Context, name string) (*blog.Tag, error)
	ListTags(ctx context.Context) ([]blog.Tag, error)
}

type taxonomyService struct {
	categories ports.CategoryRepository
	tags       ports.TagRepository
	ids        identifier.Generator
	logger     *zap.Logger
}

// NewTaxonomyService creates a new taxonomy service
func NewTaxonomyService(
	categories ports.CategoryRepository,
	tags ports.TagRepository,
	ids identifier.Generator,
	logger *zap.Logger,
) TaxonomyService {
	return &taxonomyService{
		categories: categories,
		tags:       tags,
		ids:        ids,
		logger:     logger,
	}
}

// CreateCategory creates a category with a fresh identifier. Name
// uniqueness is enforced by the store; a duplicate surfaces as a
// conflict error from the repository.
func (s *taxonomyService) CreateCategory(ctx context.Context, name string) (*blog.Category, error) {
	category := &blog.Category{
		ID:   s.ids.NewID(),
		Name: name,
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created", zap.String("categoryID", category.ID), zap.String("name", name))
	return category, nil
}

// ListCategories returns all categories.
func (s *taxonomyService) ListCategories(ctx context.Context) ([]*blog.Category, error) {
	return s.categories.FindAll(ctx)
}

// CreateTag creates a tag with a fresh identifier, subject to the same
// name uniqueness as categories.
func (s *taxonomyService) CreateTag(ctx context.Context, name string) (*blog.Tag, error) {
	tag := &blog.Tag{
		ID:   s.ids.NewID(),
		Name: name,
	}
	if err := s.tags.Save(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("Tag created", zap.String("tagID", tag.ID), zap.String("name", name))
	return tag, nil
}

// ListTags returns all tags.
func (s *taxonomyService) ListTags(ctx context.Context) ([]blog.Tag, error) {
	return s.tags.FindAll(ctx)
}
