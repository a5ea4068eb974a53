package services

import (
	"context"
	"strings"

	"blogapi/application/ports"
	"blogapi/domain/blog"
	apperrors "blogapi/pkg/errors"
)

// ReferenceResolver validates and loads foreign-key targets before a
// write. Resolution is all-or-nothing: a single unresolved identifier
// fails the whole operation.
type ReferenceResolver struct {
	categories ports.CategoryRepository
	tags       ports.TagRepository
}

// NewReferenceResolver creates a new reference resolver
func NewReferenceResolver(categories ports.CategoryRepository, tags ports.TagRepository) *ReferenceResolver {
	return &ReferenceResolver{
		categories: categories,
		tags:       tags,
	}
}

// ResolveCategory loads the category for id, failing with a not found
// error when no matching record exists.
func (r *ReferenceResolver) ResolveCategory(ctx context.Context, id string) (*blog.Category, error) {
	category, err := r.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperrors.NewNotFoundError("Category", id)
	}
	return category, nil
}

// ResolveTags loads all tags for the distinct identifiers in ids.
// Unmatched identifiers are never dropped silently: if any identifier
// does not resolve, the error names every missing one.
func (r *ReferenceResolver) ResolveTags(ctx context.Context, ids []string) ([]blog.Tag, error) {
	distinct := dedupe(ids)
	if len(distinct) == 0 {
		return nil, nil
	}

	tags, err := r.tags.FindByIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}

	if len(tags) != len(distinct) {
		resolved := make(map[string]bool, len(tags))
		for _, t := range tags {
			resolved[t.ID] = true
		}
		var missing []string
		for _, id := range distinct {
			if !resolved[id] {
				missing = append(missing, id)
			}
		}
		return nil, apperrors.NewNotFoundError("Tag", strings.Join(missing, ","))
	}

	return tags, nil
}

// dedupe returns the distinct values of ids, preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	distinct := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}
	return distinct
}
