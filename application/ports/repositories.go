// Package ports defines the interfaces between the application layer
// and its infrastructure adapters.
package ports

import (
	"context"

	"blogapi/domain/blog"
)

// PostRepository provides access to the post store. FindByID returns
// (nil, nil) when no post matches; DeleteByID reports whether a row
// was removed.
type PostRepository interface {
	Save(ctx context.Context, post *blog.Post) error
	FindByID(ctx context.Context, id string) (*blog.Post, error)
	FindAll(ctx context.Context) ([]*blog.Post, error)
	Search(ctx context.Context, term string) ([]*blog.Post, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// CategoryRepository provides access to the category store.
type CategoryRepository interface {
	Save(ctx context.Context, category *blog.Category) error
	FindByID(ctx context.Context, id string) (*blog.Category, error)
	FindAll(ctx context.Context) ([]*blog.Category, error)
}

// TagRepository provides access to the tag store. FindByIDs returns
// only the tags that exist; callers detect unresolved identifiers by
// comparing counts.
type TagRepository interface {
	Save(ctx context.Context, tag *blog.Tag) error
	FindByIDs(ctx context.Context, ids []string) ([]blog.Tag, error)
	FindAll(ctx context.Context) ([]blog.Tag, error)
}
