package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"blogapi/application/commands"
	"blogapi/application/ports"
	"blogapi/domain/blog"
	apperrors "blogapi/pkg/errors"
	"blogapi/pkg/identifier"
)

// CacheRegionPosts is the cache region holding posts keyed by id.
const CacheRegionPosts = "posts"

// PostService orchestrates the post lifecycle: reference resolution,
// identifier and timestamp assignment, persistence, and cache upkeep.
type PostService interface {
	Create(ctx context.Context, cmd commands.CreatePostCommand) (*blog.Post, error)
	Update(ctx context.Context, id string, cmd commands.UpdatePostCommand) (*blog.Post, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*blog.Post, bool, error)
	GetAll(ctx context.Context) ([]*blog.Post, error)
	Search(ctx context.Context, term string) ([]*blog.Post, error)
}

type postService struct {
	posts    ports.PostRepository
	resolver *ReferenceResolver
	ids      identifier.Generator
	cache    ports.Cache
	tx       ports.TxManager
	logger   *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(
	posts ports.PostRepository,
	resolver *ReferenceResolver,
	ids identifier.Generator,
	cache ports.Cache,
	tx ports.TxManager,
	logger *zap.Logger,
) PostService {
	return &postService{
		posts:    posts,
		resolver: resolver,
		ids:      ids,
		cache:    cache,
		tx:       tx,
		logger:   logger,
	}
}

// Create resolves the category and tag references, assigns a fresh
// identifier and timestamps, and persists the post. The resolution
// reads and the write share one transaction, so a missing reference
// never leaves a partial write behind.
func (s *postService) Create(ctx context.Context, cmd commands.CreatePostCommand) (*blog.Post, error) {
	var created *blog.Post

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		category, err := s.resolver.ResolveCategory(ctx, cmd.CategoryID)
		if err != nil {
			return err
		}
		tags, err := s.resolver.ResolveTags(ctx, cmd.TagIDs)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		post := &blog.Post{
			ID:        s.ids.NewID(),
			Title:     cmd.Title,
			Content:   cmd.Content,
			Category:  *category,
			Tags:      tags,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := s.posts.Save(ctx, post); err != nil {
			return err
		}

		s.cache.Put(ctx, CacheRegionPosts, post.ID, post)
		created = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Post created",
		zap.String("postID", created.ID),
		zap.String("categoryID", created.Category.ID),
		zap.Strings("tagIDs", created.TagIDs()),
	)
	return created, nil
}

// Update replaces the post's title, content, category, and tags,
// preserving its identifier and original creation timestamp. Reference
// resolution follows the same semantics as Create.
func (s *postService) Update(ctx context.Context, id string, cmd commands.UpdatePostCommand) (*blog.Post, error) {
	var updated *blog.Post

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.posts.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperrors.NewNotFoundError("Post", id)
		}

		category, err := s.resolver.ResolveCategory(ctx, cmd.CategoryID)
		if err != nil {
			return err
		}
		tags, err := s.resolver.ResolveTags(ctx, cmd.TagIDs)
		if err != nil {
			return err
		}

		post := &blog.Post{
			ID:        existing.ID,
			Title:     cmd.Title,
			Content:   cmd.Content,
			Category:  *category,
			Tags:      tags,
			CreatedAt: existing.CreatedAt,
			UpdatedAt: time.Now().UTC(),
		}

		if err := s.posts.Save(ctx, post); err != nil {
			return err
		}

		s.cache.Put(ctx, CacheRegionPosts, post.ID, post)
		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Post updated", zap.String("postID", id))
	return updated, nil
}

// Delete removes the post and its tag associations, evicting its cache
// entry once the transaction commits.
func (s *postService) Delete(ctx context.Context, id string) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		deleted, err := s.posts.DeleteByID(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperrors.NewNotFoundError("Post", id)
		}

		s.cache.Evict(ctx, CacheRegionPosts, id)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Post deleted", zap.String("postID", id))
	return nil
}

// GetByID returns the post for id, or found=false when absent. Reads
// are served from the cache when possible; the store is consulted only
// on a miss.
func (s *postService) GetByID(ctx context.Context, id string) (*blog.Post, bool, error) {
	var post blog.Post

	found, err := s.cache.GetOrLoad(ctx, CacheRegionPosts, id, &post, func(ctx context.Context) (bool, error) {
		stored, err := s.posts.FindByID(ctx, id)
		if err != nil {
			return false, err
		}
		if stored == nil {
			return false, nil
		}
		post = *stored
		return true, nil
	})
	if err != nil || !found {
		return nil, false, err
	}
	return &post, true, nil
}

// GetAll returns all posts.
func (s *postService) GetAll(ctx context.Context) ([]*blog.Post, error) {
	return s.posts.FindAll(ctx)
}

// Search returns posts whose title, content, or category name contains
// term, case-insensitively. Blank-term fallback to GetAll happens at
// the boundary, not here.
func (s *postService) Search(ctx context.Context, term string) ([]*blog.Post, error) {
	return s.posts.Search(ctx, term)
}
