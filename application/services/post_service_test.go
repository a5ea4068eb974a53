package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blogapi/application/commands"
	"blogapi/domain/blog"
	"blogapi/infrastructure/cache"
	"blogapi/infrastructure/config"
	apperrors "blogapi/pkg/errors"
	"blogapi/pkg/identifier"
)

type postServiceFixture struct {
	service PostService
	posts   *memPostRepository
	store   *memStore
}

func newPostServiceFixture(t *testing.T, categories []blog.Category, tags []blog.Tag) *postServiceFixture {
	t.Helper()

	posts := newMemPostRepository()
	store := newMemStore()
	manager := cache.NewManager(store, config.CacheConfig{
		DefaultTTL:         30 * time.Minute,
		KeyPrefix:          "post",
		EnableTransactions: true,
	}, zap.NewNop())
	resolver := NewReferenceResolver(newMemCategoryRepository(categories...), newMemTagRepository(tags...))

	return &postServiceFixture{
		service: NewPostService(posts, resolver, identifier.NewULIDGenerator(), manager, memTxManager{}, zap.NewNop()),
		posts:   posts,
		store:   store,
	}
}

func defaultFixture(t *testing.T) *postServiceFixture {
	t.Helper()
	return newPostServiceFixture(t,
		[]blog.Category{{ID: "cat-1", Name: "Go"}},
		[]blog.Tag{{ID: "tag-1", Name: "databases"}, {ID: "tag-2", Name: "caching"}},
	)
}

func createCmd() commands.CreatePostCommand {
	return commands.CreatePostCommand{
		Title:      "Caching in layered services",
		Content:    "Reads go through the cache, writes keep it fresh.",
		CategoryID: "cat-1",
		TagIDs:     []string{"tag-1", "tag-2"},
	}
}

func TestCreatePost(t *testing.T) {
	f := defaultFixture(t)

	post, err := f.service.Create(context.Background(), createCmd())
	require.NoError(t, err)

	assert.Len(t, post.ID, 26)
	assert.Equal(t, "Go", post.Category.Name)
	assert.Len(t, post.Tags, 2)
	assert.False(t, post.CreatedAt.IsZero())
	assert.True(t, post.CreatedAt.Equal(post.UpdatedAt))

	stored, err := f.posts.FindByID(context.Background(), post.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, post.Title, stored.Title)
}

func TestCreatePost_CategoryNotFound(t *testing.T) {
	f := defaultFixture(t)

	cmd := createCmd()
	cmd.CategoryID = "missing"

	_, err := f.service.Create(context.Background(), cmd)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "Category not found with id: missing")

	// No partial writes: the failed create leaves nothing behind.
	assert.Zero(t, f.posts.saveCalls)
	assert.Zero(t, f.store.len())
}

func TestCreatePost_TagNotFound(t *testing.T) {
	f := defaultFixture(t)

	cmd := createCmd()
	cmd.TagIDs = []string{"tag-1", "ghost"}

	_, err := f.service.Create(context.Background(), cmd)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "Tag not found with id: ghost")
	assert.Zero(t, f.posts.saveCalls)
}

func TestCreatePost_SaveFailureSkipsCacheWrite(t *testing.T) {
	f := defaultFixture(t)
	f.posts.failSave = assert.AnError

	_, err := f.service.Create(context.Background(), createCmd())
	require.Error(t, err)

	// The cache write was deferred to commit, which never happened.
	assert.Zero(t, f.store.len())
}

func TestUpdatePost(t *testing.T) {
	f := defaultFixture(t)

	created, err := f.service.Create(context.Background(), createCmd())
	require.NoError(t, err)

	updated, err := f.service.Update(context.Background(), created.ID, commands.UpdatePostCommand{
		Title:      "Caching, revisited",
		Content:    "Second edition.",
		CategoryID: "cat-1",
		TagIDs:     []string{"tag-2"},
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	assert.Equal(t, "Caching, revisited", updated.Title)
	assert.Len(t, updated.Tags, 1)
}

func TestUpdatePost_NotFound(t *testing.T) {
	f := defaultFixture(t)

	_, err := f.service.Update(context.Background(), "missing", commands.UpdatePostCommand{
		Title:      "x",
		Content:    "y",
		CategoryID: "cat-1",
		TagIDs:     []string{"tag-1"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "Post not found with id: missing")
}

func TestDeletePost(t *testing.T) {
	f := defaultFixture(t)

	created, err := f.service.Create(context.Background(), createCmd())
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.len())

	require.NoError(t, f.service.Delete(context.Background(), created.ID))

	stored, err := f.posts.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
	assert.Zero(t, f.store.len())
}

func TestDeletePost_NotFound(t *testing.T) {
	f := defaultFixture(t)

	err := f.service.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "Post not found with id: missing")
}

func TestGetByID_ServedFromCache(t *testing.T) {
	f := defaultFixture(t)

	created, err := f.service.Create(context.Background(), createCmd())
	require.NoError(t, err)

	// Create already populated the cache, so reads never touch the store.
	for i := 0; i < 3; i++ {
		post, found, err := f.service.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, created.Title, post.Title)
	}
	assert.Zero(t, f.posts.findByIDHit)
}

func TestGetByID_MissLoadsOnce(t *testing.T) {
	f := defaultFixture(t)

	created, err := f.service.Create(context.Background(), createCmd())
	require.NoError(t, err)

	// Simulate an expired entry.
	require.NoError(t, f.store.Delete(context.Background(), "post:posts:"+created.ID))

	for i := 0; i < 3; i++ {
		_, found, err := f.service.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		require.True(t, found)
	}
	assert.Equal(t, 1, f.posts.findByIDHit)
}

func TestGetByID_NotFound(t *testing.T) {
	f := defaultFixture(t)

	post, found, err := f.service.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, post)
}

func TestGetByID_FreshAfterUpdate(t *testing.T) {
	f := defaultFixture(t)

	created, err := f.service.Create(context.Background(), createCmd())
	require.NoError(t, err)

	first, found, err := f.service.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, found)

	_, err = f.service.Update(context.Background(), created.ID, commands.UpdatePostCommand{
		Title:      "Updated title",
		Content:    first.Content,
		CategoryID: "cat-1",
		TagIDs:     []string{"tag-1"},
	})
	require.NoError(t, err)

	second, found, err := f.service.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Updated title", second.Title)
}
