package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapi/domain/blog"
	apperrors "blogapi/pkg/errors"
	"blogapi/pkg/identifier"
)

// poolForTest connects to the database named by POSTGRES_TEST_DSN,
// skipping the test when the variable is unset or the database is
// unreachable.
func poolForTest(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := NewPool(ctx, dsn)
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	t.Cleanup(pool.Close)

	require.NoError(t, EnsureSchema(ctx, pool))
	return pool
}

type repos struct {
	pool       *pgxpool.Pool
	posts      *PostRepository
	categories *CategoryRepository
	tags       *TagRepository
	ids        *identifier.ULIDGenerator
}

func newRepos(t *testing.T) *repos {
	pool := poolForTest(t)
	return &repos{
		pool:       pool,
		posts:      NewPostRepository(pool),
		categories: NewCategoryRepository(pool),
		tags:       NewTagRepository(pool),
		ids:        identifier.NewULIDGenerator(),
	}
}

// uniqueName avoids collisions across runs against a shared database.
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func (r *repos) seedCategory(t *testing.T, ctx context.Context) blog.Category {
	t.Helper()
	category := blog.Category{ID: r.ids.NewID(), Name: uniqueName("category")}
	require.NoError(t, r.categories.Save(ctx, &category))
	return category
}

func (r *repos) seedTag(t *testing.T, ctx context.Context) blog.Tag {
	t.Helper()
	tag := blog.Tag{ID: r.ids.NewID(), Name: uniqueName("tag")}
	require.NoError(t, r.tags.Save(ctx, &tag))
	return tag
}

func (r *repos) seedPost(t *testing.T, ctx context.Context, title, content string) *blog.Post {
	t.Helper()
	category := r.seedCategory(t, ctx)
	tag := r.seedTag(t, ctx)

	now := time.Now().UTC().Truncate(time.Microsecond)
	post := &blog.Post{
		ID:        r.ids.NewID(),
		Title:     title,
		Content:   content,
		Category:  category,
		Tags:      []blog.Tag{tag},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, r.posts.Save(ctx, post))
	t.Cleanup(func() { _, _ = r.posts.DeleteByID(context.Background(), post.ID) })
	return post
}

func TestPostRepository_SaveAndFind(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	post := r.seedPost(t, ctx, uniqueName("title"), "body text")

	found, err := r.posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, post.Title, found.Title)
	assert.Equal(t, post.Category.Name, found.Category.Name)
	require.Len(t, found.Tags, 1)
	assert.Equal(t, post.Tags[0].Name, found.Tags[0].Name)
	assert.True(t, post.CreatedAt.Equal(found.CreatedAt))
}

func TestPostRepository_FindByID_Absent(t *testing.T) {
	r := newRepos(t)

	found, err := r.posts.FindByID(context.Background(), r.ids.NewID())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPostRepository_SaveReplacesTags(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	post := r.seedPost(t, ctx, uniqueName("title"), "body")
	newTag := r.seedTag(t, ctx)

	post.Tags = []blog.Tag{newTag}
	require.NoError(t, r.posts.Save(ctx, post))

	found, err := r.posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Len(t, found.Tags, 1)
	assert.Equal(t, newTag.ID, found.Tags[0].ID)
}

func TestPostRepository_Search(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	marker := uniqueName("needle")
	post := r.seedPost(t, ctx, "Title with "+marker, "plain body")

	matched := func(results []*blog.Post) bool {
		for _, p := range results {
			if p.ID == post.ID {
				return true
			}
		}
		return false
	}

	// Case-insensitive match on the title.
	results, err := r.posts.Search(ctx, marker)
	require.NoError(t, err)
	assert.True(t, matched(results))

	// Match via the category name.
	results, err = r.posts.Search(ctx, post.Category.Name)
	require.NoError(t, err)
	assert.True(t, matched(results))

	// No match.
	results, err = r.posts.Search(ctx, uniqueName("absent"))
	require.NoError(t, err)
	assert.False(t, matched(results))
}

func TestPostRepository_DeleteByID(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	post := r.seedPost(t, ctx, uniqueName("title"), "body")

	deleted, err := r.posts.DeleteByID(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err := r.posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	deleted, err = r.posts.DeleteByID(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCategoryRepository_DuplicateName(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	category := r.seedCategory(t, ctx)

	dup := blog.Category{ID: r.ids.NewID(), Name: category.Name}
	err := r.categories.Save(ctx, &dup)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestTagRepository_FindByIDs(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	first := r.seedTag(t, ctx)
	second := r.seedTag(t, ctx)

	tags, err := r.tags.FindByIDs(ctx, []string{first.ID, second.ID, r.ids.NewID()})
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestTxManager_RollbackDiscardsWrites(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	tx := NewTxManager(r.pool)

	category := blog.Category{ID: r.ids.NewID(), Name: uniqueName("category")}
	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := r.categories.Save(ctx, &category); err != nil {
			return err
		}
		return fmt.Errorf("force rollback")
	})
	require.Error(t, err)

	found, err := r.categories.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}
