package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogapi/application/ports"
	"blogapi/domain/blog"
	apperrors "blogapi/pkg/errors"
)

// PostRepository implements ports.PostRepository over Postgres.
type PostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository creates a new post repository
func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const selectPostBase = `
	SELECT p.id, p.title, p.content, p.created_at, p.updated_at, c.id, c.name
	FROM posts p
	JOIN categories c ON c.id = p.category_id`

// Save upserts the post row and replaces its tag associations.
func (r *PostRepository) Save(ctx context.Context, post *blog.Post) error {
	db := executorFrom(ctx, r.pool)

	_, err := db.Exec(ctx, `
		INSERT INTO posts (id, title, content, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			category_id = EXCLUDED.category_id,
			updated_at = EXCLUDED.updated_at`,
		post.ID, post.Title, post.Content, post.Category.ID, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewDatabaseError("save post", err)
	}

	if _, err := db.Exec(ctx, `DELETE FROM post_tags WHERE post_id = $1`, post.ID); err != nil {
		return apperrors.NewDatabaseError("clear post tags", err)
	}
	for _, tag := range post.Tags {
		if _, err := db.Exec(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`,
			post.ID, tag.ID,
		); err != nil {
			return apperrors.NewDatabaseError("save post tags", err)
		}
	}

	return nil
}

// FindByID loads the post with its category and tags. Returns
// (nil, nil) when no post matches.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*blog.Post, error) {
	db := executorFrom(ctx, r.pool)

	var post blog.Post
	err := db.QueryRow(ctx, selectPostBase+` WHERE p.id = $1`, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.CreatedAt, &post.UpdatedAt,
		&post.Category.ID, &post.Category.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseError("find post", err)
	}

	tags, err := r.loadTags(ctx, []string{post.ID})
	if err != nil {
		return nil, err
	}
	post.Tags = tags[post.ID]

	return &post, nil
}

// FindAll returns all posts in insertion order.
func (r *PostRepository) FindAll(ctx context.Context) ([]*blog.Post, error) {
	return r.queryPosts(ctx, selectPostBase+` ORDER BY p.id`)
}

// Search returns posts whose title, content, or category name contains
// term, case-insensitively.
func (r *PostRepository) Search(ctx context.Context, term string) ([]*blog.Post, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	return r.queryPosts(ctx, selectPostBase+`
		WHERE LOWER(p.title) LIKE $1
		   OR LOWER(p.content) LIKE $1
		   OR LOWER(c.name) LIKE $1
		ORDER BY p.id`, pattern)
}

// DeleteByID removes the post and its tag associations, reporting
// whether a post row existed.
func (r *PostRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	db := executorFrom(ctx, r.pool)

	if _, err := db.Exec(ctx, `DELETE FROM post_tags WHERE post_id = $1`, id); err != nil {
		return false, apperrors.NewDatabaseError("delete post tags", err)
	}

	tag, err := db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, apperrors.NewDatabaseError("delete post", err)
	}
	return tag.RowsAffected() > 0, nil
}

// queryPosts runs a post query and batch-loads the tags for every
// returned post in a single follow-up query.
func (r *PostRepository) queryPosts(ctx context.Context, sql string, args ...any) ([]*blog.Post, error) {
	db := executorFrom(ctx, r.pool)

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewDatabaseError("query posts", err)
	}
	defer rows.Close()

	var posts []*blog.Post
	var ids []string
	for rows.Next() {
		var post blog.Post
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.CreatedAt, &post.UpdatedAt,
			&post.Category.ID, &post.Category.Name,
		); err != nil {
			return nil, apperrors.NewDatabaseError("scan post", err)
		}
		posts = append(posts, &post)
		ids = append(ids, post.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("query posts", err)
	}

	if len(posts) == 0 {
		return posts, nil
	}

	tagsByPost, err := r.loadTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		post.Tags = tagsByPost[post.ID]
	}

	return posts, nil
}

// loadTags returns the tags of every post in ids, keyed by post id.
func (r *PostRepository) loadTags(ctx context.Context, ids []string) (map[string][]blog.Tag, error) {
	db := executorFrom(ctx, r.pool)

	rows, err := db.Query(ctx, `
		SELECT pt.post_id, t.id, t.name
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.name`, ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load post tags", err)
	}
	defer rows.Close()

	tagsByPost := make(map[string][]blog.Tag, len(ids))
	for rows.Next() {
		var postID string
		var tag blog.Tag
		if err := rows.Scan(&postID, &tag.ID, &tag.Name); err != nil {
			return nil, apperrors.NewDatabaseError("scan post tag", err)
		}
		tagsByPost[postID] = append(tagsByPost[postID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("load post tags", err)
	}

	return tagsByPost, nil
}

var _ ports.PostRepository = (*PostRepository)(nil)
