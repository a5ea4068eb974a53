package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogapi/application/ports"
	"blogapi/domain/blog"
	apperrors "blogapi/pkg/errors"
)

// TagRepository implements ports.TagRepository over Postgres.
type TagRepository struct {
	pool *pgxpool.Pool
}

// NewTagRepository creates a new tag repository
func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

// Save inserts the tag, mapping a duplicate name to a conflict error.
func (r *TagRepository) Save(ctx context.Context, tag *blog.Tag) error {
	db := executorFrom(ctx, r.pool)

	_, err := db.Exec(ctx,
		`INSERT INTO tags (id, name) VALUES ($1, $2)`,
		tag.ID, tag.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError(fmt.Sprintf("Tag with name '%s' already exists", tag.Name))
		}
		return apperrors.NewDatabaseError("save tag", err)
	}
	return nil
}

// FindByIDs returns the tags matching ids, ordered by name. Missing
// identifiers are simply absent from the result; the caller compares
// counts to detect them.
func (r *TagRepository) FindByIDs(ctx context.Context, ids []string) ([]blog.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db := executorFrom(ctx, r.pool)

	rows, err := db.Query(ctx,
		`SELECT id, name FROM tags WHERE id = ANY($1) ORDER BY name`, ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError("query tags", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// FindAll returns all tags ordered by name.
func (r *TagRepository) FindAll(ctx context.Context) ([]blog.Tag, error) {
	db := executorFrom(ctx, r.pool)

	rows, err := db.Query(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, apperrors.NewDatabaseError("query tags", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

func scanTags(rows pgx.Rows) ([]blog.Tag, error) {
	var tags []blog.Tag
	for rows.Next() {
		var tag blog.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, apperrors.NewDatabaseError("scan tag", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("query tags", err)
	}
	return tags, nil
}

var _ ports.TagRepository = (*TagRepository)(nil)
