package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogapi/application/ports"
	"blogapi/domain/blog"
	apperrors "blogapi/pkg/errors"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// CategoryRepository implements ports.CategoryRepository over Postgres.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Save inserts the category. A duplicate name surfaces as a conflict
// error, backed by the store's unique constraint.
func (r *CategoryRepository) Save(ctx context.Context, category *blog.Category) error {
	db := executorFrom(ctx, r.pool)

	_, err := db.Exec(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`,
		category.ID, category.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError(fmt.Sprintf("Category with name '%s' already exists", category.Name))
		}
		return apperrors.NewDatabaseError("save category", err)
	}
	return nil
}

// FindByID returns the category for id, or (nil, nil) when absent.
func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*blog.Category, error) {
	db := executorFrom(ctx, r.pool)

	var category blog.Category
	err := db.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE id = $1`, id,
	).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseError("find category", err)
	}
	return &category, nil
}

// FindAll returns all categories ordered by name.
func (r *CategoryRepository) FindAll(ctx context.Context) ([]*blog.Category, error) {
	db := executorFrom(ctx, r.pool)

	rows, err := db.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, apperrors.NewDatabaseError("query categories", err)
	}
	defer rows.Close()

	var categories []*blog.Category
	for rows.Next() {
		var category blog.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, apperrors.NewDatabaseError("scan category", err)
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("query categories", err)
	}
	return categories, nil
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)
