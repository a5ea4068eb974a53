package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is the DDL for the blog tables. Identifier columns are
// 26-character ULIDs; category and tag names carry unique constraints
// so the store enforces global name uniqueness.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id   VARCHAR(26)  PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id   VARCHAR(26)  PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id          VARCHAR(26)  PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		content     TEXT         NOT NULL,
		category_id VARCHAR(26)  NOT NULL REFERENCES categories (id),
		created_at  TIMESTAMPTZ  NOT NULL,
		updated_at  TIMESTAMPTZ  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS post_tags (
		post_id VARCHAR(26) NOT NULL REFERENCES posts (id) ON DELETE CASCADE,
		tag_id  VARCHAR(26) NOT NULL REFERENCES tags (id),
		PRIMARY KEY (post_id, tag_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_category_id ON posts (category_id)`,
}

// EnsureSchema creates the blog tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
