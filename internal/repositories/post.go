package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dkotenko/blog-api/internal/logger"
	"github.com/dkotenko/blog-api/internal/models"
)

type PostReadRepository struct {
	db *sqlx.DB
}

func NewPostReadRepository(db *sqlx.DB) *PostReadRepository {
	return &PostReadRepository{db: db}
}

// List returns all posts, newest first.
func (r *PostReadRepository) List(ctx context.Context) ([]models.PostDB, error) {
	const query = `
		SELECT post_id, title, content, author_id, created_at, is_active
		FROM posts
		ORDER BY created_at DESC
	`

	posts := make([]models.PostDB, 0)
	err := r.db.SelectContext(ctx, &posts, query)

	logger.Log.Infow("post query",
		"query", strings.Join(strings.Fields(query), " "),
		"count", len(posts),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return posts, nil
}

// GetByID returns the post with the given id, or nil if no such post exists.
func (r *PostReadRepository) GetByID(ctx context.Context, postID uuid.UUID) (*models.PostDB, error) {
	const query = `
		SELECT post_id, title, content, author_id, created_at, is_active
		FROM posts
		WHERE post_id = $1
		LIMIT 1
	`

	var post models.PostDB
	err := r.db.GetContext(ctx, &post, query, postID)

	logger.Log.Infow("post query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{postID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

type PostWriteRepository struct {
	db *sqlx.DB
}

func NewPostWriteRepository(db *sqlx.DB) *PostWriteRepository {
	return &PostWriteRepository{db: db}
}

// Save inserts a new post and returns the stored record.
func (r *PostWriteRepository) Save(ctx context.Context, post models.PostDB) (*models.PostDB, error) {
	const query = `
		INSERT INTO posts (title, content, author_id, created_at, is_active)
		VALUES ($1, $2, $3, NOW(), $4)
		RETURNING post_id, title, content, author_id, created_at, is_active
	`
	args := []any{post.Title, post.Content, post.AuthorID, post.IsActive}

	var saved models.PostDB
	err := r.db.GetContext(ctx, &saved, query, args...)

	logger.Log.Infow("post insert",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &saved, nil
}

// UpdateByAuthor applies the supplied fields to a post in a single
// owner-conditional statement. A nil field keeps the stored value.
// Returns the number of rows affected: 0 means the post does not exist
// or authorID is not its author.
func (r *PostWriteRepository) UpdateByAuthor(ctx context.Context, postID, authorID uuid.UUID, title, content *string) (int64, error) {
	const query = `
		UPDATE posts
		SET title = COALESCE($3, title),
		    content = COALESCE($4, content)
		WHERE post_id = $1 AND author_id = $2
	`
	args := []any{postID, authorID, title, content}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("post update",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"rows_affected", rowsAffected,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return rowsAffected, nil
}

// DeleteByAuthor removes a post in a single owner-conditional statement.
// Returns the number of rows affected: 0 means the post does not exist
// or authorID is not its author.
func (r *PostWriteRepository) DeleteByAuthor(ctx context.Context, postID, authorID uuid.UUID) (int64, error) {
	const query = `
		DELETE FROM posts
		WHERE post_id = $1 AND author_id = $2
	`
	args := []any{postID, authorID}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("post delete",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"rows_affected", rowsAffected,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return rowsAffected, nil
}
