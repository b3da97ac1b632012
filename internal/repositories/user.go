package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/dkotenko/blog-api/internal/logger"
	"github.com/dkotenko/blog-api/internal/models"
)

// ErrUniqueViolation reports a unique-constraint conflict on insert.
// The users table enforces email uniqueness, so the pre-insert existence
// check in the service can never race past the constraint unnoticed.
var ErrUniqueViolation = errors.New("unique constraint violation")

const pgUniqueViolationCode = "23505"

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByEmail returns the user with the given (already normalized) email,
// or nil if no such user exists.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, email, username, first_name, last_name, password_hash,
		       is_active, is_staff, is_superuser, date_joined
		FROM users
		WHERE email = $1
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, email)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID returns the user with the given id, or nil if no such user exists.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT user_id, email, username, first_name, last_name, password_hash,
		       is_active, is_staff, is_superuser, date_joined
		FROM users
		WHERE user_id = $1
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user and returns the stored record.
// A duplicate email surfaces as ErrUniqueViolation.
func (r *UserWriteRepository) Save(ctx context.Context, user models.UserDB) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (email, username, first_name, last_name, password_hash,
		                   is_active, is_staff, is_superuser, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING user_id, email, username, first_name, last_name, password_hash,
		          is_active, is_staff, is_superuser, date_joined
	`
	args := []any{
		user.Email, user.Username, user.FirstName, user.LastName,
		user.PasswordHash, user.IsActive, user.IsStaff, user.IsSuperuser,
	}

	var saved models.UserDB
	err := r.db.GetContext(ctx, &saved, query, args...)

	logger.Log.Infow("user insert",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{user.Email, user.Username},
		"error", err,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
		return nil, ErrUniqueViolation
	}
	if err != nil {
		return nil, err
	}

	return &saved, nil
}
