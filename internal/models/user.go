package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database.
// PasswordHash is a bcrypt hash and is never serialized.
// Accounts are locked by flipping IsActive to false; users are never hard-deleted.
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	IsStaff      bool      `json:"is_staff" db:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser" db:"is_superuser"`
	DateJoined   time.Time `json:"date_joined" db:"date_joined"`
}
