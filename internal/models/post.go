package models

import (
	"time"

	"github.com/google/uuid"
)

// PostDB represents a post record in the database.
// AuthorID references the creating user and is immutable after insert:
// no update statement in the repository layer touches it.
type PostDB struct {
	PostID    uuid.UUID `json:"id" db:"post_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	IsActive  bool      `json:"is_active" db:"is_active"`
}
