package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/dkotenko/blog-api/internal/models"
)

// PostResponse is the public representation of a post. The author is
// deliberately not exposed, matching the list representation.
// swagger:model PostResponse
type PostResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func newPostResponse(post *models.PostDB) PostResponse {
	return PostResponse{
		ID:        post.PostID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	}
}
