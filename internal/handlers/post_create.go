package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dkotenko/blog-api/internal/middlewares"
	"github.com/dkotenko/blog-api/internal/models"
	"github.com/dkotenko/blog-api/internal/services"
)

// PostCreator defines the interface that the post creation service must implement.
type PostCreator interface {
	Create(ctx context.Context, authorID uuid.UUID, title, content string) (*models.PostDB, error)
}

// PostCreateRequest represents the JSON body for post creation.
// There is no author field: the author is always the authenticated caller.
// swagger:model PostCreateRequest
type PostCreateRequest struct {
	// Title
	// required: true
	// example: New Post
	Title string `json:"title"`

	// Content
	// required: true
	// example: This is the content of the new post
	Content string `json:"content"`
}

// NewPostCreateHandler returns an HTTP handler for post creation.
// @Summary Create a post
// @Description Creates a post authored by the authenticated caller. Any client-supplied author is ignored.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postCreateRequest body handlers.PostCreateRequest true "Post creation request"
// @Success 201 {object} handlers.PostResponse "Post created"
// @Failure 400 {object} handlers.ValidationErrorResponse "Per-field validation problems"
// @Failure 401 "Missing or invalid access token"
// @Router /post/create/ [post]
func NewPostCreateHandler(svc PostCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req PostCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeInvalidBody(w)
			return
		}

		post, err := svc.Create(r.Context(), callerID, req.Title, req.Content)
		if err != nil {
			var vErr *services.ValidationError
			if errors.As(err, &vErr) {
				writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: vErr.Fields})
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, newPostResponse(post))
	}
}
