package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dkotenko/blog-api/internal/models"
	"github.com/dkotenko/blog-api/internal/services"
)

// PostGetter defines the interface that the post retrieval service must implement.
type PostGetter interface {
	Get(ctx context.Context, postID uuid.UUID) (*models.PostDB, error)
}

// NewPostGetHandler returns an HTTP handler retrieving a single post.
// @Summary Retrieve a post
// @Description Returns a post by id to any authenticated caller.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {object} handlers.PostResponse "The post"
// @Failure 401 "Missing or invalid access token"
// @Failure 404 "No post with that id"
// @Router /posts/{id}/ [get]
func NewPostGetHandler(svc PostGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			// A malformed id matches no post.
			w.WriteHeader(http.StatusNotFound)
			return
		}

		post, err := svc.Get(r.Context(), postID)
		if err != nil {
			if errors.Is(err, services.ErrPostNotFound) {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newPostResponse(post))
	}
}
