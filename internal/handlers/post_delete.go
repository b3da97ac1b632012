package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dkotenko/blog-api/internal/middlewares"
	"github.com/dkotenko/blog-api/internal/services"
)

// PostDeleter defines the interface that the post deletion service must implement.
type PostDeleter interface {
	Delete(ctx context.Context, postID, callerID uuid.UUID) error
}

// NewPostDeleteHandler returns an HTTP handler deleting a post.
// @Summary Delete a post
// @Description Permanently removes a post owned by the caller.
// @Tags posts
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 204 "Post deleted"
// @Failure 401 "Missing or invalid access token"
// @Failure 403 {object} handlers.ForbiddenResponse "Caller is not the author"
// @Failure 404 "No post with that id"
// @Router /posts/{id}/ [delete]
func NewPostDeleteHandler(svc PostDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		postID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if err := svc.Delete(r.Context(), postID, callerID); err != nil {
			switch {
			case errors.Is(err, services.ErrPostNotFound):
				w.WriteHeader(http.StatusNotFound)
			case errors.Is(err, services.ErrNotPostAuthor):
				writeJSON(w, http.StatusForbidden, ForbiddenResponse{Detail: msgForbiddenPost})
			default:
				writeInternalError(w, err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
