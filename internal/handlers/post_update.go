package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dkotenko/blog-api/internal/middlewares"
	"github.com/dkotenko/blog-api/internal/models"
	"github.com/dkotenko/blog-api/internal/services"
)

// PostUpdater defines the interface that the post update service must implement.
type PostUpdater interface {
	Update(ctx context.Context, postID, callerID uuid.UUID, in services.PostUpdateInput, partial bool) (*models.PostDB, error)
}

// PostUpdateRequest represents the JSON body for a full or partial update.
// On PATCH, absent fields keep their stored values.
// swagger:model PostUpdateRequest
type PostUpdateRequest struct {
	// Title
	// example: Updated Title
	Title *string `json:"title"`

	// Content
	// example: Updated content
	Content *string `json:"content"`
}

// NewPostUpdateHandler returns an HTTP handler serving both PUT (full
// update) and PATCH (partial update) on a post. Only the author may
// mutate a post; the ownership condition is part of the update statement.
// @Summary Update a post
// @Description Full (PUT) or partial (PATCH) update of a post owned by the caller.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Param postUpdateRequest body handlers.PostUpdateRequest true "Fields to apply"
// @Success 200 {object} handlers.PostResponse "Updated post"
// @Failure 400 {object} handlers.ValidationErrorResponse "Per-field validation problems"
// @Failure 401 "Missing or invalid access token"
// @Failure 403 {object} handlers.ForbiddenResponse "Caller is not the author"
// @Failure 404 "No post with that id"
// @Router /posts/{id}/ [put]
func NewPostUpdateHandler(svc PostUpdater) http.HandlerFunc {
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

		var req PostUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeInvalidBody(w)
			return
		}

		partial := r.Method == http.MethodPatch

		post, err := svc.Update(r.Context(), postID, callerID, services.PostUpdateInput{
			Title:   req.Title,
			Content: req.Content,
		}, partial)
		if err != nil {
			var vErr *services.ValidationError
			switch {
			case errors.As(err, &vErr):
				writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: vErr.Fields})
			case errors.Is(err, services.ErrPostNotFound):
				w.WriteHeader(http.StatusNotFound)
			case errors.Is(err, services.ErrNotPostAuthor):
				writeJSON(w, http.StatusForbidden, ForbiddenResponse{Detail: msgForbiddenPost})
			default:
				writeInternalError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, newPostResponse(post))
	}
}
