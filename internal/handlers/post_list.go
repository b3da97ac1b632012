package handlers

import (
	"context"
	"net/http"

	"github.com/dkotenko/blog-api/internal/models"
)

// PostLister defines the interface that the post listing service must implement.
type PostLister interface {
	List(ctx context.Context) ([]models.PostDB, error)
}

// NewPostListHandler returns an HTTP handler listing all posts.
// @Summary List posts
// @Description Returns all posts to any caller, authenticated or not.
// @Tags posts
// @Produce json
// @Success 200 {array} handlers.PostResponse "All posts"
// @Failure 500 {object} handlers.MessageResponse "Internal server error"
// @Router /posts/ [get]
func NewPostListHandler(svc PostLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.List(r.Context())
		if err != nil {
			writeInternalError(w, err)
			return
		}

		resp := make([]PostResponse, 0, len(posts))
		for i := range posts {
			resp = append(resp, newPostResponse(&posts[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
