package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dkotenko/blog-api/internal/services"
)

// Refresher defines the interface that the token refresh service must implement.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (access string, refresh string, err error)
}

// RefreshRequest represents the JSON body for token refresh
// swagger:model RefreshRequest
type RefreshRequest struct {
	// Refresh token
	// required: true
	Refresh string `json:"refresh"`
}

// RefreshResponse represents a successful token refresh response
// swagger:model RefreshResponse
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshErrorResponse represents an error response for token refresh
// swagger:model RefreshErrorResponse
type RefreshErrorResponse struct {
	// Error message
	// example: Invalid refresh token
	Error string `json:"error"`
}

// NewRefreshHandler returns an HTTP handler for token refresh.
// @Summary Refresh token pair
// @Description Exchange a valid refresh token for a new access/refresh pair. The presented refresh token is revoked (rotation); replayed, expired or locked-account tokens are rejected.
// @Tags auth
// @Accept json
// @Produce json
// @Param refreshRequest body handlers.RefreshRequest true "Refresh request"
// @Success 200 {object} handlers.RefreshResponse "New token pair returned"
// @Failure 401 {object} handlers.RefreshErrorResponse "Invalid, expired or replayed refresh token"
// @Failure 500 {object} handlers.MessageResponse "Internal server error"
// @Router /token/refresh/ [post]
func NewRefreshHandler(svc Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusUnauthorized, RefreshErrorResponse{
				Error: "Invalid refresh token",
			})
			return
		}

		access, refresh, err := svc.Refresh(r.Context(), req.Refresh)
		if err != nil {
			if errors.Is(err, services.ErrInvalidRefreshToken) {
				writeJSON(w, http.StatusUnauthorized, RefreshErrorResponse{
					Error: "Invalid refresh token",
				})
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, RefreshResponse{
			AccessToken:  access,
			RefreshToken: refresh,
		})
	}
}
