package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dkotenko/blog-api/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// LoginData carries the authenticated identity and its token pair
// swagger:model LoginData
type LoginData struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// Success message
	// example: Successfully logged in
	Message string `json:"message"`

	Data LoginData `json:"data"`
}

// LoginErrorResponse represents an error response for login
// swagger:model LoginErrorResponse
type LoginErrorResponse struct {
	// Error message
	// example: Incorrect email or password
	Msg string `json:"msg"`

	// Per-field problems, present on malformed input only
	Errors map[string][]string `json:"errors,omitempty"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate a user and return an access/refresh token pair. Locked accounts are reported as locked regardless of password correctness; unknown email and wrong password produce the same generic error.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} handlers.LoginResponse "Token pair returned"
// @Failure 400 {object} handlers.LoginErrorResponse "Invalid input, wrong credentials or locked account"
// @Failure 500 {object} handlers.MessageResponse "Internal server error"
// @Router /login/ [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, LoginErrorResponse{
				Msg: "Invalid data provided",
			})
			return
		}

		result, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			var vErr *services.ValidationError
			switch {
			case errors.As(err, &vErr):
				writeJSON(w, http.StatusBadRequest, LoginErrorResponse{
					Msg:    "Invalid data provided",
					Errors: vErr.Fields,
				})
			case errors.Is(err, services.ErrAccountLocked):
				writeJSON(w, http.StatusBadRequest, LoginErrorResponse{
					Msg: "Your profile is locked. Please contact support",
				})
			case errors.Is(err, services.ErrInvalidCredentials):
				writeJSON(w, http.StatusBadRequest, LoginErrorResponse{
					Msg: "Incorrect email or password",
				})
			default:
				writeInternalError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			Message: "Successfully logged in",
			Data: LoginData{
				ID:           result.User.UserID,
				Email:        result.User.Email,
				FirstName:    result.User.FirstName,
				AccessToken:  result.AccessToken,
				RefreshToken: result.RefreshToken,
			},
		})
	}
}
