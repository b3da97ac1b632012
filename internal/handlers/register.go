package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dkotenko/blog-api/internal/models"
	"github.com/dkotenko/blog-api/internal/services"
)

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.UserDB, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email"`

	// Username
	// required: true
	// example: john_doe
	Username string `json:"username"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`

	// First name
	// example: John
	FirstName string `json:"first_name"`

	// Last name
	// example: Doe
	LastName string `json:"last_name"`
}

// RegisterResponse is the public representation of the created user
// swagger:model RegisterResponse
type RegisterResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account. Ensures unique email. Password is hashed before storing and never returned.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.RegisterResponse "User successfully registered"
// @Failure 400 {object} handlers.ValidationErrorResponse "Per-field validation problems"
// @Router /register/ [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeInvalidBody(w)
			return
		}

		user, err := svc.Register(r.Context(), services.RegisterInput{
			Email:     req.Email,
			Username:  req.Username,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if err != nil {
			var vErr *services.ValidationError
			if errors.As(err, &vErr) {
				writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: vErr.Fields})
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{
			ID:         user.UserID,
			Email:      user.Email,
			Username:   user.Username,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			DateJoined: user.DateJoined,
		})
	}
}
