package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dkotenko/blog-api/internal/logger"
)

// ValidationErrorResponse maps field names to lists of problems
// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	// Field problems
	// example: {"email": ["user with this email already exists"]}
	Errors map[string][]string `json:"errors"`
}

// MessageResponse is a generic message envelope
// swagger:model MessageResponse
type MessageResponse struct {
	// Message
	// example: Internal server error
	Msg string `json:"msg"`
}

// ForbiddenResponse is the body of a 403 on non-owner mutation
// swagger:model ForbiddenResponse
type ForbiddenResponse struct {
	// Detail
	// example: You do not have permission to modify this post
	Detail string `json:"detail"`
}

const msgForbiddenPost = "You do not have permission to modify this post"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeInternalError(w http.ResponseWriter, err error) {
	logger.Log.Errorw("internal server error", "err", err)
	writeJSON(w, http.StatusInternalServerError, MessageResponse{Msg: "Internal server error"})
}

func writeInvalidBody(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Errors: map[string][]string{"non_field_errors": {"invalid request body"}},
	})
}
