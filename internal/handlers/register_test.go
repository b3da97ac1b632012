package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dkotenko/blog-api/internal/models"
	"github.com/dkotenko/blog-api/internal/services"
)

func TestRegisterHandler(t *testing.T) {
	userID := uuid.New()
	joined := time.Now().UTC().Truncate(time.Second)

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockRegisterer)
		expectedCode int
		checkBody    func(t *testing.T, body map[string]any)
	}{
		{
			name: "success",
			body: `{"email":"john@example.com","username":"john","password":"secret","first_name":"John","last_name":"Doe"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), services.RegisterInput{
						Email:     "john@example.com",
						Username:  "john",
						Password:  "secret",
						FirstName: "John",
						LastName:  "Doe",
					}).
					Return(&models.UserDB{
						UserID:     userID,
						Email:      "john@example.com",
						Username:   "john",
						FirstName:  "John",
						LastName:   "Doe",
						IsActive:   true,
						DateJoined: joined,
					}, nil)
			},
			expectedCode: 201,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, userID.String(), body["id"])
				assert.Equal(t, "john@example.com", body["email"])
				assert.Equal(t, "john", body["username"])
				// The password hash must never be serialized.
				assert.NotContains(t, body, "password")
				assert.NotContains(t, body, "password_hash")
			},
		},
		{
			name: "duplicate email",
			body: `{"email":"john@example.com","username":"john","password":"secret"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), gomock.Any()).
					Return(nil, &services.ValidationError{Fields: map[string][]string{
						"email": {"user with this email already exists"},
					}})
			},
			expectedCode: 400,
			checkBody: func(t *testing.T, body map[string]any) {
				errs := body["errors"].(map[string]any)
				assert.Contains(t, errs, "email")
			},
		},
		{
			name:         "invalid json",
			body:         `{invalid json}`,
			expectedCode: 400,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body, "errors")
			},
		},
		{
			name: "internal server error",
			body: `{"email":"bob@example.com","username":"bob","password":"secret"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database failure"))
			},
			expectedCode: 500,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Internal server error", body["msg"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRegisterHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/register/", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var body map[string]any
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			tt.checkBody(t, body)
		})
	}
}
