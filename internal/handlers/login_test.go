package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dkotenko/blog-api/internal/models"
	"github.com/dkotenko/blog-api/internal/services"
)

func TestLoginHandler(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockLoginer)
		expectedCode int
		checkBody    func(t *testing.T, body map[string]any)
	}{
		{
			name: "success",
			body: `{"email":"john@example.com","password":"secret"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "john@example.com", "secret").
					Return(&services.LoginResult{
						User: &models.UserDB{
							UserID:    userID,
							Email:     "john@example.com",
							FirstName: "John",
						},
						AccessToken:  "access123",
						RefreshToken: "refresh123",
					}, nil)
			},
			expectedCode: 200,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Successfully logged in", body["message"])
				data := body["data"].(map[string]any)
				assert.Equal(t, userID.String(), data["id"])
				assert.Equal(t, "john@example.com", data["email"])
				assert.Equal(t, "John", data["first_name"])
				assert.Equal(t, "access123", data["access_token"])
				assert.Equal(t, "refresh123", data["refresh_token"])
			},
		},
		{
			name: "invalid credentials",
			body: `{"email":"john@example.com","password":"wrong"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "john@example.com", "wrong").
					Return(nil, services.ErrInvalidCredentials)
			},
			expectedCode: 400,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Incorrect email or password", body["msg"])
			},
		},
		{
			name: "locked account",
			body: `{"email":"locked@example.com","password":"secret"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "locked@example.com", "secret").
					Return(nil, services.ErrAccountLocked)
			},
			expectedCode: 400,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Your profile is locked. Please contact support", body["msg"])
			},
		},
		{
			name: "missing fields",
			body: `{}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "", "").
					Return(nil, &services.ValidationError{Fields: map[string][]string{
						"email":    {"cannot be blank"},
						"password": {"cannot be blank"},
					}})
			},
			expectedCode: 400,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Invalid data provided", body["msg"])
				errs := body["errors"].(map[string]any)
				assert.Contains(t, errs, "email")
				assert.Contains(t, errs, "password")
			},
		},
		{
			name:         "invalid json",
			body:         `{invalid json}`,
			expectedCode: 400,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Invalid data provided", body["msg"])
			},
		},
		{
			name: "internal server error",
			body: `{"email":"john@example.com","password":"secret"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "john@example.com", "secret").
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

			mockSvc := NewMockLoginer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewLoginHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/login/", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var body map[string]any
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			tt.checkBody(t, body)
		})
	}
}
