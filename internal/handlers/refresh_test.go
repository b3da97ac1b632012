package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/dkotenko/blog-api/internal/services"
)

func TestRefreshHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockRefresher)
		expectedCode int
		checkBody    func(t *testing.T, body map[string]any)
	}{
		{
			name: "success",
			body: `{"refresh":"refresh-token"}`,
			mockSetup: func(m *MockRefresher) {
				m.EXPECT().
					Refresh(gomock.Any(), "refresh-token").
					Return("new-access", "new-refresh", nil)
			},
			expectedCode: 200,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "new-access", body["access_token"])
				assert.Equal(t, "new-refresh", body["refresh_token"])
			},
		},
		{
			name: "invalid refresh token",
			body: `{"refresh":"garbage"}`,
			mockSetup: func(m *MockRefresher) {
				m.EXPECT().
					Refresh(gomock.Any(), "garbage").
					Return("", "", services.ErrInvalidRefreshToken)
			},
			expectedCode: 401,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Invalid refresh token", body["error"])
			},
		},
		{
			name:         "invalid json",
			body:         `{invalid json}`,
			expectedCode: 401,
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Invalid refresh token", body["error"])
			},
		},
		{
			name: "internal server error",
			body: `{"refresh":"refresh-token"}`,
			mockSetup: func(m *MockRefresher) {
				m.EXPECT().
					Refresh(gomock.Any(), "refresh-token").
					Return("", "", errors.New("redis down"))
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

			mockSvc := NewMockRefresher(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRefreshHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/token/refresh/", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var body map[string]any
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			tt.checkBody(t, body)
		})
	}
}
