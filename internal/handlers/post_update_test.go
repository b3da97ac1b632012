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

	"github.com/dkotenko/blog-api/internal/middlewares"
	"github.com/dkotenko/blog-api/internal/models"
	"github.com/dkotenko/blog-api/internal/services"
)

func TestPostUpdateHandler(t *testing.T) {
	callerID := uuid.New()
	postID := uuid.New()

	newRequest := func(method, body string) *http.Request {
		req := httptest.NewRequest(method, "/posts/"+postID.String()+"/", bytes.NewBufferString(body))
		req = req.WithContext(middlewares.WithUserID(req.Context(), callerID))
		return withRouteID(req, postID.String())
	}

	t.Run("full update via PUT", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		title := "New title"
		content := "New content"

		mockSvc := NewMockPostUpdater(ctrl)
		mockSvc.EXPECT().
			Update(gomock.Any(), postID, callerID, services.PostUpdateInput{
				Title:   &title,
				Content: &content,
			}, false).
			Return(&models.PostDB{
				PostID:    postID,
				Title:     title,
				Content:   content,
				AuthorID:  callerID,
				CreatedAt: time.Now(),
				IsActive:  true,
			}, nil)

		handler := NewPostUpdateHandler(mockSvc)

		rr := httptest.NewRecorder()
		handler(rr, newRequest(http.MethodPut, `{"title":"New title","content":"New content"}`))

		assert.Equal(t, 200, rr.Code)

		var body map[string]any
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "New title", body["title"])
		assert.Equal(t, "New content", body["content"])
	})

	t.Run("partial update via PATCH", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		title := "Only the title"

		mockSvc := NewMockPostUpdater(ctrl)
		mockSvc.EXPECT().
			Update(gomock.Any(), postID, callerID, services.PostUpdateInput{
				Title:   &title,
				Content: nil,
			}, true).
			Return(&models.PostDB{
				PostID:    postID,
				Title:     title,
				Content:   "kept",
				AuthorID:  callerID,
				CreatedAt: time.Now(),
				IsActive:  true,
			}, nil)

		handler := NewPostUpdateHandler(mockSvc)

		rr := httptest.NewRecorder()
		handler(rr, newRequest(http.MethodPatch, `{"title":"Only the title"}`))

		assert.Equal(t, 200, rr.Code)

		var body map[string]any
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "Only the title", body["title"])
		assert.Equal(t, "kept", body["content"])
	})

	t.Run("validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockSvc := NewMockPostUpdater(ctrl)
		mockSvc.EXPECT().
			Update(gomock.Any(), postID, callerID, gomock.Any(), false).
			Return(nil, &services.ValidationError{Fields: map[string][]string{
				"content": {"cannot be blank"},
			}})

		handler := NewPostUpdateHandler(mockSvc)

		rr := httptest.NewRecorder()
		handler(rr, newRequest(http.MethodPut, `{"title":"New title"}`))

		assert.Equal(t, 400, rr.Code)

		var body map[string]any
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		errs := body["errors"].(map[string]any)
		assert.Contains(t, errs, "content")
	})

	t.Run("not the author", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockSvc := NewMockPostUpdater(ctrl)
		mockSvc.EXPECT().
			Update(gomock.Any(), postID, callerID, gomock.Any(), false).
			Return(nil, services.ErrNotPostAuthor)

		handler := NewPostUpdateHandler(mockSvc)

		rr := httptest.NewRecorder()
		handler(rr, newRequest(http.MethodPut, `{"title":"T","content":"C"}`))

		assert.Equal(t, 403, rr.Code)

		var body map[string]any
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "You do not have permission to modify this post", body["detail"])
	})

	t.Run("post not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockSvc := NewMockPostUpdater(ctrl)
		mockSvc.EXPECT().
			Update(gomock.Any(), postID, callerID, gomock.Any(), false).
			Return(nil, services.ErrPostNotFound)

		handler := NewPostUpdateHandler(mockSvc)

		rr := httptest.NewRecorder()
		handler(rr, newRequest(http.MethodPut, `{"title":"T","content":"C"}`))

		assert.Equal(t, 404, rr.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler := NewPostUpdateHandler(NewMockPostUpdater(ctrl))

		req := httptest.NewRequest(http.MethodPut, "/posts/not-a-uuid/", bytes.NewBufferString(`{"title":"T","content":"C"}`))
		req = req.WithContext(middlewares.WithUserID(req.Context(), callerID))
		req = withRouteID(req, "not-a-uuid")

		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, 404, rr.Code)
	})

	t.Run("missing identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler := NewPostUpdateHandler(NewMockPostUpdater(ctrl))

		req := withRouteID(httptest.NewRequest(http.MethodPut, "/posts/"+postID.String()+"/", bytes.NewBufferString(`{"title":"T","content":"C"}`)), postID.String())
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, 401, rr.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler := NewPostUpdateHandler(NewMockPostUpdater(ctrl))

		rr := httptest.NewRecorder()
		handler(rr, newRequest(http.MethodPut, `{invalid json}`))

		assert.Equal(t, 400, rr.Code)
	})

	t.Run("internal server error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockSvc := NewMockPostUpdater(ctrl)
		mockSvc.EXPECT().
			Update(gomock.Any(), postID, callerID, gomock.Any(), false).
			Return(nil, errors.New("database failure"))

		handler := NewPostUpdateHandler(mockSvc)

		rr := httptest.NewRecorder()
		handler(rr, newRequest(http.MethodPut, `{"title":"T","content":"C"}`))

		assert.Equal(t, 500, rr.Code)
	})
}
