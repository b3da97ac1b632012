package services

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/dkotenko/blog-api/internal/logger"
	"github.com/dkotenko/blog-api/internal/models"
)

// Error variables
var (
	ErrPostNotFound  = errors.New("post does not exist")
	ErrNotPostAuthor = errors.New("caller is not the post author")
)

// PostReader defines read-only operations for posts.
type PostReader interface {
	List(ctx context.Context) ([]models.PostDB, error)
	GetByID(ctx context.Context, postID uuid.UUID) (*models.PostDB, error)
}

// PostWriter defines write operations for posts. Update and delete are
// owner-conditional single statements; zero rows affected means the post
// is missing or owned by someone else.
type PostWriter interface {
	Save(ctx context.Context, post models.PostDB) (*models.PostDB, error)
	UpdateByAuthor(ctx context.Context, postID, authorID uuid.UUID, title, content *string) (int64, error)
	DeleteByAuthor(ctx context.Context, postID, authorID uuid.UUID) (int64, error)
}

// PostUpdateInput carries the fields of a full or partial update.
// A nil field is "not supplied" and keeps the stored value on PATCH.
type PostUpdateInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// PostService handles post CRUD with ownership enforcement.
type PostService struct {
	reader PostReader
	writer PostWriter
}

// NewPostService creates a new PostService instance.
func NewPostService(reader PostReader, writer PostWriter) *PostService {
	return &PostService{
		reader: reader,
		writer: writer,
	}
}

// Create persists a new post. The author is always the authenticated
// caller; nothing from the request body can override it.
func (svc *PostService) Create(ctx context.Context, authorID uuid.UUID, title, content string) (*models.PostDB, error) {
	err := validation.Errors{
		"title":   validation.Validate(title, validation.Required),
		"content": validation.Validate(content, validation.Required),
	}.Filter()
	if err != nil {
		return nil, asValidationError(err)
	}

	post, err := svc.writer.Save(ctx, models.PostDB{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
		IsActive: true,
	})
	if err != nil {
		logger.Log.Errorw("failed to save post", "err", err)
		return nil, err
	}

	return post, nil
}

// List returns all posts to any caller.
func (svc *PostService) List(ctx context.Context) ([]models.PostDB, error) {
	posts, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list posts", "err", err)
		return nil, err
	}
	return posts, nil
}

// Get returns a post by id.
func (svc *PostService) Get(ctx context.Context, postID uuid.UUID) (*models.PostDB, error) {
	post, err := svc.reader.GetByID(ctx, postID)
	if err != nil {
		logger.Log.Errorw("failed to get post", "err", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Update applies a full (partial=false) or partial (partial=true) update
// on behalf of callerID. The write itself carries the ownership condition,
// so there is no window between the check and the mutation.
func (svc *PostService) Update(ctx context.Context, postID, callerID uuid.UUID, in PostUpdateInput, partial bool) (*models.PostDB, error) {
	if verr := validateUpdateInput(in, partial); verr != nil {
		// Not-found and not-owner outrank body validation: an invalid
		// body on a post the caller cannot touch is still 404/403.
		post, err := svc.reader.GetByID(ctx, postID)
		if err != nil {
			logger.Log.Errorw("failed to probe post", "err", err)
			return nil, err
		}
		if post == nil {
			return nil, ErrPostNotFound
		}
		if post.AuthorID != callerID {
			return nil, ErrNotPostAuthor
		}
		return nil, verr
	}

	rows, err := svc.writer.UpdateByAuthor(ctx, postID, callerID, in.Title, in.Content)
	if err != nil {
		logger.Log.Errorw("failed to update post", "err", err)
		return nil, err
	}
	if rows == 0 {
		return nil, svc.classifyMiss(ctx, postID)
	}

	post, err := svc.reader.GetByID(ctx, postID)
	if err != nil {
		logger.Log.Errorw("failed to reload post", "err", err)
		return nil, err
	}
	if post == nil {
		// Deleted concurrently after our update landed.
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Delete permanently removes a post on behalf of callerID.
func (svc *PostService) Delete(ctx context.Context, postID, callerID uuid.UUID) error {
	rows, err := svc.writer.DeleteByAuthor(ctx, postID, callerID)
	if err != nil {
		logger.Log.Errorw("failed to delete post", "err", err)
		return err
	}
	if rows == 0 {
		return svc.classifyMiss(ctx, postID)
	}
	return nil
}

// classifyMiss disambiguates a zero-row conditional write into
// not-found vs. not-owner.
func (svc *PostService) classifyMiss(ctx context.Context, postID uuid.UUID) error {
	post, err := svc.reader.GetByID(ctx, postID)
	if err != nil {
		logger.Log.Errorw("failed to probe post", "err", err)
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return ErrNotPostAuthor
}

func validateUpdateInput(in PostUpdateInput, partial bool) error {
	if !partial {
		err := validation.Errors{
			"title":   validation.Validate(strPtrValue(in.Title), validation.Required),
			"content": validation.Validate(strPtrValue(in.Content), validation.Required),
		}.Filter()
		return asValidationError(err)
	}

	// Partial update: only supplied fields are validated, and a supplied
	// field must not be blank.
	verrs := validation.Errors{}
	if in.Title != nil {
		verrs["title"] = validation.Validate(*in.Title, validation.Required)
	}
	if in.Content != nil {
		verrs["content"] = validation.Validate(*in.Content, validation.Required)
	}
	return asValidationError(verrs.Filter())
}

func strPtrValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
