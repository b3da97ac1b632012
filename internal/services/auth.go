package services

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkotenko/blog-api/internal/jwt"
	"github.com/dkotenko/blog-api/internal/logger"
	"github.com/dkotenko/blog-api/internal/models"
	"github.com/dkotenko/blog-api/internal/repositories"
)

// Error variables
var (
	ErrInvalidCredentials  = errors.New("incorrect email or password")
	ErrAccountLocked       = errors.New("profile is locked")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

const msgEmailTaken = "user with this email already exists"

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user models.UserDB) (*models.UserDB, error)
}

// TokenIssuer defines an interface for issuing and verifying token pairs.
type TokenIssuer interface {
	GeneratePair(ctx context.Context, userID uuid.UUID) (access string, refresh string, err error)
	ParseRefresh(ctx context.Context, tokenString string) (*jwt.RefreshClaims, error)
}

// TokenRevoker defines the revocation store for rotated refresh tokens.
// RevokeOnce atomically claims a token id; false means the id was already
// claimed, i.e. the presented token is a replay.
type TokenRevoker interface {
	RevokeOnce(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

// RegisterInput is the candidate user payload for registration.
type RegisterInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginResult is the outcome of a successful authentication.
type LoginResult struct {
	User         *models.UserDB
	AccessToken  string
	RefreshToken string
}

// AuthService handles registration, login and token refresh.
type AuthService struct {
	reader  UserReader
	writer  UserWriter
	tokens  TokenIssuer
	revoked TokenRevoker
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenIssuer, revoked TokenRevoker) *AuthService {
	return &AuthService{
		reader:  reader,
		writer:  writer,
		tokens:  tokens,
		revoked: revoked,
	}
}

// Register validates the candidate user, hashes the password and persists
// the user. The returned record never leaves the service with a plaintext
// password; the hash is excluded from serialization by the model.
func (svc *AuthService) Register(ctx context.Context, in RegisterInput) (*models.UserDB, error) {
	in.Email = normalizeEmail(in.Email)

	err := validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Username, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
	if err != nil {
		return nil, asValidationError(err)
	}

	existing, err := svc.reader.GetByEmail(ctx, in.Email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		return nil, fieldError("email", msgEmailTaken)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Save(ctx, models.UserDB{
		Email:        in.Email,
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	})
	if errors.Is(err, repositories.ErrUniqueViolation) {
		// Lost the race against a concurrent registration with the same email.
		return nil, fieldError("email", msgEmailTaken)
	}
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns the identity with a token pair.
//
// The active-flag check runs before password verification: a locked account
// reports its lock status regardless of credential correctness. Unknown
// email and wrong password produce the same generic error.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	err := validation.Errors{
		"email":    validation.Validate(email, validation.Required),
		"password": validation.Validate(password, validation.Required),
	}.Filter()
	if err != nil {
		return nil, asValidationError(err)
	}

	user, err := svc.reader.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}

	if user != nil && !user.IsActive {
		logger.Log.Infow("login rejected, account locked", "user_id", user.UserID)
		return nil, ErrAccountLocked
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, refresh, err := svc.tokens.GeneratePair(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate token pair", "err", err)
		return nil, err
	}

	return &LoginResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The presented
// token is revoked for the rest of its lifetime, so each refresh token can
// be used once. A locked or deleted account cannot mint new tokens.
func (svc *AuthService) Refresh(ctx context.Context, refreshToken string) (access string, refresh string, err error) {
	claims, err := svc.tokens.ParseRefresh(ctx, refreshToken)
	if err != nil {
		return "", "", ErrInvalidRefreshToken
	}

	first, err := svc.revoked.RevokeOnce(ctx, claims.JTI, time.Until(claims.ExpiresAt))
	if err != nil {
		logger.Log.Errorw("failed to claim refresh token", "err", err)
		return "", "", err
	}
	if !first {
		logger.Log.Infow("refresh token replay rejected", "jti", claims.JTI)
		return "", "", ErrInvalidRefreshToken
	}

	user, err := svc.reader.GetByID(ctx, claims.UserID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", "", err
	}
	if user == nil || !user.IsActive {
		return "", "", ErrInvalidRefreshToken
	}

	access, refresh, err = svc.tokens.GeneratePair(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate token pair", "err", err)
		return "", "", err
	}

	return access, refresh, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
