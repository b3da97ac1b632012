package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type claim values. Protected endpoints accept only access tokens,
// the refresh endpoint accepts only refresh tokens.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrWrongTokenType   = errors.New("wrong token type")
	ErrNoAuthHeader     = errors.New("authorization header missing")
	ErrBadAuthHeader    = errors.New("invalid authorization header format")
	ErrInvalidUserClaim = errors.New("invalid user_id claim")
)

// Claims is the claim set carried by both tokens of a pair.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
}

// RefreshClaims is the verified content of a refresh token, exposed to the
// auth service so it can rotate and revoke the presented token.
type RefreshClaims struct {
	UserID    uuid.UUID
	JTI       string
	ExpiresAt time.Time
}

// JWT issues and verifies HS256-signed access/refresh token pairs.
// Tokens are stateless; only revoked refresh token ids are tracked elsewhere.
type JWT struct {
	secretKey  []byte
	accessExp  time.Duration
	refreshExp time.Duration
}

// New creates a JWT instance with the given signing secret and lifetimes.
func New(secretKey string, accessExp, refreshExp time.Duration) *JWT {
	return &JWT{
		secretKey:  []byte(secretKey),
		accessExp:  accessExp,
		refreshExp: refreshExp,
	}
}

// GeneratePair creates an access/refresh token pair bound to userID.
func (j *JWT) GeneratePair(ctx context.Context, userID uuid.UUID) (access string, refresh string, err error) {
	access, err = j.generate(userID, TokenTypeAccess, j.accessExp)
	if err != nil {
		return "", "", err
	}
	refresh, err = j.generate(userID, TokenTypeRefresh, j.refreshExp)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (j *JWT) generate(userID uuid.UUID, tokenType string, exp time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(exp)),
		},
		UserID:    userID.String(),
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// ParseAccess verifies an access token and returns the bound user id.
func (j *JWT) ParseAccess(ctx context.Context, tokenString string) (uuid.UUID, error) {
	claims, err := j.parse(tokenString, TokenTypeAccess)
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrInvalidUserClaim
	}
	return userID, nil
}

// ParseRefresh verifies a refresh token and returns its claims.
func (j *JWT) ParseRefresh(ctx context.Context, tokenString string) (*RefreshClaims, error) {
	claims, err := j.parse(tokenString, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidUserClaim
	}
	// exp is optional to the parser, but a refresh token without one
	// could never be revoked for its remaining lifetime.
	if claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return &RefreshClaims{
		UserID:    userID,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (j *JWT) parse(tokenString, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// GetTokenFromRequest extracts the token string from the Authorization header
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoAuthHeader
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", ErrBadAuthHeader
	}

	return parts[1], nil
}
