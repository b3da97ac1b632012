package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dkotenko/blog-api/internal/logger"
)

const revokedTokenKeyPrefix = "revoked:refresh:"

// RevokedTokenRepository tracks refresh token ids that have been rotated
// out. Keys expire together with the token they shadow, so the set stays
// bounded by the refresh TTL.
type RevokedTokenRepository struct {
	rdb *redis.Client
}

func NewRevokedTokenRepository(rdb *redis.Client) *RevokedTokenRepository {
	return &RevokedTokenRepository{rdb: rdb}
}

// RevokeOnce claims a refresh token id for the rest of its lifetime.
// SetNX makes the claim atomic: exactly one caller gets true, every other
// presentation of the same jti is a replay and gets false.
func (r *RevokedTokenRepository) RevokeOnce(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		// Token already expired, nothing left to claim.
		return false, nil
	}

	first, err := r.rdb.SetNX(ctx, revokedTokenKeyPrefix+jti, 1, ttl).Result()

	logger.Log.Infow("revoke refresh token",
		"jti", jti,
		"ttl", ttl,
		"first_use", first,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return first, nil
}

// IsRevoked reports whether a refresh token id has been revoked.
func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revokedTokenKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
