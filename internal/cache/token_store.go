package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	refreshTokenKeyPrefix = "refresh_token:"
	blacklistKeyPrefix    = "blacklist:"
)

// TokenStore records issued refresh tokens and revoked tokens in a
// TTL-keyed store. The store only supports revocation lookups:
// signature and expiry stay authoritative for token acceptance, so a
// missing refresh_token entry (eviction) is not treated as invalidity.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// SaveRefreshToken records an issued refresh token against its subject
// with a TTL equal to the token's own lifetime.
func (s *TokenStore) SaveRefreshToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	key := refreshTokenKeyPrefix + token
	return s.client.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

// Blacklist marks a token revoked. The entry's TTL should match or
// outlive the token's remaining validity; re-blacklisting an already
// revoked token just refreshes the entry.
func (s *TokenStore) Blacklist(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Set(ctx, blacklistKeyPrefix+token, "true", ttl).Err()
}

// IsBlacklisted reports whether the token has been explicitly revoked.
func (s *TokenStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
