package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/florimart/florimart/internal/cache"
	"github.com/florimart/florimart/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidToken        = errors.New("invalid refresh token")
	ErrTokenRevoked        = errors.New("token revoked")
	ErrInvalidTokenPayload = errors.New("invalid token payload")
)

// TokenPayload is the decoded content of a session token.
type TokenPayload struct {
	UserID    uint
	ExpiresAt time.Time
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService issues, decodes and revokes signed session tokens.
// Tokens are stateless to verify; refresh tokens additionally carry
// revocation state in the TTL-keyed cache so they can be invalidated
// before natural expiry.
type TokenService struct {
	store      *cache.TokenStore
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(store *cache.TokenStore, cfg *config.Config) *TokenService {
	return &TokenService{
		store:      store,
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

// IssueAccessToken signs a short-lived token for the subject. No side
// effects beyond signing.
func (s *TokenService) IssueAccessToken(userID uint) (string, error) {
	return s.sign(userID, s.accessTTL)
}

// IssueRefreshToken signs a long-lived token and records it in the
// cache with a TTL equal to its own lifetime. The record only serves
// later revocation lookups; signature and expiry remain authoritative
// for acceptance.
func (s *TokenService) IssueRefreshToken(ctx context.Context, userID uint) (string, error) {
	token, err := s.sign(userID, s.refreshTTL)
	if err != nil {
		return "", err
	}
	if err := s.store.SaveRefreshToken(ctx, token, userID, s.refreshTTL); err != nil {
		return "", fmt.Errorf("record refresh token: %w", err)
	}
	log.Debug().Uint("userID", userID).Msg("refresh token issued")
	return token, nil
}

// sign carries a unique token ID so two tokens minted for the same
// subject in the same second still revoke independently.
func (s *TokenService) sign(userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// DecodeToken verifies signature and expiry. Malformed or expired
// input yields ErrInvalidToken, never a panic.
func (s *TokenService) DecodeToken(tokenString string) (*TokenPayload, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidTokenPayload
	}

	payload := &TokenPayload{UserID: uint(userID)}
	if claims.ExpiresAt != nil {
		payload.ExpiresAt = claims.ExpiresAt.Time
	}
	return payload, nil
}

// IsRevoked reports whether the token is on the revocation blacklist.
func (s *TokenService) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.store.IsBlacklisted(ctx, token)
}

// RevokeToken blacklists the token for ttl. Revoking an already
// expired token is a harmless no-op from the caller's point of view.
func (s *TokenService) RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	return s.store.Blacklist(ctx, token, ttl)
}

// IssuePair mints an access and a refresh token for the subject.
func (s *TokenService) IssuePair(ctx context.Context, userID uint) (*TokenPair, error) {
	access, err := s.IssueAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.IssueRefreshToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Rotate exchanges a presented refresh token for a fresh pair:
// decode, check revocation, mint the new pair, then revoke the old
// token for the full refresh lifetime. The old token is revoked after
// minting, so a crash in between leaves both valid until expiry;
// revocation is best-effort hardening, not a single-use guarantee.
func (s *TokenService) Rotate(ctx context.Context, refreshToken string) (*TokenPair, error) {
	payload, err := s.DecodeToken(refreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidTokenPayload) {
			return nil, err
		}
		return nil, ErrInvalidToken
	}

	revoked, err := s.IsRevoked(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		log.Warn().Uint("userID", payload.UserID).Msg("revoked refresh token presented")
		return nil, ErrTokenRevoked
	}

	pair, err := s.IssuePair(ctx, payload.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.RevokeToken(ctx, refreshToken, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("revoke old refresh token: %w", err)
	}

	log.Info().Uint("userID", payload.UserID).Msg("refresh token rotated")
	return pair, nil
}
