package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/florimart/florimart/internal/service"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"

	// TokenHeader carries the raw session token. The API uses a
	// dedicated header rather than Authorization: Bearer.
	TokenHeader = "X-Token"
)

// Auth validates the X-Token header and stores the caller's user id in
// the request context. Absent or invalid tokens end the request with
// 401; role checks happen later, per operation.
func Auth(tokens *service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				unauthorized(w)
				return
			}

			payload, err := tokens.DecodeToken(token)
			if err != nil {
				log.Debug().Err(err).Msg("token validation failed")
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, payload.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	return userID, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
}
