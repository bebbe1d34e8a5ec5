package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/icare-app/icare-server/internal/auth"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
)

// Auth resolves the bearer token into the authenticated user id and stores
// it in the request context. It does not check that the account still
// exists; handlers that need a live account fetch it themselves.
func Auth(codec *auth.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := auth.SubjectFromHeader(codec, r.Header.Get("Authorization"))
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrTokenMissing):
					log.Printf("ERROR [middleware.Auth] missing authorization header")
					http.Error(w, "Authorization header required", http.StatusUnauthorized)
				case errors.Is(err, auth.ErrTokenExpired):
					log.Printf("ERROR [middleware.Auth] token expired")
					http.Error(w, "Token expired", http.StatusUnauthorized)
				default:
					log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
