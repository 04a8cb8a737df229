package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/portfolio-tracker/internal/api/response"
	"github.com/ndewijer/portfolio-tracker/internal/apperrors"
)

type userIDKey struct{}

const bearerPrefix = "bearer "

// Authenticate returns a middleware that accepts requests carrying
// "Authorization: Bearer <token>", where token is a fernet token signed with
// one of keys and no older than ttl. The token's
// plaintext is the user id, which is stored in the request context.
//
// Requests without a valid token are rejected with 401 before reaching the
// handler. With no keys configured every request is rejected with 500.
func Authenticate(keys []*fernet.Key, ttl time.Duration, log zerolog.Logger) func(http.Handler) http.Handler {
	log = log.With().Str("component", "auth").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(keys) == 0 {
				log.Error().Msg("no fernet keys configured, rejecting request")
				response.RespondError(w, http.StatusInternalServerError, "authentication is not configured", "")
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthorized.Error(), "Missing bearer token")
				return
			}
			if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
				response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthorized.Error(), "Malformed Authorization header")
				return
			}

			token := strings.TrimSpace(header[len(bearerPrefix):])
			userID := strings.TrimSpace(string(fernet.VerifyAndDecrypt([]byte(token), ttl, keys)))
			if userID == "" {
				log.Debug().Str("request_id", chimiddleware.GetReqID(r.Context())).Msg("rejected invalid or expired token")
				response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthorized.Error(), "Token is invalid or expired")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the user id stored by Authenticate.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok && userID != ""
}

// IssueToken mints a fernet token for userID signed with key.
func IssueToken(key *fernet.Key, userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", apperrors.ErrInvalidUserID
	}
	token, err := fernet.EncryptAndSign([]byte(userID), key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(token), nil
}

// ParseKeys decodes base64 fernet keys. The first key signs, all keys verify.
func ParseKeys(encoded []string) ([]*fernet.Key, error) {
	if len(encoded) == 0 {
		return nil, nil
	}
	keys, err := fernet.DecodeKeys(encoded...)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fernet keys: %w", err)
	}
	return keys, nil
}
