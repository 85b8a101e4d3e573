// internal/app/system/auth/auth.go

// Package auth owns the credential boundary: issuing and verifying
// access/refresh token pairs and loading the current user into the
// request context.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// UserFetcher loads a user record by id. The middleware fetches on
// every request rather than caching claims, so account changes take
// effect on the very next request.
type UserFetcher interface {
	FetchUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Manager verifies bearer tokens and injects the user into context.
type Manager struct {
	tokens *TokenManager
	fetch  UserFetcher
	log    *zap.Logger
}

// NewManager constructs an auth Manager.
func NewManager(tokens *TokenManager, fetch UserFetcher, logger *zap.Logger) *Manager {
	return &Manager{tokens: tokens, fetch: fetch, log: logger}
}

// Tokens exposes the underlying TokenManager for handlers that issue
// pairs (register, login, refresh).
func (m *Manager) Tokens() *TokenManager { return m.tokens }

// CurrentUser returns the user loaded by RequireSignedIn and a found
// flag.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*models.User)
	return u, ok
}

// WithTestUser injects a user into the request context, bypassing the
// middleware. Tests only.
func WithTestUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// RequireSignedIn rejects requests without a valid access token and
// loads the subject's current user record into context.
func (m *Manager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httpjson.Unauthorized(w, "missing bearer token")
			return
		}

		userID, err := m.tokens.VerifyAccess(token)
		if err != nil {
			httpjson.Unauthorized(w, "invalid or expired token")
			return
		}

		// Fresh read per request: a deleted account or changed profile
		// is reflected immediately, regardless of token age.
		user, err := m.fetch.FetchUser(r.Context(), userID)
		if err != nil {
			httpjson.Unauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
