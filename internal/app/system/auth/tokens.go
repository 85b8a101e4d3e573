// internal/app/system/auth/tokens.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Token uses. A refresh token presented where an access token is
// expected (or vice versa) is rejected.
const (
	useAccess  = "access"
	useRefresh = "refresh"
)

// ErrInvalidToken covers every verification failure: bad signature,
// expired, wrong issuer, wrong use, malformed subject. Callers map it
// to a single 401 so the failure mode is not leaked.
var ErrInvalidToken = errors.New("invalid token")

// TokenPair is what register, login, and refresh hand back.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type tokenClaims struct {
	jwt.RegisteredClaims
	TokenUse string `json:"token_use"`
}

// TokenManager issues and verifies HS256 access/refresh token pairs.
type TokenManager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenManager builds a TokenManager. The secret must be at least
// 32 bytes; a short HMAC key makes every token forgeable.
func NewTokenManager(secret, issuer string, accessTTL, refreshTTL time.Duration) (*TokenManager, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("token secret must be at least 32 bytes, got %d", len(secret))
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token TTLs must be positive")
	}
	return &TokenManager{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// SetNow overrides the clock, for tests.
func (m *TokenManager) SetNow(now func() time.Time) { m.now = now }

// IssuePair mints a fresh access/refresh pair for the given user.
func (m *TokenManager) IssuePair(userID primitive.ObjectID) (TokenPair, error) {
	access, err := m.sign(userID, useAccess, m.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := m.sign(userID, useRefresh, m.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (m *TokenManager) sign(userID primitive.ObjectID, use string, ttl time.Duration) (string, error) {
	now := m.now().UTC()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		TokenUse: use,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// VerifyAccess validates an access token and returns the subject's
// user id.
func (m *TokenManager) VerifyAccess(token string) (primitive.ObjectID, error) {
	return m.verify(token, useAccess)
}

// VerifyRefresh validates a refresh token and returns the subject's
// user id.
func (m *TokenManager) VerifyRefresh(token string) (primitive.ObjectID, error) {
	return m.verify(token, useRefresh)
}

func (m *TokenManager) verify(token, use string) (primitive.ObjectID, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	if claims.TokenUse != use {
		return primitive.NilObjectID, ErrInvalidToken
	}
	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	return userID, nil
}
