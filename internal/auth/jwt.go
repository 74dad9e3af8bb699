package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// TokenTTL is how long an issued token stays valid. Every successful
// authenticated call returns a fresh token, so the effective session slides
// as long as the client keeps making requests within this window.
const TokenTTL = 10 * time.Minute

// Claims defines the JWT claims structure.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// userIDKey is the context key for the authenticated user's id.
type contextKey string

const userIDKey = contextKey("userID")

// TokenService issues and verifies the signed bearer tokens that stand in
// for sessions. The signing secret is injected once at startup and never
// reassigned.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue creates a new token for a user, valid for TokenTTL from now.
func (s *TokenService) Issue(userID string) (string, error) {
	return s.IssueAt(userID, time.Now())
}

// IssueAt creates a token as if issued at the given time. Tests use this to
// mint backdated tokens; production code goes through Issue.
func (s *TokenService) IssueAt(userID string, now time.Time) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string, returning the embedded user
// id. It fails with ErrExpiredToken when exp has passed and ErrInvalidToken
// for anything else wrong with the token. Verification reads no shared
// mutable state, so repeated calls on the same token always agree.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

// Middleware creates a middleware for protecting routes. It resolves the
// bearer token from the Authorization header and puts the user id on the
// request context. All failures collapse to a bare 401 with an empty body,
// so callers cannot tell a missing token from a bad or expired one; the
// distinction is kept for the logs only.
func (s *TokenService) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := bearerToken(r)
			if err == nil {
				var userID string
				userID, err = s.Verify(tokenStr)
				if err == nil {
					ctx := context.WithValue(r.Context(), userIDKey, userID)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			log.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected unauthenticated request")
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
}

// UserIDFromContext returns the user id resolved by the auth middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(authHeader, "Bearer ", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", ErrMissingToken
	}
	return parts[1], nil
}
