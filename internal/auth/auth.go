// Package auth verifies the bearer tokens issued by the identity provider
// and exposes the calling player's id and captain flag to handlers. The
// engines themselves never make authorization decisions.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
)

const (
	claimPlayerID = "player_id"
	claimCaptain  = "captain"
)

// Identity is the calling context supplied by the identity provider.
type Identity struct {
	PlayerID string
	Captain  bool
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const identityKey contextKey = "identity"

// FromContext retrieves the verified identity from the request context.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// Middleware verifies the Authorization bearer token and puts the identity
// on the request context. Requests without a valid token are rejected.
func Middleware(signingSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := verify(r, signingSecret)
			if err != nil {
				log.Debug("Rejected request", "url", r.URL.Path, "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCaptain rejects requests whose identity does not carry the captain
// role flag. It must run after Middleware.
func RequireCaptain(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := FromContext(r.Context())
		if !ok || !identity.Captain {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func verify(r *http.Request, signingSecret string) (Identity, error) {
	header := r.Header.Get("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return Identity{}, fmt.Errorf("missing bearer token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(signingSecret), nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fmt.Errorf("unexpected claims type")
	}

	playerID, ok := claims[claimPlayerID].(string)
	if !ok || playerID == "" {
		return Identity{}, fmt.Errorf("missing '%s' claim in token", claimPlayerID)
	}
	captain, _ := claims[claimCaptain].(bool)

	return Identity{PlayerID: playerID, Captain: captain}, nil
}

// IssueToken signs a token for the given player. Used by the CLI and tests;
// production tokens come from the identity provider.
func IssueToken(signingSecret, playerID string, captain bool, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		claimPlayerID: playerID,
		claimCaptain:  captain,
		"exp":         time.Now().Add(ttl).Unix(),
		"iat":         time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signingSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
