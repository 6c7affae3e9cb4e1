package middleware

import (
	"context"
	"net/http"

	"github.com/sportmeet/server/internal/api/problem"
	"github.com/sportmeet/server/internal/auth"
)

type contextKeyAuth string

const identityKey contextKeyAuth = "identity"

// Identity is the authenticated caller, decoded once from the bearer token at
// the boundary and threaded through the request context.
type Identity struct {
	UserID int64
	Email  string
}

// RequireUser rejects requests without a valid bearer token with 401.
func RequireUser(manager *auth.JWTManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := identityFromRequest(manager, r)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, env)
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
		})
	}
}

// OptionalUser attaches an identity when a valid bearer token is present and
// treats the caller as anonymous otherwise. Malformed or expired tokens do
// not fail public routes; they just yield no identity.
func OptionalUser(manager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := identityFromRequest(manager, r)
			if err == nil {
				r = r.WithContext(withIdentity(r.Context(), identity))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func identityFromRequest(manager *auth.JWTManager, r *http.Request) (*Identity, error) {
	token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
	if err != nil {
		return nil, err
	}
	claims, err := manager.Validate(token)
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

func withIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom returns the caller's identity, or nil for anonymous requests.
func IdentityFrom(r *http.Request) *Identity {
	if r == nil {
		return nil
	}
	if identity, ok := r.Context().Value(identityKey).(*Identity); ok {
		return identity
	}
	return nil
}
