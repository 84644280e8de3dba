package middleware

import (
	"context"
	"net/http"

	"github.com/travel-planner/backend/internal/domain"
	"github.com/travel-planner/backend/pkg/httputil"
)

// TokenVerifier is the slice of the token codec the middleware needs.
type TokenVerifier interface {
	Validate(tokenString string) bool
	Authentication(tokenString string) (subject string, role domain.Role, err error)
}

// RevocationChecker consults the denylist.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, accessToken string) (bool, error)
}

type contextKey int

const (
	subjectKey contextKey = iota
	roleKey
	accessTokenKey
)

// SubjectFromContext returns the authenticated subject placed by RequireAuth.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok
}

// RoleFromContext returns the authenticated role placed by RequireAuth.
func RoleFromContext(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(roleKey).(domain.Role)
	return role, ok
}

// AccessTokenFromContext returns the raw bearer token placed by RequireAuth.
// Logout and withdraw need it to denylist the token being used.
func AccessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey).(string)
	return token, ok
}

// OptionalAuth resolves the bearer token into the request context when one
// is present and valid, and lets the request through otherwise. Logout uses
// it: an unauthenticated logout still clears the cookie without failing.
func OptionalAuth(tokens TokenVerifier, revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := httputil.GetBearerToken(r)
			if err != nil || !tokens.Validate(tokenString) {
				next.ServeHTTP(w, r)
				return
			}

			if isRevoked, err := revoked.IsRevoked(r.Context(), tokenString); err != nil || isRevoked {
				next.ServeHTTP(w, r)
				return
			}

			subject, role, err := tokens.Authentication(tokenString)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, subject)
			ctx = context.WithValue(ctx, roleKey, role)
			ctx = context.WithValue(ctx, accessTokenKey, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth validates the bearer token's signature and expiry, rejects
// revoked tokens even when the signature still verifies, and passes the
// resolved subject and role to the handler through the request context.
func RequireAuth(tokens TokenVerifier, revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := httputil.GetBearerToken(r)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !tokens.Validate(tokenString) {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			isRevoked, err := revoked.IsRevoked(r.Context(), tokenString)
			if err != nil {
				http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
				return
			}
			if isRevoked {
				http.Error(w, "Token revoked", http.StatusUnauthorized)
				return
			}

			subject, role, err := tokens.Authentication(tokenString)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, subject)
			ctx = context.WithValue(ctx, roleKey, role)
			ctx = context.WithValue(ctx, accessTokenKey, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
