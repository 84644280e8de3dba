package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/travel-planner/backend/internal/metrics"
	"github.com/travel-planner/backend/internal/transport/http/middleware"
)

// RouterDeps bundles everything NewRouter wires together.
type RouterDeps struct {
	AuthHandler  *AuthHandler
	OAuthHandler *OAuthHandler
	UserHandler  *UserHandler

	TokenVerifier     middleware.TokenVerifier
	RevocationChecker middleware.RevocationChecker

	AllowedOrigins []string
	Registry       *prometheus.Registry
	RateLimiter    *middleware.RateLimiter
}

// NewRateLimiter returns the default limiter for the credential endpoints:
// 30 requests per minute per IP with a small burst.
func NewRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(rate.Limit(30.0/60.0), 10)
}

// NewRouter builds the API routing table.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(deps.AllowedOrigins))

	requireAuth := middleware.RequireAuth(deps.TokenVerifier, deps.RevocationChecker)
	optionalAuth := middleware.OptionalAuth(deps.TokenVerifier, deps.RevocationChecker)

	r.Route("/api/auth", func(r chi.Router) {
		// Credential endpoints are rate limited per IP.
		r.Group(func(r chi.Router) {
			r.Use(deps.RateLimiter.Middleware)
			r.Post("/register", deps.AuthHandler.Register)
			r.Post("/login", deps.AuthHandler.Login)
			r.Post("/refresh", deps.AuthHandler.Refresh)
		})

		if deps.OAuthHandler != nil {
			r.Get("/google/login", deps.OAuthHandler.GoogleLogin)
			r.Get("/google/callback", deps.OAuthHandler.GoogleCallback)
		}

		// Logout still clears the cookie when no bearer token is presented.
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Post("/logout", deps.AuthHandler.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Delete("/withdraw", deps.AuthHandler.Withdraw)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/api/users/me", deps.UserHandler.Me)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Registry))
	}

	return r
}
