package httputil

import (
	"errors"
	"net/http"
	"strings"

	"github.com/travel-planner/backend/internal/config"
)

const RefreshCookieName = "refreshToken"

// RefreshCookieMaxAge matches the refresh token's 14-day lifetime.
const RefreshCookieMaxAge = 14 * 24 * 60 * 60

// SetRefreshCookie places the refresh token in an HTTP-only cookie.
func SetRefreshCookie(w http.ResponseWriter, token string) {
	isProduction := config.GetEnv("ENVIRONMENT", "development") == "production"

	cookie := &http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   RefreshCookieMaxAge,
		HttpOnly: true,
		Secure:   isProduction,
	}

	// SameSite=None requires Secure=true, so use Lax for development
	if isProduction {
		cookie.SameSite = http.SameSiteNoneMode
		cookie.Secure = true
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, cookie)
}

// ClearRefreshCookie deletes the refresh cookie on logout or withdraw.
func ClearRefreshCookie(w http.ResponseWriter) {
	cookie := &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	}

	http.SetCookie(w, cookie)
}

// GetRefreshFromCookie extracts the refresh token from the request cookie.
func GetRefreshFromCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil {
		return "", errors.New("refresh cookie not found")
	}

	if cookie.Value == "" {
		return "", errors.New("refresh cookie is empty")
	}

	return cookie.Value, nil
}

// GetBearerToken extracts the access token from the Authorization header.
func GetBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errors.New("authorization header is not a bearer token")
	}
	token := strings.TrimSpace(authHeader[len("Bearer "):])
	if token == "" {
		return "", errors.New("bearer token is empty")
	}
	return token, nil
}
