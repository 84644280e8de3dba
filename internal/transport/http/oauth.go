package http

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/travel-planner/backend/internal/config"
	"github.com/travel-planner/backend/internal/domain"
	"github.com/travel-planner/backend/internal/service/auth"
	"github.com/travel-planner/backend/pkg/httputil"
)

const oauthStateCookieName = "oauth_state"

type OAuthHandler struct {
	Config      *config.OAuthConfig
	Service     *auth.Service
	FrontendURL string
}

func NewOAuthHandler(cfg *config.OAuthConfig, service *auth.Service, frontendURL string) *OAuthHandler {
	return &OAuthHandler{
		Config:      cfg,
		Service:     service,
		FrontendURL: frontendURL,
	}
}

// GoogleLogin redirects the user to Google with a fresh anti-CSRF state.
func (h *OAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
	})

	authURL := h.Config.GoogleLoginConfig.AuthCodeURL(state)
	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

// GoogleCallback handles the authorization-code callback: it exchanges the
// code, reconciles the federated identity, then issues the same token pair
// as password login — refresh token in the cookie, access token on the
// frontend redirect.
func (h *OAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		log.Printf("[OAUTH] State mismatch on Google callback")
		h.redirectWithError(w, r, "auth_failed")
		return
	}

	code := r.URL.Query().Get("code")
	token, err := h.Config.GoogleLoginConfig.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("[OAUTH] Failed to exchange token: %v", err)
		h.redirectWithError(w, r, "auth_failed")
		return
	}

	attrs, err := config.GetGoogleUserInfo(r.Context(), token.AccessToken)
	if err != nil {
		log.Printf("[OAUTH] Failed to get user info: %v", err)
		h.redirectWithError(w, r, "user_info_failed")
		return
	}

	fu, err := domain.ProviderGoogle.MapClaims(attrs)
	if err != nil {
		log.Printf("[OAUTH] Failed to map Google claims: %v", err)
		h.redirectWithError(w, r, "user_info_failed")
		return
	}
	fu.AccessToken = token.AccessToken

	pair, err := h.Service.FederatedLogin(r.Context(), fu)
	if err != nil {
		log.Printf("[OAUTH] Federated login failed: %v", err)
		h.redirectWithError(w, r, "server_error")
		return
	}

	httputil.SetRefreshCookie(w, pair.RefreshToken)

	redirectURL := fmt.Sprintf("%s/auth/callback?accessToken=%s",
		h.FrontendURL, url.QueryEscape(pair.AccessToken))
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

func (h *OAuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, h.FrontendURL+"/login?error="+code, http.StatusTemporaryRedirect)
}
