package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/travel-planner/backend/internal/domain"
	"github.com/travel-planner/backend/internal/service/auth"
	"github.com/travel-planner/backend/internal/transport/http/middleware"
	pkgauth "github.com/travel-planner/backend/pkg/auth"
	"github.com/travel-planner/backend/pkg/httputil"
)

type AuthHandler struct {
	Service *auth.Service
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{Service: service}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		http.Error(w, "Invalid email format", http.StatusBadRequest)
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" || len(req.FullName) > 50 {
		http.Error(w, "Full name must be between 1 and 50 characters", http.StatusBadRequest)
		return
	}

	if err := pkgauth.ValidatePasswordStrength(req.Password); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.Register(r.Context(), req.Email, req.Password, req.FullName); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			http.Error(w, "Email already registered", http.StatusConflict)
			return
		}
		log.Printf("[AUTH] Register failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	pair, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Printf("[AUTH] Login failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	httputil.SetRefreshCookie(w, pair.RefreshToken)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pair)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := httputil.GetRefreshFromCookie(r)
	if err != nil {
		http.Error(w, "Refresh token not found in cookie", http.StatusUnauthorized)
		return
	}

	pair, err := h.Service.Refresh(r.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidToken),
			errors.Is(err, domain.ErrSessionNotFound),
			errors.Is(err, domain.ErrTokenMismatch):
			httputil.ClearRefreshCookie(w)
			http.Error(w, "Invalid refresh token", http.StatusUnauthorized)
		default:
			log.Printf("[AUTH] Refresh failed: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	httputil.SetRefreshCookie(w, pair.RefreshToken)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pair)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.SubjectFromContext(r.Context())
	if ok {
		accessToken, _ := middleware.AccessTokenFromContext(r.Context())
		if err := h.Service.Logout(r.Context(), subject, accessToken); err != nil {
			log.Printf("[AUTH] Logout failed for %s: %v", subject, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	httputil.ClearRefreshCookie(w)
	w.WriteHeader(http.StatusOK)
}

func (h *AuthHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	accessToken, _ := middleware.AccessTokenFromContext(r.Context())
	if err := h.Service.Withdraw(r.Context(), subject, accessToken); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("[AUTH] Withdraw failed for %s: %v", subject, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	httputil.ClearRefreshCookie(w)
	w.WriteHeader(http.StatusOK)
}
