package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/travel-planner/backend/internal/domain"
	"github.com/travel-planner/backend/internal/transport/http/middleware"
)

// UserFinder resolves an authenticated subject back to its identity record.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByFederatedID(ctx context.Context, federatedID string) (*domain.User, error)
}

type UserHandler struct {
	Users UserFinder
}

func NewUserHandler(users UserFinder) *UserHandler {
	return &UserHandler{Users: users}
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Users.FindByEmail(r.Context(), subject)
	if err == nil && user == nil {
		user, err = h.Users.FindByFederatedID(r.Context(), subject)
	}
	if err != nil {
		log.Printf("[USER] /me lookup failed for %s: %v", subject, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user.UserResponse())
}
