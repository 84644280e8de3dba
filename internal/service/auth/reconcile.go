package auth

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/travel-planner/backend/internal/domain"
)

// FederatedLogin reconciles a successful provider callback into the identity
// store and issues the same token pair as password login.
func (s *Service) FederatedLogin(ctx context.Context, fu domain.FederatedUser) (*TokenPair, error) {
	user, err := s.reconcile(ctx, fu)
	if err != nil {
		return nil, err
	}

	// The token subject for a federated login is always the provider's
	// subject claim, even when the account was originally LOCAL.
	pair, err := s.issueTokens(ctx, fu.SubjectID, user.Role)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordLogin("federated")
	}
	return pair, nil
}

// reconcile maps the federated identity onto an existing user sharing the
// same email, or creates a new one. Linking happens on email match alone,
// with no extra verification of the pre-existing account, so every link is
// logged for audit.
func (s *Service) reconcile(ctx context.Context, fu domain.FederatedUser) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, fu.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user != nil {
		if user.Provider == domain.ProviderLocal {
			log.Printf("[OAUTH] Linking %s identity onto existing LOCAL account %s", fu.Provider, fu.Email)
		}
		if err := s.users.UpdateFederatedLink(ctx, fu.Email, fu.FullName, fu.SubjectID, fu.AccessToken); err != nil {
			return nil, err
		}
		user.FullName = fu.FullName
		user.FederatedID = sql.NullString{String: fu.SubjectID, Valid: true}
		user.SocialAccessToken = sql.NullString{String: fu.AccessToken, Valid: true}
		return user, nil
	}

	user = &domain.User{
		Email:             fu.Email,
		FullName:          fu.FullName,
		Provider:          fu.Provider,
		FederatedID:       sql.NullString{String: fu.SubjectID, Valid: true},
		SocialAccessToken: sql.NullString{String: fu.AccessToken, Valid: true},
		Role:              domain.RoleUser,
		Status:            domain.StatusActive,
	}

	userID, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	log.Printf("[OAUTH] Created new %s account for %s", fu.Provider, fu.Email)
	return user, nil
}
