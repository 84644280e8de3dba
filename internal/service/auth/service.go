package auth

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/travel-planner/backend/internal/domain"
	"github.com/travel-planner/backend/internal/metrics"
	pkgauth "github.com/travel-planner/backend/pkg/auth"
)

// UserRepository is the identity store consumed by the orchestrator.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByFederatedID(ctx context.Context, federatedID string) (*domain.User, error)
	UpdateFederatedLink(ctx context.Context, email, fullName, federatedID, socialAccessToken string) error
	Delete(ctx context.Context, userID int64) error
}

// SessionStore holds the currently-valid refresh token per subject.
type SessionStore interface {
	Put(ctx context.Context, subject, refreshToken string) error
	Get(ctx context.Context, subject string) (string, error)
	Delete(ctx context.Context, subject string) error
}

// RevocationStore is the time-bounded access-token denylist.
type RevocationStore interface {
	MarkRevoked(ctx context.Context, accessToken string, ttl time.Duration) error
	IsRevoked(ctx context.Context, accessToken string) (bool, error)
}

// TokenProvider signs and parses the token pair.
type TokenProvider interface {
	CreateAccessToken(subject string, role domain.Role) (string, error)
	CreateRefreshToken(subject string, role domain.Role) (string, error)
	Validate(tokenString string) bool
	Authentication(tokenString string) (subject string, role domain.Role, err error)
	Expiration(tokenString string) (time.Duration, error)
}

// GrantRevoker calls a federated provider's token-revocation endpoint.
type GrantRevoker interface {
	Revoke(ctx context.Context, providerAccessToken string) error
}

// TokenPair is the result of every successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Subject      string `json:"email"`
}

// Service orchestrates registration, login, refresh rotation, logout and
// account withdrawal across the identity store and the session state.
type Service struct {
	users    UserRepository
	sessions SessionStore
	revoked  RevocationStore
	tokens   TokenProvider
	grants   GrantRevoker
	metrics  *metrics.Collector // optional, can be nil
}

func NewService(users UserRepository, sessions SessionStore, revoked RevocationStore, tokens TokenProvider, grants GrantRevoker, collector *metrics.Collector) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		revoked:  revoked,
		tokens:   tokens,
		grants:   grants,
		metrics:  collector,
	}
}

// Register creates a LOCAL account. Registration does not log the user in;
// token issuance is a separate step.
func (s *Service) Register(ctx context.Context, email, password, fullName string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return domain.ErrDuplicateEmail
	}

	hashed, err := pkgauth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: sql.NullString{String: hashed, Valid: true},
		FullName:     fullName,
		Provider:     domain.ProviderLocal,
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordRegistration()
	}
	return nil
}

// Login verifies the credentials and issues a token pair, overwriting any
// prior session for the subject. Unknown email and wrong password are not
// distinguished in the returned error.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !user.PasswordHash.Valid || !pkgauth.CheckPasswordHash(password, user.PasswordHash.String) {
		if s.metrics != nil {
			s.metrics.RecordLoginFailure()
		}
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user.SubjectID(), user.Role)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordLogin("password")
	}
	return pair, nil
}

// Refresh rotates the presented refresh token: the stored session is
// overwritten with a new pair and the old token becomes permanently unusable.
//
// The read-check-write sequence is not atomic across concurrent Refresh calls
// for the same subject; the store keeps whichever write lands last. A single
// legitimate client does not refresh concurrently, so this race is accepted.
func (s *Service) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	if !s.tokens.Validate(presented) {
		s.denyRefresh("invalid_token")
		return nil, domain.ErrInvalidToken
	}

	subject, role, err := s.tokens.Authentication(presented)
	if err != nil {
		s.denyRefresh("invalid_token")
		return nil, err
	}

	stored, err := s.sessions.Get(ctx, subject)
	if err != nil {
		s.denyRefresh("session_not_found")
		return nil, err
	}

	if stored != presented {
		s.denyRefresh("token_mismatch")
		return nil, domain.ErrTokenMismatch
	}

	pair, err := s.issueTokens(ctx, subject, role)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordRefresh()
	}
	return pair, nil
}

// Logout deletes the subject's session and denylists the access token for
// its remaining validity. An empty access token skips the denylist step; the
// operation is idempotent.
func (s *Service) Logout(ctx context.Context, subject, accessToken string) error {
	if err := s.sessions.Delete(ctx, subject); err != nil {
		return err
	}

	if accessToken == "" {
		return nil
	}

	remaining, err := s.tokens.Expiration(accessToken)
	if err != nil {
		// Unparseable token: nothing the denylist could deny.
		log.Printf("[AUTH] Logout received unparseable access token for %s: %v", subject, err)
		return nil
	}
	if remaining <= 0 {
		return nil
	}

	// A failed denylist write would leave a logged-out token usable, so it
	// is surfaced, not swallowed.
	if err := s.revoked.MarkRevoked(ctx, accessToken, remaining); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordRevocation()
	}
	return nil
}

// Withdraw performs logout, best-effort revokes the provider grant for
// GOOGLE accounts, then permanently deletes the identity. The subject is
// resolved by email first, falling back to the federated identifier.
func (s *Service) Withdraw(ctx context.Context, subject, accessToken string) error {
	if err := s.Logout(ctx, subject, accessToken); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, subject)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		user, err = s.users.FindByFederatedID(ctx, subject)
		if err != nil {
			return fmt.Errorf("failed to look up user: %w", err)
		}
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if user.Provider == domain.ProviderGoogle && user.SocialAccessToken.Valid && s.grants != nil {
		if err := s.grants.Revoke(ctx, user.SocialAccessToken.String); err != nil {
			// Expired or unreachable provider token must not block deletion.
			log.Printf("[AUTH] Failed to revoke Google token for %s: %v", subject, err)
		} else {
			log.Printf("[AUTH] Google token revoked for %s", subject)
		}
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordWithdrawal()
	}
	return nil
}

// issueTokens creates an access+refresh pair and writes the refresh token as
// the subject's single live session.
func (s *Service) issueTokens(ctx context.Context, subject string, role domain.Role) (*TokenPair, error) {
	accessToken, err := s.tokens.CreateAccessToken(subject, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, err := s.tokens.CreateRefreshToken(subject, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := s.sessions.Put(ctx, subject, refreshToken); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Subject:      subject,
	}, nil
}

func (s *Service) denyRefresh(reason string) {
	if s.metrics != nil {
		s.metrics.RecordRefreshDenied(reason)
	}
}
