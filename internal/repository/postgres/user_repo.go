package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/travel-planner/backend/internal/domain"
)

type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userSelectFields = `user_id, email, password_hash, full_name, provider, federated_id, social_access_token, role, status, created_at, updated_at`

// scanUser is a helper that scans a row into a domain.User
func scanUser(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Provider,
		&user.FederatedID,
		&user.SocialAccessToken,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and returns its id. A unique violation on email
// or federated id maps to domain.ErrDuplicateEmail.
func (r *UserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	query := `
	INSERT INTO users (email, password_hash, full_name, provider, federated_id, social_access_token, role, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING user_id;
	`
	var userID int64
	err := r.DB.QueryRowContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Provider,
		user.FederatedID,
		user.SocialAccessToken,
		user.Role,
		user.Status,
	).Scan(&userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, domain.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return userID, nil
}

// FindByEmail retrieves a user by email; nil when absent.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userSelectFields + ` FROM users WHERE email = $1;`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// FindByFederatedID retrieves a user by the provider's subject claim; nil
// when absent.
func (r *UserRepo) FindByFederatedID(ctx context.Context, federatedID string) (*domain.User, error) {
	query := `SELECT ` + userSelectFields + ` FROM users WHERE federated_id = $1;`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, federatedID))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by federated id: %w", err)
	}
	return user, nil
}

// UpdateFederatedLink attaches a federated identity to the user with the
// given email, refreshing the display name and provider access token.
func (r *UserRepo) UpdateFederatedLink(ctx context.Context, email, fullName, federatedID, socialAccessToken string) error {
	query := `
	UPDATE users
	SET full_name = $2, federated_id = $3, social_access_token = $4, updated_at = NOW()
	WHERE email = $1;
	`
	_, err := r.DB.ExecContext(ctx, query, email, fullName, federatedID, socialAccessToken)
	if err != nil {
		return fmt.Errorf("failed to link federated identity: %w", err)
	}
	return nil
}

// Delete permanently removes the user record.
func (r *UserRepo) Delete(ctx context.Context, userID int64) error {
	query := `DELETE FROM users WHERE user_id = $1;`
	_, err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
