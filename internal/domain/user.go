package domain

import (
	"database/sql"
	"time"
)

// Provider identifies where an account's credentials live.
type Provider string

const (
	ProviderLocal  Provider = "LOCAL"
	ProviderGoogle Provider = "GOOGLE"
	ProviderKakao  Provider = "KAKAO"
	ProviderNaver  Provider = "NAVER"
	ProviderGithub Provider = "GITHUB"
)

// Role is the coarse authorization level embedded in access tokens.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Status is the account lifecycle state.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// User is a durable identity record. Password hash is absent for pure
// federated accounts; federated fields are absent for LOCAL accounts.
type User struct {
	ID                int64
	Email             string
	FullName          string
	PasswordHash      sql.NullString
	Provider          Provider
	FederatedID       sql.NullString
	SocialAccessToken sql.NullString
	Role              Role
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SubjectID returns the stable token subject for this user: the email for
// LOCAL accounts, the provider's subject claim for federated accounts.
func (u *User) SubjectID() string {
	if u.Provider != ProviderLocal && u.FederatedID.Valid {
		return u.FederatedID.String
	}
	return u.Email
}

// UserResponse returns a JSON-friendly view of the user, without any of the
// credential material.
func (u *User) UserResponse() map[string]interface{} {
	return map[string]interface{}{
		"email":     u.Email,
		"full_name": u.FullName,
		"provider":  u.Provider,
		"role":      u.Role,
		"status":    u.Status,
	}
}
