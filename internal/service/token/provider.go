package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/travel-planner/backend/internal/domain"
)

// Claims are the JWT claims carried by both token kinds. Access and refresh
// tokens share the structure and are distinguished by expiry policy.
type Claims struct {
	Role string `json:"auth,omitempty"`
	jwt.RegisteredClaims
}

// Provider signs and parses the access/refresh token pair. The signing key is
// supplied at construction and never read from ambient state.
type Provider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewProvider(secret string, accessTTL, refreshTTL time.Duration) *Provider {
	return &Provider{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// CreateAccessToken signs a short-lived token for the subject with an
// embedded role claim.
func (p *Provider) CreateAccessToken(subject string, role domain.Role) (string, error) {
	return p.sign(subject, role, p.accessTTL)
}

// CreateRefreshToken signs a long-lived token for the subject. The role claim
// is carried so a refreshed access token keeps the caller's authority without
// a user lookup.
func (p *Provider) CreateRefreshToken(subject string, role domain.Role) (string, error) {
	return p.sign(subject, role, p.refreshTTL)
}

func (p *Provider) sign(subject string, role domain.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			// Unique id so two rotations in the same second never mint
			// byte-identical tokens.
			ID: uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Validate reports whether the token's signature verifies and its expiry has
// not passed. It fails closed: any parse error means invalid.
func (p *Provider) Validate(tokenString string) bool {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, p.keyFunc)
	return err == nil && token.Valid
}

// Authentication recovers the subject and role from a token whose signature
// verifies, even when the token has expired. Structurally unparseable or
// forged tokens yield ErrInvalidToken; callers that need the valid/expired
// distinction call Validate first.
func (p *Provider) Authentication(tokenString string) (subject string, role domain.Role, err error) {
	claims, err := p.parseSigned(tokenString)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return claims.Subject, domain.Role(claims.Role), nil
}

// Expiration returns the token's remaining validity. Already-expired tokens
// yield a zero or negative duration; callers must treat that as nothing to
// revoke.
func (p *Provider) Expiration(tokenString string) (time.Duration, error) {
	claims, err := p.parseSigned(tokenString)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return 0, nil
	}
	return time.Until(claims.ExpiresAt.Time), nil
}

// parseSigned verifies the signature but skips claim (expiry) validation.
func (p *Provider) parseSigned(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, p.keyFunc, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	return claims, nil
}

func (p *Provider) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("invalid signing method")
	}
	return p.secret, nil
}
