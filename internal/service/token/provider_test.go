package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travel-planner/backend/internal/domain"
)

const testSecret = "test-secret-key-for-unit-tests-only"

func newTestProvider() *Provider {
	return NewProvider(testSecret, 30*time.Minute, 14*24*time.Hour)
}

func TestCreateAccessToken_RoundTrip(t *testing.T) {
	p := newTestProvider()

	tokenString, err := p.CreateAccessToken("a@x.com", domain.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	assert.True(t, p.Validate(tokenString))

	subject, role, err := p.Authentication(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
	assert.Equal(t, domain.RoleUser, role)
}

func TestCreateRefreshToken_CarriesSubject(t *testing.T) {
	p := newTestProvider()

	tokenString, err := p.CreateRefreshToken("109876543210", domain.RoleAdmin)
	require.NoError(t, err)

	subject, role, err := p.Authentication(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "109876543210", subject)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestValidate_FailsClosed(t *testing.T) {
	p := newTestProvider()

	cases := []struct {
		name        string
		tokenString string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ4In0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, p.Validate(tc.tokenString))
		})
	}
}

func TestValidate_RejectsForeignSignature(t *testing.T) {
	p := newTestProvider()
	other := NewProvider("some-other-secret", 30*time.Minute, 14*24*time.Hour)

	tokenString, err := other.CreateAccessToken("a@x.com", domain.RoleUser)
	require.NoError(t, err)

	assert.False(t, p.Validate(tokenString))

	_, _, err = p.Authentication(tokenString)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestValidate_RejectsExpired(t *testing.T) {
	expired := NewProvider(testSecret, -time.Minute, -time.Minute)

	tokenString, err := expired.CreateAccessToken("a@x.com", domain.RoleUser)
	require.NoError(t, err)

	p := newTestProvider()
	assert.False(t, p.Validate(tokenString))

	// An expired token still yields its subject: logout needs it.
	subject, _, err := p.Authentication(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestExpiration_RemainingWindow(t *testing.T) {
	p := newTestProvider()

	tokenString, err := p.CreateAccessToken("a@x.com", domain.RoleUser)
	require.NoError(t, err)

	remaining, err := p.Expiration(tokenString)
	require.NoError(t, err)
	assert.Greater(t, remaining, 29*time.Minute)
	assert.LessOrEqual(t, remaining, 30*time.Minute)
}

func TestExpiration_ExpiredIsNonPositive(t *testing.T) {
	expired := NewProvider(testSecret, -time.Minute, -time.Minute)

	tokenString, err := expired.CreateAccessToken("a@x.com", domain.RoleUser)
	require.NoError(t, err)

	p := newTestProvider()
	remaining, err := p.Expiration(tokenString)
	require.NoError(t, err)
	assert.LessOrEqual(t, remaining, time.Duration(0))
}

func TestExpiration_UnparseableToken(t *testing.T) {
	p := newTestProvider()

	_, err := p.Expiration("garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
