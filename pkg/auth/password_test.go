package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.True(t, CheckPasswordHash("Sup3rSecret", hash))
	assert.False(t, CheckPasswordHash("sup3rsecret", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	b, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"ok", "Pass1234", true},
		{"long mixed", "CorrectHorse9", true},
		{"too short", "Pa1x", false},
		{"no uppercase", "password1", false},
		{"no lowercase", "PASSWORD1", false},
		{"no digit", "Passwords", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tc.password)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
