package domain

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func TestParseProvider(t *testing.T) {
	cases := []struct {
		in      string
		want    Provider
		wantErr bool
	}{
		{"google", ProviderGoogle, false},
		{"GOOGLE", ProviderGoogle, false},
		{"kakao", ProviderKakao, false},
		{"naver", ProviderNaver, false},
		{"github", ProviderGithub, false},
		{"local", "", true},
		{"facebook", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseProvider(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMapClaims_Google(t *testing.T) {
	fu, err := ProviderGoogle.MapClaims(map[string]interface{}{
		"sub":   "1098765",
		"email": "g@x.com",
		"name":  "Gee",
	})
	require.NoError(t, err)
	assert.Equal(t, "1098765", fu.SubjectID)
	assert.Equal(t, "g@x.com", fu.Email)
	assert.Equal(t, "Gee", fu.FullName)
}

func TestMapClaims_KakaoNestedAccount(t *testing.T) {
	fu, err := ProviderKakao.MapClaims(map[string]interface{}{
		"id": float64(42),
		"kakao_account": map[string]interface{}{
			"email": "k@x.com",
		},
		"properties": map[string]interface{}{
			"nickname": "Kay",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "42", fu.SubjectID)
	assert.Equal(t, "k@x.com", fu.Email)
	assert.Equal(t, "Kay", fu.FullName)
}

func TestMapClaims_NaverResponseWrapper(t *testing.T) {
	fu, err := ProviderNaver.MapClaims(map[string]interface{}{
		"response": map[string]interface{}{
			"id":    "naver-77",
			"email": "n@x.com",
			"name":  "En",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "naver-77", fu.SubjectID)
	assert.Equal(t, "n@x.com", fu.Email)
}

func TestMapClaims_GithubLoginFallback(t *testing.T) {
	fu, err := ProviderGithub.MapClaims(map[string]interface{}{
		"id":    float64(314),
		"email": "h@x.com",
		"login": "octo",
	})
	require.NoError(t, err)
	assert.Equal(t, "314", fu.SubjectID)
	assert.Equal(t, "octo", fu.FullName)
}

func TestMapClaims_MissingFields(t *testing.T) {
	_, err := ProviderGoogle.MapClaims(map[string]interface{}{"email": "g@x.com"})
	assert.Error(t, err, "missing subject id")

	_, err = ProviderGoogle.MapClaims(map[string]interface{}{"sub": "1"})
	assert.Error(t, err, "missing email")

	_, err = ProviderNaver.MapClaims(map[string]interface{}{})
	assert.Error(t, err, "missing response wrapper")

	_, err = ProviderLocal.MapClaims(map[string]interface{}{})
	assert.Error(t, err, "LOCAL is not a federated provider")
}

func TestSubjectID(t *testing.T) {
	local := &User{Email: "a@x.com", Provider: ProviderLocal}
	assert.Equal(t, "a@x.com", local.SubjectID())

	federated := &User{
		Email:       "g@x.com",
		Provider:    ProviderGoogle,
		FederatedID: nullString("google-sub"),
	}
	assert.Equal(t, "google-sub", federated.SubjectID())
}
