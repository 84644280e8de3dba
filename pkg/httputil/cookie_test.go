package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndReadRefreshCookie(t *testing.T) {
	w := httptest.NewRecorder()
	SetRefreshCookie(w, "some-refresh-token")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	c := cookies[0]
	assert.Equal(t, RefreshCookieName, c.Name)
	assert.Equal(t, "some-refresh-token", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, RefreshCookieMaxAge, c.MaxAge)
	assert.True(t, c.HttpOnly)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	r.AddCookie(c)

	got, err := GetRefreshFromCookie(r)
	require.NoError(t, err)
	assert.Equal(t, "some-refresh-token", got)
}

func TestClearRefreshCookie(t *testing.T) {
	w := httptest.NewRecorder()
	ClearRefreshCookie(w)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, RefreshCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestGetRefreshFromCookie_Missing(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	_, err := GetRefreshFromCookie(r)
	assert.Error(t, err)
}

func TestGetBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"missing header", "", "", false},
		{"wrong scheme", "Basic abc", "", false},
		{"empty token", "Bearer ", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			got, err := GetBearerToken(r)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
