package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-secret")

func runJWT(t *testing.T, header string) (string, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/import", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var seen string
	err := JWT(testKey)(func(c echo.Context) error {
		seen, _ = c.Get(UsernameKey).(string)
		return nil
	})(c)
	return seen, err
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "want *echo.HTTPError, got %v", err)
	return he.Code
}

func TestJWT_ValidToken(t *testing.T) {
	token, err := IssueToken("ana", testKey, time.Hour)
	require.NoError(t, err)

	for _, header := range []string{"Bearer " + token, token} {
		user, err := runJWT(t, header)
		require.NoError(t, err)
		assert.Equal(t, "ana", user)
	}
}

func TestJWT_Rejections(t *testing.T) {
	expired, err := IssueToken("ana", testKey, -time.Minute)
	require.NoError(t, err)
	wrongKey, err := IssueToken("ana", []byte("other"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized},
		{"garbage", "Bearer not.a.token", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runJWT(t, tt.header)
			require.Error(t, err)
			assert.Equal(t, tt.status, statusOf(t, err))
		})
	}
}
