package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func sign(t *testing.T, role string, key []byte, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func run(t *testing.T, header, value string) (int, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequireAdmin(secret)(func(c echo.Context) error {
		require.Equal(t, "admin", c.Get("role"))
		return c.NoContent(http.StatusNoContent)
	})
	err := h(c)
	return rec.Code, err
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	return he.Code
}

func TestRequireAdmin(t *testing.T) {
	valid := sign(t, "admin", secret, time.Now().Add(time.Hour))

	code, err := run(t, echo.HeaderAuthorization, "Bearer "+valid)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, code)

	code, err = run(t, "X-Authorization", "Bearer "+valid)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, code)

	_, err = run(t, "", "")
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = run(t, echo.HeaderAuthorization, "Bearer "+sign(t, "user", secret, time.Now().Add(time.Hour)))
	require.Equal(t, http.StatusForbidden, statusOf(t, err))

	_, err = run(t, echo.HeaderAuthorization, "Bearer "+sign(t, "admin", []byte("other"), time.Now().Add(time.Hour)))
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = run(t, echo.HeaderAuthorization, "Bearer "+sign(t, "admin", secret, time.Now().Add(-time.Hour)))
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}
