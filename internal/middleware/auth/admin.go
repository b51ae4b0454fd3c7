package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func ClaimsFromToken(tokenStr string, secret []byte) (*AdminClaims, error) {
	var claims AdminClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}

// RequireAdmin accepts an HS256 bearer token with role "admin" from the
// Authorization or X-Authorization header.
func RequireAdmin(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				raw = bearer(c.Request().Header.Get("X-Authorization"))
			}
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing admin token")
			}

			claims, err := ClaimsFromToken(raw, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid admin token")
			}
			if claims.Role != "admin" {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}

			c.Set("user_id", claims.Subject)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}

func bearer(h string) string {
	h = strings.TrimSpace(h)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
