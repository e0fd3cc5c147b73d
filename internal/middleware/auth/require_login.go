package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mcastellanos/tienda/internal/logging"
	"github.com/mcastellanos/tienda/internal/service/token"
)

const userIDKey = "userID"

type Middleware struct {
	Tokens *token.Service
}

// RequireLogin extracts the bearer token from the Authorization header and
// verifies it on every request. Any failure, including an absent token, is a
// 401 with a WWW-Authenticate challenge.
func (m *Middleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if raw == "" {
			return m.unauthorized(c, "missing bearer token")
		}

		userID, err := m.Tokens.Verify(raw)
		if err != nil {
			return m.unauthorized(c, "invalid token")
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

func (m *Middleware) unauthorized(c echo.Context, reason string) error {
	l := logging.FromContext(c.Request().Context()).With("middleware", "require_login")
	l.Warn("auth_failed", "status", 401, "reason", reason)

	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

// UserID returns the authenticated subject set by RequireLogin.
func UserID(c echo.Context) (uint, error) {
	id, ok := c.Get(userIDKey).(uint)
	if !ok {
		return 0, errors.New("unauthorized")
	}
	return id, nil
}
