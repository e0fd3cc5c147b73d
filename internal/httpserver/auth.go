package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mcastellanos/tienda/internal/events"
	"github.com/mcastellanos/tienda/internal/logging"
	"github.com/mcastellanos/tienda/internal/service"
)

type AuthHTTP struct {
	Svc    *service.AuthService
	Events events.Publisher
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	result, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Events, events.TopicUserEvents, fmt.Sprint(result.UserID), map[string]any{
		"type":   "user_logged_in",
		"userID": result.UserID,
		"email":  result.Email,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": result.AccessToken,
		"token_type":   "bearer",
	})
}
