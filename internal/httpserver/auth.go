package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/foodcourt-admin/internal/logging"
	"github.com/Skotchmaster/foodcourt-admin/internal/transport"
	"github.com/labstack/echo/v4"
)

func (s *Server) HandleLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "validation", "error", err)
		return err
	}

	if err := s.Session.Login(ctx, req.Email, req.Password); err != nil {
		l.Warn("login_failed", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	l.Info("login_successful")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged in",
		"email":   req.Email,
	})
}

func (s *Server) HandleLogout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	// logout is optimistic: the store clears local identity whatever the
	// backend said, and cached reads from the old session go with it
	if err := s.Session.Logout(ctx); err != nil {
		l.Warn("logout_backend_failed", "error", err)
	}
	s.Cache.Clear()

	l.Info("logout_successful")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (s *Server) HandleMe(c echo.Context) error {
	// the guard already ensured an identity exists
	return c.JSON(http.StatusOK, s.Session.Admin())
}
