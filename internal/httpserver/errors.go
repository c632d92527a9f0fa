package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Skotchmaster/foodcourt-admin/internal/backend"
	"github.com/labstack/echo/v4"
)

// fail maps a backend error to a response. A 401 has already cleared local
// state through the client hook, so it becomes the login redirect; anything
// else is logged with full detail but surfaced only as the fixed
// per-operation message.
func fail(c echo.Context, l *slog.Logger, event, msg string, err error) error {
	if errors.Is(err, backend.ErrUnauthorized) {
		return redirectToLogin(c)
	}

	status := http.StatusBadGateway
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		status = apiErr.Status
	}

	l.Error(event, "status", status, "error", err)
	return echo.NewHTTPError(status, msg)
}
