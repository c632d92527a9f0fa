package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireSession guards every admin view. The decision is re-derived from
// the session store on each request: an unchecked store is checked first
// (blocking this one request), then anyone without an identity is sent to
// the login route. A session expiring mid-use is only caught by the next
// backend 401, not here.
func (s *Server) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Session.Checked() {
			s.Session.Check(c.Request().Context())
		}
		if s.Session.Admin() == nil {
			return redirectToLogin(c)
		}
		return next(c)
	}
}

// redirectToLogin is the rendition of the hard redirect: API consumers get a
// 401 with the target route, browsers get a real navigation.
func redirectToLogin(c echo.Context) error {
	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"redirect": "/login"})
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}
