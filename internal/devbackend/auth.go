package devbackend

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Skotchmaster/foodcourt-admin/internal/logging"
	"github.com/Skotchmaster/foodcourt-admin/internal/transport"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionCookie = "admin_session"

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *Server) signSession(admin *Admin) (string, time.Time, error) {
	exp := time.Now().Add(24 * time.Hour)
	claims := sessionClaims{
		Email: admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
	return signed, exp, err
}

func (s *Server) parseSession(raw string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// RequireAdmin keeps everything behind it 401 unless the session cookie
// carries a valid token. The claims end up in the echo context.
func (s *Server) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ck, err := c.Cookie(sessionCookie)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
		}
		claims, err := s.parseSession(ck.Value)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
		}
		c.Set("session", claims)
		return next(c)
	}
}

func (s *Server) HandleLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	admin, err := s.Store.AdminByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			l.Error("login_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot load admin")
		}
		l.Warn("login_failed", "status", 401, "reason", "unknown email")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		l.Warn("login_failed", "status", 401, "reason", "bad password")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	signed, exp, err := s.signSession(admin)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create session")
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    signed,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	l.Info("login_successful", "email", admin.Email)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged in",
		"email":   admin.Email,
	})
}

func (s *Server) HandleLogout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (s *Server) HandleMe(c echo.Context) error {
	claims := c.Get("session").(*sessionClaims)
	return c.JSON(http.StatusOK, echo.Map{
		"id":    claims.Subject,
		"email": claims.Email,
	})
}
