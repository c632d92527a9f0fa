package httpserver

import (
	"net/http"
	"strings"

	"github.com/Skotchmaster/foodcourt-admin/internal/backend"
	"github.com/Skotchmaster/foodcourt-admin/internal/querycache"
	"github.com/Skotchmaster/foodcourt-admin/internal/session"
	"github.com/labstack/echo/v4"
)

// Server wires the admin views together: every read goes through the cache,
// every mutation goes straight to the backend and invalidates the owning
// collection.
type Server struct {
	Backend   *backend.Client
	Session   *session.Store
	Cache     *querycache.Cache
	AssetRoot string
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/login", s.HandleLogin)

	p := e.Group("", s.RequireSession)
	p.GET("/", s.HandleDashboard)
	p.GET("/me", s.HandleMe)
	p.POST("/logout", s.HandleLogout)

	p.GET("/categories", s.HandleListCategories)
	p.POST("/categories", s.HandleCreateCategory)
	p.PATCH("/categories/:id", s.HandleUpdateCategory)
	p.DELETE("/categories/:id", s.HandleDeleteCategory)

	p.GET("/food-items", s.HandleListFoodItems)
	p.POST("/food-items", s.HandleCreateFoodItem)
	p.PATCH("/food-items/:id", s.HandleUpdateFoodItem)
	p.DELETE("/food-items/:id", s.HandleDeleteFoodItem)

	p.GET("/orders", s.HandleListOrders)
	p.GET("/orders/:id", s.HandleGetOrder)
	p.PATCH("/orders/:id/status", s.HandleUpdateOrderStatus)
	p.DELETE("/orders/:id", s.HandleDeleteOrder)

	p.POST("/upload", s.HandleUpload)
	p.DELETE("/upload/:filename", s.HandleDeleteUpload)
}

// assetURL resolves a relative image URL against the asset root. Absolute
// URLs pass through untouched.
func (s *Server) assetURL(image *string) *string {
	if image == nil || *image == "" {
		return image
	}
	u := *image
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return image
	}
	resolved := strings.TrimRight(s.AssetRoot, "/") + "/" + strings.TrimLeft(u, "/")
	return &resolved
}
