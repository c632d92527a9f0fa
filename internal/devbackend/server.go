// Package devbackend is a development stand-in for the food-ordering REST
// backend the admin panel talks to. It implements the same wire contract
// over gorm so the panel can run locally and the integration tests have a
// real peer. It is not the production backend.
package devbackend

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Server struct {
	Store     *Store
	JWTSecret []byte
	UploadDir string
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Static("/uploads", s.UploadDir)

	api := e.Group("/api")

	// public: the customer app reads the menu and places orders
	api.POST("/auth/login", s.HandleLogin)
	api.GET("/categories", s.HandleListCategories)
	api.GET("/categories/:id", s.HandleGetCategory)
	api.GET("/food-items", s.HandleListFoodItems)
	api.GET("/food-items/:id", s.HandleGetFoodItem)
	api.POST("/orders", s.HandleCreateOrder)

	admin := api.Group("", s.RequireAdmin)
	admin.GET("/auth/me", s.HandleMe)
	admin.POST("/auth/logout", s.HandleLogout)

	admin.POST("/categories", s.HandleCreateCategory)
	admin.PATCH("/categories/:id", s.HandlePatchCategory)
	admin.DELETE("/categories/:id", s.HandleDeleteCategory)

	admin.POST("/food-items", s.HandleCreateFoodItem)
	admin.PATCH("/food-items/:id", s.HandlePatchFoodItem)
	admin.DELETE("/food-items/:id", s.HandleDeleteFoodItem)

	admin.GET("/orders", s.HandleListOrders)
	admin.GET("/orders/:id", s.HandleGetOrder)
	admin.PATCH("/orders/:id/status", s.HandleUpdateOrderStatus)
	admin.DELETE("/orders/:id", s.HandleDeleteOrder)

	admin.POST("/upload", s.HandleUpload)
	admin.DELETE("/upload/:filename", s.HandleDeleteUpload)
}
