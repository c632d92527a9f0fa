package devbackend

import (
	"errors"
	"net/http"

	"github.com/Skotchmaster/foodcourt-admin/internal/logging"
	"github.com/Skotchmaster/foodcourt-admin/internal/models"
	"github.com/Skotchmaster/foodcourt-admin/internal/transport"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func (s *Server) HandleListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list")

	status := c.QueryParam("status")
	if status != "" && !models.ValidStatus(models.OrderStatus(status)) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown order status")
	}

	out, err := s.Store.ListOrders(ctx, status)
	if err != nil {
		l.Error("list_orders_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load orders")
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) HandleGetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.get")

	out, err := s.Store.GetOrder(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load order")
	}
	return c.JSON(http.StatusOK, out)
}

// HandleCreateOrder is the customer-side intake; new orders always start in
// NEW.
func (s *Server) HandleCreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("create_order_failed", "status", 400, "reason", "validation", "error", err)
		return err
	}

	created, err := s.Store.CreateOrder(ctx, req)
	if err != nil {
		l.Error("create_order_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create order")
	}

	l.Info("create_order_success", "id", created.ID, "total", created.Total)
	return c.JSON(http.StatusCreated, created)
}

// HandleUpdateOrderStatus accepts any known status, whatever the current
// one is.
func (s *Server) HandleUpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.update_status")

	var req transport.StatusPayload
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_status_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if !models.ValidStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown order status")
	}

	updated, err := s.Store.UpdateOrderStatus(ctx, c.Param("id"), string(req.Status))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("update_order_status_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update order")
	}

	l.Info("update_order_status_success", "id", updated.ID, "order_status", updated.Status)
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) HandleDeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.delete")

	if err := s.Store.DeleteOrder(ctx, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("delete_order_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete order")
	}
	return c.NoContent(http.StatusNoContent)
}
