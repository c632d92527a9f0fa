package httpserver

import (
	"context"
	"net/http"

	"github.com/Skotchmaster/foodcourt-admin/internal/logging"
	"github.com/Skotchmaster/foodcourt-admin/internal/models"
	"github.com/Skotchmaster/foodcourt-admin/internal/querycache"
	"github.com/Skotchmaster/foodcourt-admin/internal/transport"
	"github.com/labstack/echo/v4"
)

const resourceOrders = "orders"

func (s *Server) readOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	filter := ""
	if status != "" {
		filter = "status=" + string(status)
	}
	key := querycache.Key{Resource: resourceOrders, Filter: filter}
	return querycache.Read(ctx, s.Cache, key, func(ctx context.Context) ([]models.Order, error) {
		return s.Backend.ListOrders(ctx, status)
	})
}

func (s *Server) HandleListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list")

	status := models.OrderStatus(c.QueryParam("status"))
	if status != "" && !models.ValidStatus(status) {
		l.Warn("list_orders_failed", "status", 400, "reason", "unknown order status")
		return echo.NewHTTPError(http.StatusBadRequest, "unknown order status")
	}

	orders, err := s.readOrders(ctx, status)
	if err != nil {
		return fail(c, l, "list_orders_failed", "error loading orders", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (s *Server) HandleGetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.get")

	id := c.Param("id")
	key := querycache.Key{Resource: resourceOrders, Filter: "id=" + id}
	order, err := querycache.Read(ctx, s.Cache, key, func(ctx context.Context) (*models.Order, error) {
		return s.Backend.GetOrder(ctx, id)
	})
	if err != nil {
		return fail(c, l, "get_order_failed", "error loading order", err)
	}
	return c.JSON(http.StatusOK, order)
}

// HandleUpdateOrderStatus moves an order to any known status. Backwards
// moves are allowed so staff can correct a mis-set order.
func (s *Server) HandleUpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.update_status")

	id := c.Param("id")

	var req transport.StatusPayload
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_status_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if !models.ValidStatus(req.Status) {
		l.Warn("update_order_status_failed", "status", 400, "reason", "unknown order status")
		return echo.NewHTTPError(http.StatusBadRequest, "unknown order status")
	}

	updated, err := s.Backend.UpdateOrderStatus(ctx, id, req.Status)
	if err != nil {
		return fail(c, l, "update_order_status_failed", "error updating order", err)
	}

	s.Cache.Invalidate(resourceOrders)
	l.Info("update_order_status_success", "id", id, "order_status", req.Status)
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) HandleDeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.delete")

	id := c.Param("id")
	if err := s.Backend.DeleteOrder(ctx, id); err != nil {
		return fail(c, l, "delete_order_failed", "error deleting order", err)
	}

	s.Cache.Invalidate(resourceOrders)
	l.Info("delete_order_success", "id", id)
	return c.NoContent(http.StatusNoContent)
}
