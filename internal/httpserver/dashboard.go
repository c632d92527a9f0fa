package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/foodcourt-admin/internal/backend"
	"github.com/Skotchmaster/foodcourt-admin/internal/logging"
	"github.com/Skotchmaster/foodcourt-admin/internal/models"
	"github.com/labstack/echo/v4"
)

// HandleDashboard summarizes the three collections: totals plus an order
// count per status. It reads through the same cache keys the list views use.
func (s *Server) HandleDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard")

	categories, err := s.readCategories(ctx)
	if err != nil {
		return fail(c, l, "dashboard_failed", "error loading dashboard", err)
	}

	foodItems, err := s.readFoodItems(ctx, backend.FoodItemFilter{})
	if err != nil {
		return fail(c, l, "dashboard_failed", "error loading dashboard", err)
	}

	orders, err := s.readOrders(ctx, "")
	if err != nil {
		return fail(c, l, "dashboard_failed", "error loading dashboard", err)
	}

	byStatus := make(map[models.OrderStatus]int, len(models.OrderStatuses))
	for _, st := range models.OrderStatuses {
		byStatus[st] = 0
	}
	for _, o := range orders {
		byStatus[o.Status]++
	}

	return c.JSON(http.StatusOK, echo.Map{
		"categories":     len(categories),
		"foodItems":      len(foodItems),
		"orders":         len(orders),
		"ordersByStatus": byStatus,
	})
}
