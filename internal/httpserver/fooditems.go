package httpserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Skotchmaster/foodcourt-admin/internal/backend"
	"github.com/Skotchmaster/foodcourt-admin/internal/logging"
	"github.com/Skotchmaster/foodcourt-admin/internal/models"
	"github.com/Skotchmaster/foodcourt-admin/internal/querycache"
	"github.com/Skotchmaster/foodcourt-admin/internal/transport"
	"github.com/labstack/echo/v4"
)

const resourceFoodItems = "food-items"

func (s *Server) readFoodItems(ctx context.Context, filter backend.FoodItemFilter) ([]models.FoodItem, error) {
	key := querycache.Key{Resource: resourceFoodItems, Filter: filter.Query().Encode()}
	return querycache.Read(ctx, s.Cache, key, func(ctx context.Context) ([]models.FoodItem, error) {
		return s.Backend.ListFoodItems(ctx, filter)
	})
}

func (s *Server) HandleListFoodItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "food_items.list")

	filter := backend.FoodItemFilter{CategoryID: c.QueryParam("categoryId")}
	if raw := c.QueryParam("popular"); raw != "" {
		popular, err := strconv.ParseBool(raw)
		if err != nil {
			l.Warn("list_food_items_failed", "status", 400, "reason", "bad popular flag")
			return echo.NewHTTPError(http.StatusBadRequest, "popular must be a boolean")
		}
		filter.Popular = &popular
	}

	items, err := s.readFoodItems(ctx, filter)
	if err != nil {
		return fail(c, l, "list_food_items_failed", "error loading food items", err)
	}

	out := make([]models.FoodItem, len(items))
	for i, item := range items {
		item.Image = s.assetURL(item.Image)
		out[i] = item
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) HandleCreateFoodItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "food_items.create")

	var req transport.FoodItemPayload
	if err := c.Bind(&req); err != nil {
		l.Warn("create_food_item_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	// categoryId is required by the validate tag: an unset category never
	// reaches the backend
	if err := c.Validate(&req); err != nil {
		l.Warn("create_food_item_failed", "status", 400, "reason", "validation", "error", err)
		return err
	}

	created, err := s.Backend.CreateFoodItem(ctx, req)
	if err != nil {
		return fail(c, l, "create_food_item_failed", "error creating food item", err)
	}

	s.Cache.Invalidate(resourceFoodItems)
	l.Info("create_food_item_success", "id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) HandleUpdateFoodItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "food_items.update")

	id := c.Param("id")

	var req transport.FoodItemPatch
	if err := c.Bind(&req); err != nil {
		l.Warn("update_food_item_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("update_food_item_failed", "status", 400, "reason", "validation", "error", err)
		return err
	}

	updated, err := s.Backend.UpdateFoodItem(ctx, id, req)
	if err != nil {
		return fail(c, l, "update_food_item_failed", "error updating food item", err)
	}

	s.Cache.Invalidate(resourceFoodItems)
	l.Info("update_food_item_success", "id", id)
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) HandleDeleteFoodItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "food_items.delete")

	id := c.Param("id")
	if err := s.Backend.DeleteFoodItem(ctx, id); err != nil {
		return fail(c, l, "delete_food_item_failed", "error deleting food item", err)
	}

	s.Cache.Invalidate(resourceFoodItems)
	l.Info("delete_food_item_success", "id", id)
	return c.NoContent(http.StatusNoContent)
}
