package devbackend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Skotchmaster/foodcourt-admin/internal/logging"
	"github.com/Skotchmaster/foodcourt-admin/internal/transport"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func (s *Server) HandleListFoodItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "food_items.list")

	var popular *bool
	if raw := c.QueryParam("popular"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "popular must be a boolean")
		}
		popular = &v
	}

	out, err := s.Store.ListFoodItems(ctx, c.QueryParam("categoryId"), popular)
	if err != nil {
		l.Error("list_food_items_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load food items")
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) HandleGetFoodItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "food_items.get")

	out, err := s.Store.GetFoodItem(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "food item not found")
		}
		l.Error("get_food_item_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load food item")
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
	if err := c.Validate(&req); err != nil {
		l.Warn("create_food_item_failed", "status", 400, "reason", "validation", "error", err)
		return err
	}

	created, err := s.Store.CreateFoodItem(ctx, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "category does not exist")
		}
		l.Error("create_food_item_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create food item")
	}

	l.Info("create_food_item_success", "id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) HandlePatchFoodItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "food_items.patch")

	var req transport.FoodItemPatch
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_food_item_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("patch_food_item_failed", "status", 400, "reason", "validation", "error", err)
		return err
	}

	updated, err := s.Store.PatchFoodItem(ctx, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "food item not found")
		}
		l.Error("patch_food_item_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update food item")
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) HandleDeleteFoodItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "food_items.delete")

	if err := s.Store.DeleteFoodItem(ctx, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "food item not found")
		}
		l.Error("delete_food_item_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete food item")
	}
	return c.NoContent(http.StatusNoContent)
}
