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

const resourceCategories = "categories"

func (s *Server) readCategories(ctx context.Context) ([]models.Category, error) {
	key := querycache.Key{Resource: resourceCategories}
	return querycache.Read(ctx, s.Cache, key, func(ctx context.Context) ([]models.Category, error) {
		return s.Backend.ListCategories(ctx)
	})
}

func (s *Server) HandleListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories.list")

	items, err := s.readCategories(ctx)
	if err != nil {
		return fail(c, l, "list_categories_failed", "error loading categories", err)
	}

	out := make([]models.Category, len(items))
	for i, cat := range items {
		cat.Image = s.assetURL(cat.Image)
		out[i] = cat
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) HandleCreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories.create")

	var req transport.CategoryPayload
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("create_category_failed", "status", 400, "reason", "validation", "error", err)
		return err
	}

	created, err := s.Backend.CreateCategory(ctx, req)
	if err != nil {
		return fail(c, l, "create_category_failed", "error creating category", err)
	}

	s.Cache.Invalidate(resourceCategories)
	l.Info("create_category_success", "id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) HandleUpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories.update")

	id := c.Param("id")

	var req transport.CategoryPatch
	if err := c.Bind(&req); err != nil {
		l.Warn("update_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("update_category_failed", "status", 400, "reason", "validation", "error", err)
		return err
	}

	updated, err := s.Backend.UpdateCategory(ctx, id, req)
	if err != nil {
		return fail(c, l, "update_category_failed", "error updating category", err)
	}

	s.Cache.Invalidate(resourceCategories)
	l.Info("update_category_success", "id", id)
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) HandleDeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories.delete")

	id := c.Param("id")
	if err := s.Backend.DeleteCategory(ctx, id); err != nil {
		return fail(c, l, "delete_category_failed", "error deleting category", err)
	}

	s.Cache.Invalidate(resourceCategories)
	l.Info("delete_category_success", "id", id)
	return c.NoContent(http.StatusNoContent)
}
