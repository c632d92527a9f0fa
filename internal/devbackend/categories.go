package devbackend

import (
	"errors"
	"net/http"

	"github.com/Skotchmaster/foodcourt-admin/internal/logging"
	"github.com/Skotchmaster/foodcourt-admin/internal/transport"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func (s *Server) HandleListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories.list")

	out, err := s.Store.ListCategories(ctx)
	if err != nil {
		l.Error("list_categories_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load categories")
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) HandleGetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories.get")

	out, err := s.Store.GetCategory(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		l.Error("get_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load category")
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

	created, err := s.Store.CreateCategory(ctx, req)
	if err != nil {
		l.Error("create_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create category")
	}

	l.Info("create_category_success", "id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) HandlePatchCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories.patch")

	var req transport.CategoryPatch
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("patch_category_failed", "status", 400, "reason", "validation", "error", err)
		return err
	}

	updated, err := s.Store.PatchCategory(ctx, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		l.Error("patch_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update category")
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) HandleDeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories.delete")

	if err := s.Store.DeleteCategory(ctx, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		l.Error("delete_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete category")
	}
	return c.NoContent(http.StatusNoContent)
}
