package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/foodcourt-admin/internal/logging"
	"github.com/labstack/echo/v4"
)

// HandleUpload streams the submitted file through to the backend's upload
// endpoint and returns the stored URL resolved against the asset root.
func (s *Server) HandleUpload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload.create")

	fh, err := c.FormFile("file")
	if err != nil {
		l.Warn("upload_failed", "status", 400, "reason", "file field missing", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	f, err := fh.Open()
	if err != nil {
		l.Error("upload_failed", "status", 500, "reason", "cannot open upload", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "error uploading file")
	}
	defer f.Close()

	res, err := s.Backend.Upload(ctx, fh.Filename, f)
	if err != nil {
		return fail(c, l, "upload_failed", "error uploading file", err)
	}

	resolved := s.assetURL(&res.URL)
	l.Info("upload_success", "url", res.URL)
	return c.JSON(http.StatusCreated, echo.Map{"url": *resolved})
}

func (s *Server) HandleDeleteUpload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload.delete")

	filename := c.Param("filename")
	if err := s.Backend.DeleteUpload(ctx, filename); err != nil {
		return fail(c, l, "delete_upload_failed", "error deleting file", err)
	}

	l.Info("delete_upload_success", "filename", filename)
	return c.NoContent(http.StatusNoContent)
}
