package devbackend

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Skotchmaster/foodcourt-admin/internal/logging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HandleUpload stores the submitted file under a uuid name and returns a
// relative URL the caller resolves against its asset root.
func (s *Server) HandleUpload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload.create")

	fh, err := c.FormFile("file")
	if err != nil {
		l.Warn("upload_failed", "status", 400, "reason", "file field missing", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	src, err := fh.Open()
	if err != nil {
		l.Error("upload_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read upload")
	}
	defer src.Close()

	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		l.Error("upload_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store upload")
	}

	name := uuid.NewString() + filepath.Ext(fh.Filename)
	dst, err := os.Create(filepath.Join(s.UploadDir, name))
	if err != nil {
		l.Error("upload_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store upload")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		l.Error("upload_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store upload")
	}

	l.Info("upload_success", "filename", name, "size", fh.Size)
	return c.JSON(http.StatusCreated, echo.Map{"url": "/uploads/" + name})
}

func (s *Server) HandleDeleteUpload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload.delete")

	// Base strips any path tricks; only files directly under the upload dir
	// can go
	name := filepath.Base(c.Param("filename"))
	if name == "." || name == string(filepath.Separator) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid filename")
	}

	if err := os.Remove(filepath.Join(s.UploadDir, name)); err != nil {
		if os.IsNotExist(err) {
			return echo.NewHTTPError(http.StatusNotFound, "file not found")
		}
		l.Error("delete_upload_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete file")
	}
	return c.NoContent(http.StatusNoContent)
}
