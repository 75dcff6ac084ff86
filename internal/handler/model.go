package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jaeyun/matzip-map/internal/blob"
)

// maxModelBytes caps uploaded 3D model files at 10MB.
const maxModelBytes = 10 << 20

// ModelHandler stores and serves uploaded .spz model files.
type ModelHandler struct {
	Store blob.Store
}

func NewModelHandler(s blob.Store) *ModelHandler { return &ModelHandler{Store: s} }

// Upload serves POST /api/upload-model. The multipart field is named
// "model"; only .spz files up to 10MB are accepted.
func (h *ModelHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("model")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No file provided"})
	}
	if file.Size > maxModelBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "File size exceeds 10MB limit"})
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".spz") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Only SPZ files are allowed"})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "File upload failed", "details": err.Error()})
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "File upload failed", "details": err.Error()})
	}

	// Millisecond prefix keeps names unique across same-named uploads.
	fileName := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), file.Filename)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()
	meta := blob.Metadata{OriginalName: file.Filename, Size: file.Size, UploadedAt: time.Now().UTC()}
	if err := h.Store.Put(ctx, fileName, data, meta); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "File upload failed", "details": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"fileName":     fileName,
		"fileUrl":      "/api/models/" + fileName,
		"originalName": file.Filename,
		"size":         file.Size,
	})
}

// Download serves GET /api/models/:fileName as an attachment. Models
// never change once stored, hence the year-long cache header.
func (h *ModelHandler) Download(c echo.Context) error {
	name := c.Param("fileName")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()
	data, meta, err := h.Store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "File not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "File serving failed", "details": err.Error()})
	}

	download := meta.OriginalName
	if download == "" {
		download = name
	}
	h2 := c.Response().Header()
	h2.Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(download))
	h2.Set("Cache-Control", "public, max-age=31536000")
	return c.Blob(http.StatusOK, "application/octet-stream", data)
}
