package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/officecorner/hr-system/internal/core/ports"
)

// UploadHandler proxies multipart file uploads to external object storage.
type UploadHandler struct {
	storage ports.FileStorage
	logger  zerolog.Logger
}

func NewUploadHandler(storage ports.FileStorage, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{storage: storage, logger: logger}
}

// maxUploadBytes caps a single profile image or attachment.
const maxUploadBytes = 10 << 20

// Upload handles POST /api/upload with a multipart "file" field and returns
// the stored file's public URL.
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file field is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "file exceeds 10MB limit")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer src.Close()

	url, err := h.storage.Upload(c.Request().Context(), fileHeader.Filename, src)
	if err != nil {
		h.logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("upload failed")
		return echo.NewHTTPError(http.StatusBadGateway, "upload failed")
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
