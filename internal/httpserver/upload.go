package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type UploadHTTP struct {
	Svc *service.UploadService
}

func (h *UploadHTTP) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload.image")

	var req transport.UploadRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "upload_image_error", err)
	}

	url, err := h.Svc.Upload(ctx, req.Image)
	if err != nil {
		return fail(l, "upload_image_error", err)
	}

	l.Info("upload_image_success", "url", url)
	return writeJSON(c, http.StatusOK, map[string]any{"url": url})
}
