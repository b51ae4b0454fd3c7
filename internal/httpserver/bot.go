package httpserver

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const maxUpdateSize = 1 << 20

type BotHTTP struct {
	Svc *service.BotService
}

func (h *BotHTTP) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bot.settings")

	settings, messages, err := h.Svc.Settings(ctx)
	if err != nil {
		return fail(l, "get_bot_settings_error", err)
	}
	return writeJSON(c, http.StatusOK, map[string]any{"settings": settings, "messages": messages})
}

func (h *BotHTTP) UpdateSettings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bot.update_settings")

	var req transport.BotSettingsUpdate
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "update_bot_settings_error", err)
	}

	n, err := h.Svc.UpdateSettings(ctx, req)
	if err != nil {
		return fail(l, "update_bot_settings_error", err)
	}
	return success(c, map[string]any{"updated_count": n})
}

// Webhook always answers 200 so Telegram does not redeliver the update.
func (h *BotHTTP) Webhook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bot.webhook")

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxUpdateSize))
	if err != nil {
		l.Warn("webhook_read_error", "status", 200, "error", err)
		return writeJSON(c, http.StatusOK, map[string]any{"ok": true})
	}

	if status := h.Svc.HandleWebhook(ctx, body); status != "" {
		return writeJSON(c, http.StatusOK, map[string]any{"status": status})
	}
	return writeJSON(c, http.StatusOK, map[string]any{"ok": true})
}
