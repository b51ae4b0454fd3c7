package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type ContentHTTP struct {
	Svc *service.ContentService
}

func (h *ContentHTTP) GetBlocks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "content.blocks")

	blocks, err := h.Svc.Blocks(ctx, c.QueryParam("page"))
	if err != nil {
		return fail(l, "list_blocks_error", err)
	}
	return writeJSON(c, http.StatusOK, blocks)
}

func (h *ContentHTTP) CreateBlock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "content.create_block")

	var req transport.PageBlockRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "create_block_error", err)
	}

	b, err := h.Svc.CreateBlock(ctx, req)
	if err != nil {
		return fail(l, "create_block_error", err)
	}
	return writeJSON(c, http.StatusCreated, b)
}

func (h *ContentHTTP) UpdateBlock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "content.update_block")

	id, err := queryID(c, "id")
	if err != nil {
		return fail(l, "update_block_error", err)
	}
	var req transport.PageBlockRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "update_block_error", err)
	}

	if err := h.Svc.UpdateBlock(ctx, id, req); err != nil {
		return fail(l, "update_block_error", err)
	}
	return success(c, map[string]any{"message": "Content updated"})
}

func (h *ContentHTTP) HideBlock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "content.hide_block")

	id, err := queryID(c, "id")
	if err != nil {
		return fail(l, "hide_block_error", err)
	}
	if err := h.Svc.HideBlock(ctx, id); err != nil {
		return fail(l, "hide_block_error", err)
	}
	return success(c, map[string]any{"message": "Content hidden"})
}

func (h *ContentHTTP) GetSiteContent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "site_content.get")

	items, err := h.Svc.SiteContent(ctx, c.QueryParam("section"))
	if err != nil {
		return fail(l, "get_site_content_error", err)
	}
	return writeJSON(c, http.StatusOK, items)
}

func (h *ContentHTTP) UpdateSiteContent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "site_content.update")

	body := map[string]any{}
	if err := decodeJSON(c, &body); err != nil {
		return badBody(l, "update_site_content_error", err)
	}

	n, err := h.Svc.UpdateSiteContent(ctx, body)
	if err != nil {
		return fail(l, "update_site_content_error", err)
	}
	return success(c, map[string]any{
		"message":       "Content updated",
		"updated_keys":  len(body),
		"updated_count": n,
	})
}

func (h *ContentHTTP) GetSiteTexts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "site_texts.get")

	items, err := h.Svc.SiteTexts(ctx, c.QueryParam("section"))
	if err != nil {
		return fail(l, "get_site_texts_error", err)
	}
	return writeJSON(c, http.StatusOK, items)
}

func (h *ContentHTTP) UpdateSiteTexts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "site_texts.update")

	body := map[string]any{}
	if err := decodeJSON(c, &body); err != nil {
		return badBody(l, "update_site_texts_error", err)
	}

	n, err := h.Svc.UpdateSiteTexts(ctx, body)
	if err != nil {
		return fail(l, "update_site_texts_error", err)
	}
	return success(c, map[string]any{"message": "Texts updated", "updated_count": n})
}

func (h *ContentHTTP) GetTheme(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "theme.get")

	theme, err := h.Svc.Theme(ctx)
	if err != nil {
		return fail(l, "get_theme_error", err)
	}
	return writeJSON(c, http.StatusOK, theme)
}

func (h *ContentHTTP) UpdateTheme(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "theme.update")

	body := map[string]any{}
	if err := decodeJSON(c, &body); err != nil {
		return badBody(l, "update_theme_error", err)
	}

	n, err := h.Svc.UpdateTheme(ctx, body)
	if err != nil {
		return fail(l, "update_theme_error", err)
	}
	return success(c, map[string]any{"message": "Theme updated", "updated_count": n})
}
