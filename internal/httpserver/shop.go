package httpserver

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/export"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type ShopHTTP struct {
	Svc       *service.ShopService
	Analytics *service.AnalyticsService
}

func (h *ShopHTTP) OpenCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.open")

	var req transport.CartRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "open_cart_error", err)
	}

	cart, err := h.Svc.OpenCart(ctx, req)
	if err != nil {
		return fail(l, "open_cart_error", err)
	}
	return writeJSON(c, http.StatusOK, map[string]any{"cart_id": cart.ID})
}

func (h *ShopHTTP) AddCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	var req transport.CartItemRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "add_cart_item_error", err)
	}

	item, err := h.Svc.AddItem(ctx, req)
	if err != nil {
		return fail(l, "add_cart_item_error", err)
	}
	return success(c, map[string]any{"item_id": item.ID, "quantity": item.Quantity})
}

func (h *ShopHTTP) CartItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.items")

	cartID, err := queryID(c, "cart_id")
	if err != nil {
		return fail(l, "cart_items_error", err)
	}

	resp, err := h.Svc.CartItems(ctx, cartID)
	if err != nil {
		return fail(l, "cart_items_error", err)
	}
	return writeJSON(c, http.StatusOK, resp)
}

func (h *ShopHTTP) RemoveCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	itemID, err := queryID(c, "item_id")
	if err != nil {
		return fail(l, "remove_cart_item_error", err)
	}
	if err := h.Svc.RemoveItem(ctx, itemID); err != nil {
		return fail(l, "remove_cart_item_error", err)
	}
	return success(c, nil)
}

func (h *ShopHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	var req transport.CheckoutRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "cart_checkout_error", err)
	}

	cart, err := h.Svc.Checkout(ctx, req)
	if err != nil {
		return fail(l, "cart_checkout_error", err)
	}

	l.Info("cart_checkout_success", "cart_id", cart.ID)
	return success(c, nil)
}

func (h *ShopHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.create")

	var req transport.OrderRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "create_order_error", err)
	}

	o, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		return fail(l, "create_order_error", err)
	}

	l.Info("create_order_success", "order_id", o.ID)
	return success(c, map[string]any{"order_id": o.ID})
}

func (h *ShopHTTP) Orders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list")

	orders, err := h.Svc.Orders(ctx)
	if err != nil {
		return fail(l, "list_orders_error", err)
	}
	return writeJSON(c, http.StatusOK, map[string]any{"orders": orders})
}

func (h *ShopHTTP) ExportOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.export")

	var buf bytes.Buffer
	if err := h.Svc.ExportOrders(ctx, &buf); err != nil {
		return fail(l, "export_orders_error", err)
	}

	c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.xlsx"`)
	return c.Blob(http.StatusOK, export.XLSXContentType, buf.Bytes())
}

func (h *ShopHTTP) SetOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.status")

	var req transport.OrderStatusRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "order_status_error", err)
	}

	if err := h.Svc.SetOrderStatus(ctx, req); err != nil {
		return fail(l, "order_status_error", err)
	}
	return success(c, nil)
}

func (h *ShopHTTP) Notifications(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notifications.list")

	items, err := h.Svc.Notifications(ctx)
	if err != nil {
		return fail(l, "list_notifications_error", err)
	}
	return writeJSON(c, http.StatusOK, map[string]any{"notifications": items})
}

func (h *ShopHTTP) MarkNotificationRead(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notifications.read")

	var req transport.IDRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "notification_read_error", err)
	}

	if err := h.Svc.MarkNotificationRead(ctx, uint(req.ID)); err != nil {
		return fail(l, "notification_read_error", err)
	}
	return success(c, nil)
}

func (h *ShopHTTP) TrackView(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "analytics.track")

	var req transport.TrackRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "analytics_track_error", err)
	}

	if err := h.Analytics.Track(ctx, req, c.RealIP(), c.Request().UserAgent()); err != nil {
		return fail(l, "analytics_track_error", err)
	}
	return success(c, nil)
}

func (h *ShopHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "analytics.stats")

	stats, err := h.Analytics.Stats(ctx)
	if err != nil {
		return fail(l, "analytics_stats_error", err)
	}
	return writeJSON(c, http.StatusOK, stats)
}
