package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.get")

	id, err := queryID(c, "id")
	if err != nil {
		return fail(l, "get_product_error", err)
	}
	if id != 0 {
		p, err := h.Svc.GetProduct(ctx, id)
		if err != nil {
			return fail(l, "get_product_error", err)
		}
		return writeJSON(c, http.StatusOK, p)
	}

	items, err := h.Svc.ListProducts(ctx, c.QueryParam("category"))
	if err != nil {
		return fail(l, "list_products_error", err)
	}
	return writeJSON(c, http.StatusOK, items)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.create")

	var req transport.ProductRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "create_product_error", err)
	}

	p, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return fail(l, "create_product_error", err)
	}

	l.Info("create_product_success", "product_id", p.ID)
	return writeJSON(c, http.StatusCreated, p)
}

func (h *CatalogHTTP) ReplaceProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.replace")

	var req transport.ProductRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "replace_product_error", err)
	}

	p, err := h.Svc.ReplaceProduct(ctx, req)
	if err != nil {
		return fail(l, "replace_product_error", err)
	}

	l.Info("replace_product_success", "product_id", p.ID)
	return writeJSON(c, http.StatusOK, p)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.delete")

	id, err := queryID(c, "id")
	if err != nil {
		return fail(l, "delete_product_error", err)
	}
	if id == 0 {
		return fail(l, "delete_product_error", fmt.Errorf("Product ID is required: %w", service.ErrValidation))
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return fail(l, "delete_product_error", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return writeJSON(c, http.StatusOK, map[string]any{"message": "Product deleted"})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return fail(l, "search_products_error", err)
	}

	return writeJSON(c, http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

type PromotionHTTP struct {
	Svc *service.PromotionService
}

func (h *PromotionHTTP) GetPromotions(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "promotions.get")

	id, err := queryID(c, "id")
	if err != nil {
		return fail(l, "get_promotion_error", err)
	}
	if id != 0 {
		p, err := h.Svc.GetPromotion(ctx, id)
		if err != nil {
			return fail(l, "get_promotion_error", err)
		}
		return writeJSON(c, http.StatusOK, p)
	}

	items, err := h.Svc.ListPromotions(ctx)
	if err != nil {
		return fail(l, "list_promotions_error", err)
	}
	return writeJSON(c, http.StatusOK, items)
}

func (h *PromotionHTTP) CreatePromotion(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "promotions.create")

	var req transport.PromotionRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "create_promotion_error", err)
	}

	p, err := h.Svc.CreatePromotion(ctx, req)
	if err != nil {
		return fail(l, "create_promotion_error", err)
	}
	return writeJSON(c, http.StatusCreated, p)
}

// ReplacePromotion takes the id from the query string or, failing that,
// from the body.
func (h *PromotionHTTP) ReplacePromotion(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "promotions.replace")

	var req transport.PromotionRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "replace_promotion_error", err)
	}
	id, err := queryID(c, "id")
	if err != nil {
		return fail(l, "replace_promotion_error", err)
	}
	if id == 0 && req.ID != nil {
		id = uint(*req.ID)
	}

	p, err := h.Svc.ReplacePromotion(ctx, id, req)
	if err != nil {
		return fail(l, "replace_promotion_error", err)
	}
	return writeJSON(c, http.StatusOK, p)
}

func (h *PromotionHTTP) DeletePromotion(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "promotions.delete")

	id, err := queryID(c, "id")
	if err != nil {
		return fail(l, "delete_promotion_error", err)
	}
	if id == 0 {
		return fail(l, "delete_promotion_error", fmt.Errorf("Promotion ID is required: %w", service.ErrValidation))
	}

	if err := h.Svc.DeletePromotion(ctx, id); err != nil {
		return fail(l, "delete_promotion_error", err)
	}
	return writeJSON(c, http.StatusOK, map[string]any{"message": "Promotion deleted"})
}

func (h *PromotionHTTP) Subscribe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "promotions.subscribe")

	var req transport.EmailRequest
	if err := decodeJSON(c, &req); err != nil {
		return badBody(l, "newsletter_subscribe_error", err)
	}

	if _, err := h.Svc.Subscribe(ctx, req.Email); err != nil {
		return fail(l, "newsletter_subscribe_error", err)
	}
	return success(c, map[string]any{"message": "Вы успешно подписались на рассылку!"})
}
