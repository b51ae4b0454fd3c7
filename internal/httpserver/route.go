package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/logging"
)

type Deps struct {
	DB *gorm.DB

	Catalog   *CatalogHTTP
	Promotion *PromotionHTTP
	Content   *ContentHTTP
	Shop      *ShopHTTP
	Bot       *BotHTTP
	Email     *EmailHTTP
	Upload    *UploadHTTP

	// AdminGuard protects admin entries when set.
	AdminGuard echo.MiddlewareFunc
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			logging.FromContext(c.Request().Context()).Error("readiness_failed", "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	for path, disp := range Dispatchers(d) {
		e.Any(path, disp.Serve)
		e.Any(path+"/:action", disp.Serve)
	}
}

// Dispatchers returns the action table of every endpoint keyed by path.
func Dispatchers(d *Deps) map[string]*Dispatcher {
	g := d.AdminGuard

	products := NewDispatcher("products", g).
		On(http.MethodGet, "products", d.Catalog.GetProducts).
		On(http.MethodGet, "search", d.Catalog.SearchProducts).
		Admin(http.MethodPost, "products", d.Catalog.CreateProduct).
		Admin(http.MethodPut, "products", d.Catalog.ReplaceProduct).
		Admin(http.MethodDelete, "products", d.Catalog.DeleteProduct)

	promotions := NewDispatcher("promotions", g).
		On(http.MethodGet, "promotions", d.Promotion.GetPromotions).
		Admin(http.MethodPost, "promotions", d.Promotion.CreatePromotion).
		Admin(http.MethodPut, "promotions", d.Promotion.ReplacePromotion).
		Admin(http.MethodDelete, "promotions", d.Promotion.DeletePromotion).
		On(http.MethodPost, "newsletter-subscribe", d.Promotion.Subscribe).
		Admin(http.MethodPost, "test-email", d.Email.SendTest)

	content := NewDispatcher("content", g).
		On(http.MethodGet, "content", d.Content.GetBlocks).
		Admin(http.MethodPost, "content", d.Content.CreateBlock).
		Admin(http.MethodPut, "content", d.Content.UpdateBlock).
		Admin(http.MethodDelete, "content", d.Content.HideBlock)

	siteContent := NewDispatcher("content", g).
		On(http.MethodGet, "content", d.Content.GetSiteContent).
		Admin(http.MethodPut, "content", d.Content.UpdateSiteContent).
		On(http.MethodPost, "analytics-track", d.Shop.TrackView).
		Admin(http.MethodGet, "analytics-stats", d.Shop.Stats).
		Admin(http.MethodGet, "orders", d.Shop.Orders).
		Admin(http.MethodGet, "orders-export", d.Shop.ExportOrders).
		On(http.MethodPost, "order", d.Shop.CreateOrder).
		Admin(http.MethodPut, "order-status", d.Shop.SetOrderStatus).
		Admin(http.MethodGet, "notifications", d.Shop.Notifications).
		Admin(http.MethodPut, "notification-read", d.Shop.MarkNotificationRead).
		On(http.MethodPost, "cart", d.Shop.OpenCart).
		On(http.MethodPost, "cart-item", d.Shop.AddCartItem).
		On(http.MethodGet, "cart-items", d.Shop.CartItems).
		On(http.MethodDelete, "cart-item-remove", d.Shop.RemoveCartItem).
		On(http.MethodPost, "cart-checkout", d.Shop.Checkout)

	texts := NewDispatcher("texts", g).
		On(http.MethodGet, "texts", d.Content.GetSiteTexts).
		Admin(http.MethodPut, "texts", d.Content.UpdateSiteTexts)

	theme := NewDispatcher("theme", g).
		On(http.MethodGet, "theme", d.Content.GetTheme).
		Admin(http.MethodPut, "theme", d.Content.UpdateTheme)

	bot := NewDispatcher("settings", g).
		DefaultFor(http.MethodPost, "webhook").
		Admin(http.MethodGet, "settings", d.Bot.GetSettings).
		Admin(http.MethodPut, "settings", d.Bot.UpdateSettings).
		On(http.MethodPost, "webhook", d.Bot.Webhook)

	email := NewDispatcher("test", g).
		Unmatched(http.StatusNotFound, "Action not found").
		Admin(http.MethodPost, "test", d.Email.SendTest).
		On(http.MethodPost, "subscribe", d.Email.Subscribe).
		Admin(http.MethodPost, "newsletter-send", d.Email.SendNewsletter)

	upload := NewDispatcher("upload", g).
		Admin(http.MethodPost, "upload", d.Upload.UploadImage)

	return map[string]*Dispatcher{
		"/products":     products,
		"/promotions":   promotions,
		"/content":      content,
		"/site-content": siteContent,
		"/site-texts":   texts,
		"/theme":        theme,
		"/bot":          bot,
		"/email":        email,
		"/upload-image": upload,
	}
}
