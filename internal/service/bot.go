package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/telegram"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

const (
	BotStatusDisabled = "bot disabled"
	BotStatusNoToken  = "bot token not configured"

	defaultAdminUsername = "whiteshishka"
	defaultWelcome       = "Привет!"
	defaultHelp          = "Доступные команды:\n/start\n/catalog\n/help"
	defaultCatalogIntro  = "📦 Наш каталог:"
	fallbackReply        = "Используйте /help для списка команд"
	emptyCartReply       = "Корзина пуста"
)

// Messenger is implemented by telegram.Client.
type Messenger interface {
	Send(ctx context.Context, chatID string, text string, buttons ...telegram.Button) error
}

type sendFunc func(to, body string, buttons ...telegram.Button)

// MessengerFactory builds a Messenger for the token stored in bot settings.
type MessengerFactory func(token string) (Messenger, error)

type BotService struct {
	Repo         *repo.GormRepo
	NewMessenger MessengerFactory
	SiteURL      string
}

func (s *BotService) Settings(ctx context.Context) ([]models.BotSetting, []models.BotMessage, error) {
	settings, err := s.Repo.ListBotSettings(ctx)
	if err != nil {
		return nil, nil, err
	}
	messages, err := s.Repo.ListBotMessages(ctx)
	if err != nil {
		return nil, nil, err
	}
	return settings, messages, nil
}

func (s *BotService) UpdateSettings(ctx context.Context, req transport.BotSettingsUpdate) (int64, error) {
	settings := make(map[string]string, len(req.Settings))
	for _, v := range req.Settings {
		if v.SettingKey == "" {
			return 0, fmt.Errorf("setting_key required: %w", ErrValidation)
		}
		settings[v.SettingKey] = v.SettingValue
	}
	messages := make(map[string]string, len(req.Messages))
	for _, v := range req.Messages {
		if v.MessageKey == "" {
			return 0, fmt.Errorf("message_key required: %w", ErrValidation)
		}
		messages[v.MessageKey] = v.MessageText
	}

	n, err := s.Repo.UpdateBotSettings(ctx, settings)
	if err != nil {
		return 0, err
	}
	m, err := s.Repo.UpdateBotMessages(ctx, messages)
	if err != nil {
		return 0, err
	}
	return n + m, nil
}

// HandleWebhook processes one Telegram update. The returned status is
// reported back to Telegram; an empty status means the update was consumed.
// Failures are logged and never surface to the caller.
func (s *BotService) HandleWebhook(ctx context.Context, body []byte) string {
	l := logging.FromContext(ctx).With("component", "bot_webhook")

	settings, err := s.Repo.BotSettingsMap(ctx)
	if err != nil {
		l.Error("bot_settings_load_failed", "error", err)
		return ""
	}
	if settings["bot_enabled"] != "true" {
		return BotStatusDisabled
	}
	token := settings["bot_token"]
	if token == "" {
		return BotStatusNoToken
	}

	msg, ok, err := telegram.ParseUpdate(body)
	if err != nil {
		l.Warn("bot_update_invalid", "error", err)
		return ""
	}
	if !ok {
		return ""
	}

	messenger, err := s.NewMessenger(token)
	if err != nil {
		l.Error("bot_client_failed", "error", err)
		return ""
	}
	messages, err := s.Repo.BotMessagesMap(ctx)
	if err != nil {
		l.Warn("bot_messages_load_failed", "error", err)
		messages = map[string]string{}
	}

	chatID := strconv.FormatInt(msg.ChatID, 10)
	text := strings.TrimSpace(msg.Text)
	l = l.With("chat_id", chatID)

	var send sendFunc = func(to, body string, buttons ...telegram.Button) {
		if err := messenger.Send(ctx, to, body, buttons...); err != nil {
			l.Warn("bot_send_failed", "to", to, "error", err)
		}
	}

	switch {
	case strings.HasPrefix(text, "/start"):
		cartID, ok := startCartID(text)
		if !ok {
			send(chatID, orDefault(messages["welcome"], defaultWelcome))
			return ""
		}
		s.sendCartSummary(ctx, l, send, chatID, cartID, settings)
	case text == "/help":
		send(chatID, orDefault(messages["help"], defaultHelp))
	case text == "/catalog":
		s.sendCatalog(ctx, l, send, chatID, messages)
	default:
		send(chatID, fallbackReply)
		if admin := settings["admin_chat_id"]; admin != "" {
			send(admin, fmt.Sprintf("💬 Новое сообщение от пользователя %s:\n%s", chatID, html.EscapeString(text)))
		}
	}
	return ""
}

func (s *BotService) sendCartSummary(ctx context.Context, l *slog.Logger, send sendFunc, chatID string, cartID uint, settings map[string]string) {
	items, err := s.Repo.CartItems(ctx, cartID)
	if err != nil {
		l.Error("bot_cart_load_failed", "cart_id", cartID, "error", err)
		return
	}
	if len(items) == 0 {
		send(chatID, emptyCartReply)
		return
	}

	send(chatID, CartSummary(items), telegram.Button{
		Text: "💬 Связаться с менеджером",
		URL:  "https://t.me/" + orDefault(settings["admin_username"], defaultAdminUsername),
	})
	if err := s.Repo.SetCartTelegramUser(ctx, cartID, chatID); err != nil {
		l.Error("bot_cart_link_failed", "cart_id", cartID, "error", err)
	}
}

func (s *BotService) sendCatalog(ctx context.Context, l *slog.Logger, send sendFunc, chatID string, messages map[string]string) {
	counts, err := s.Repo.InStockCategoryCounts(ctx)
	if err != nil {
		l.Error("bot_catalog_load_failed", "error", err)
		return
	}
	var b strings.Builder
	b.WriteString(orDefault(messages["catalog_intro"], defaultCatalogIntro))
	b.WriteString("\n\n")
	for _, c := range counts {
		fmt.Fprintf(&b, "• %s: %d товаров\n", html.EscapeString(c.Category), c.Count)
	}
	send(chatID, b.String(), telegram.Button{Text: "🌐 Открыть каталог", URL: s.SiteURL})
}

// CartSummary renders the HTML order summary sent to the customer.
func CartSummary(items []models.CartItem) string {
	views, total := CartLines(items)
	var b strings.Builder
	b.WriteString("🛒 <b>Ваш заказ:</b>\n\n")
	for _, v := range views {
		fmt.Fprintf(&b, "• %s x%d = %s₽\n", html.EscapeString(v.ProductName), v.Quantity, FormatMoney(v.Total))
	}
	fmt.Fprintf(&b, "\n💰 <b>Итого: %s₽</b>\n\n", FormatMoney(total))
	b.WriteString("Для оформления заказа свяжитесь с менеджером")
	return b.String()
}

// startCartID extracts the cart id from "/start_<id>" and from the deep-link
// form "/start order_<id>".
func startCartID(text string) (uint, bool) {
	prefix, rest, found := strings.Cut(text, "_")
	if !found || (prefix != "/start" && prefix != "/start order") {
		return 0, false
	}
	id, err := util.ParseID(rest)
	if err != nil {
		return 0, false
	}
	return id, true
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
