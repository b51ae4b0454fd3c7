package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Button is an inline keyboard button that opens URL.
type Button struct {
	Text string
	URL  string
}

// Message is the part of an incoming update the storefront bot reacts to.
type Message struct {
	ChatID int64
	Text   string
}

// ParseUpdate decodes a webhook body. ok is false when the update carries no
// message.
func ParseUpdate(body []byte) (msg Message, ok bool, err error) {
	var upd models.Update
	if err := json.Unmarshal(body, &upd); err != nil {
		return Message{}, false, fmt.Errorf("decode update: %w", err)
	}
	if upd.Message == nil {
		return Message{}, false, nil
	}
	return Message{ChatID: upd.Message.Chat.ID, Text: upd.Message.Text}, true, nil
}

type Options struct {
	ServerURL string
	Timeout   time.Duration
}

type Client struct {
	b *bot.Bot
}

// New builds a send-only client. It does not call getMe, so constructing it
// performs no network I/O.
func New(token string, opts Options) (*Client, error) {
	botOpts := []bot.Option{bot.WithSkipGetMe()}
	if opts.ServerURL != "" {
		botOpts = append(botOpts, bot.WithServerURL(opts.ServerURL))
	}
	if opts.Timeout > 0 {
		botOpts = append(botOpts, bot.WithHTTPClient(opts.Timeout, &http.Client{Timeout: opts.Timeout}))
	}
	b, err := bot.New(token, botOpts...)
	if err != nil {
		return nil, fmt.Errorf("telegram client: %w", err)
	}
	return &Client{b: b}, nil
}

// Send posts an HTML message to chatID with one URL button per row.
func (c *Client) Send(ctx context.Context, chatID string, text string, buttons ...Button) error {
	params := &bot.SendMessageParams{
		ChatID:    chatValue(chatID),
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if len(buttons) > 0 {
		rows := make([][]models.InlineKeyboardButton, 0, len(buttons))
		for _, btn := range buttons {
			rows = append(rows, []models.InlineKeyboardButton{{Text: btn.Text, URL: btn.URL}})
		}
		params.ReplyMarkup = &models.InlineKeyboardMarkup{InlineKeyboard: rows}
	}
	if _, err := c.b.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	return nil
}

// chatValue keeps numeric chat ids numeric and passes @channel names through.
func chatValue(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}
