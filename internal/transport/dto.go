package transport

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID accepts a JSON number or a numeric string.
type ID uint

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("id %q is not a positive integer", s)
	}
	*id = ID(n)
	return nil
}

// Text accepts a JSON string or number and keeps its textual form.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

type ProductRequest struct {
	ID               *ID             `json:"id"`
	Name             *string         `json:"name"`
	Price            *float64        `json:"price"`
	Category         *string         `json:"category"`
	ImageURL         *string         `json:"image_url"`
	ShortDescription *string         `json:"short_description"`
	FullDescription  *string         `json:"full_description"`
	Features         json.RawMessage `json:"features"`
	InStock          *bool           `json:"in_stock"`
	IsNew            *bool           `json:"is_new"`
	Discount         *int            `json:"discount"`
}

type PromotionRequest struct {
	ID          *ID     `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Discount    *Text   `json:"discount"`
	ImageURL    *string `json:"image_url"`
	ValidUntil  *Text   `json:"valid_until"`
	IsActive    *bool   `json:"is_active"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type NewsletterRequest struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

type NewsletterReport struct {
	Success bool     `json:"success"`
	Total   int      `json:"total"`
	Sent    int      `json:"sent"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

type PageBlockRequest struct {
	PageName  string          `json:"page_name"`
	BlockKey  string          `json:"block_key"`
	BlockType string          `json:"block_type"`
	Content   json.RawMessage `json:"content"`
	IsVisible *bool           `json:"is_visible"`
}

type PageBlockResponse struct {
	ID           uint   `json:"id"`
	PageName     string `json:"page_name"`
	BlockKey     string `json:"block_key"`
	BlockType    string `json:"block_type"`
	Content      any    `json:"content"`
	IsVisible    bool   `json:"is_visible"`
	DisplayOrder int    `json:"display_order"`
}

// KeyedValue is one entry of the site-content and site-texts maps.
type KeyedValue struct {
	Value       string `json:"value"`
	Section     string `json:"section"`
	Description string `json:"description"`
}

type CartRequest struct {
	UserPhone string `json:"user_phone"`
	SessionID string `json:"session_id"`
}

type CartItemRequest struct {
	CartID       ID      `json:"cart_id"`
	ProductID    ID      `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     *int    `json:"quantity"`
}

type CartItemView struct {
	ID           uint    `json:"id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
	Total        float64 `json:"total"`
}

type CartItemsResponse struct {
	Items []CartItemView `json:"items"`
	Total float64        `json:"total"`
}

type CheckoutRequest struct {
	CartID         ID    `json:"cart_id"`
	TelegramUserID *Text `json:"telegram_user_id"`
}

type OrderRequest struct {
	UserName     string  `json:"user_name"`
	UserPhone    string  `json:"user_phone"`
	UserEmail    string  `json:"user_email"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     *int    `json:"quantity"`
	TotalPrice   float64 `json:"total_price"`
	Notes        string  `json:"notes"`
}

type OrderStatusRequest struct {
	ID     ID     `json:"id"`
	Status string `json:"status"`
}

type IDRequest struct {
	ID ID `json:"id"`
}

type TrackRequest struct {
	PageURL  *string `json:"page_url"`
	Referrer string  `json:"referrer"`
}

type ViewsSummary struct {
	Total  int64 `json:"total"`
	Unique int64 `json:"unique"`
	Today  int64 `json:"today"`
	Week   int64 `json:"week"`
}

type PageViews struct {
	Page  string `json:"page"`
	Views int64  `json:"views"`
}

type OrdersSummary struct {
	Total     int64   `json:"total"`
	New       int64   `json:"new"`
	Completed int64   `json:"completed"`
	Revenue   float64 `json:"revenue"`
}

type AnalyticsStats struct {
	Views    ViewsSummary  `json:"views"`
	TopPages []PageViews   `json:"top_pages"`
	Orders   OrdersSummary `json:"orders"`
}

type BotSettingValue struct {
	SettingKey   string `json:"setting_key"`
	SettingValue string `json:"setting_value"`
}

type BotMessageValue struct {
	MessageKey  string `json:"message_key"`
	MessageText string `json:"message_text"`
}

type BotSettingsUpdate struct {
	Settings []BotSettingValue `json:"settings"`
	Messages []BotMessageValue `json:"messages"`
}

type UploadRequest struct {
	Image string `json:"image"`
}
