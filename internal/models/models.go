package models

import (
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string         `gorm:"not null"                 json:"name"`
	Price            float64        `gorm:"not null"                 json:"price"`
	Category         string         `gorm:"index;not null"           json:"category"`
	ImageURL         string         `json:"image_url"`
	ShortDescription string         `json:"short_description"`
	FullDescription  string         `json:"full_description"`
	Features         datatypes.JSON `json:"features"`
	InStock          bool           `gorm:"not null"                 json:"in_stock"`
	IsNew            bool           `gorm:"not null"                 json:"is_new"`
	Discount         int            `gorm:"not null"                 json:"discount"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

type Promotion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null"                 json:"title"`
	Description string    `json:"description"`
	Discount    string    `json:"discount"`
	ImageURL    string    `json:"image_url"`
	ValidUntil  string    `json:"valid_until"`
	IsActive    bool      `gorm:"not null"                 json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Promotion) TableName() string { return "promotions" }

// PageBlock is one editable block of a page. Exactly one of ContentText and
// ContentJSON carries the content.
type PageBlock struct {
	ID           uint           `gorm:"primaryKey;autoIncrement"`
	PageName     string         `gorm:"index;not null"`
	BlockKey     string         `gorm:"not null"`
	BlockType    string         `gorm:"not null"`
	ContentText  *string
	ContentJSON  datatypes.JSON `gorm:"column:content_json"`
	IsVisible    bool           `gorm:"not null"`
	DisplayOrder int            `gorm:"not null"`
	UpdatedAt    time.Time
}

func (PageBlock) TableName() string { return "page_content" }

type SiteContent struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	ContentKey   string    `gorm:"uniqueIndex;not null"`
	ContentValue string
	Section      string
	Description  string
	UpdatedAt    time.Time
}

func (SiteContent) TableName() string { return "site_content" }

type SiteText struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	TextKey     string    `gorm:"uniqueIndex;not null"`
	TextValue   string
	Section     string
	Description string
	UpdatedAt   time.Time
}

func (SiteText) TableName() string { return "site_texts" }

type ThemeSetting struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	ThemeKey   string    `gorm:"uniqueIndex;not null"`
	ColorValue string    `gorm:"not null"`
	UpdatedAt  time.Time
}

func (ThemeSetting) TableName() string { return "site_theme" }

type Cart struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserPhone      string    `gorm:"index"                    json:"user_phone"`
	SessionID      string    `json:"session_id"`
	Status         string    `gorm:"not null"                 json:"status"`
	TelegramUserID *string   `json:"telegram_user_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Cart) TableName() string { return "carts" }

type CartItem struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID       uint    `gorm:"index;not null"           json:"cart_id"`
	ProductID    uint    `gorm:"not null"                 json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `gorm:"not null"                 json:"quantity"`
}

func (CartItem) TableName() string { return "cart_items" }

type Order struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserName     string    `json:"user_name"`
	UserPhone    string    `json:"user_phone"`
	UserEmail    string    `json:"user_email"`
	ProductName  string    `json:"product_name"`
	ProductPrice float64   `json:"product_price"`
	Quantity     int       `gorm:"not null"                 json:"quantity"`
	TotalPrice   float64   `gorm:"not null"                 json:"total_price"`
	Status       string    `gorm:"index;not null"           json:"status"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

type AdminNotification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null"                 json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `gorm:"not null"                 json:"is_read"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

func (AdminNotification) TableName() string { return "admin_notifications" }

type NewsletterSubscriber struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	Active       bool      `gorm:"not null"                 json:"active"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

func (NewsletterSubscriber) TableName() string { return "newsletter_subscribers" }

type PageView struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PageURL   string    `gorm:"index"`
	UserIP    string
	UserAgent string
	Referrer  string
	CreatedAt time.Time `gorm:"index"`
}

func (PageView) TableName() string { return "page_views" }

type BotSetting struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SettingKey   string    `gorm:"uniqueIndex;not null"     json:"setting_key"`
	SettingValue string    `json:"setting_value"`
	Description  string    `json:"description"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (BotSetting) TableName() string { return "bot_settings" }

type BotMessage struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MessageKey  string    `gorm:"uniqueIndex;not null"     json:"message_key"`
	MessageText string    `json:"message_text"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (BotMessage) TableName() string { return "bot_messages" }

// All returns one zero value of every persisted model.
func All() []any {
	return []any{
		&Product{}, &Promotion{}, &PageBlock{}, &SiteContent{}, &SiteText{},
		&ThemeSetting{}, &Cart{}, &CartItem{}, &Order{}, &AdminNotification{},
		&NewsletterSubscriber{}, &PageView{}, &BotSetting{}, &BotMessage{},
	}
}
