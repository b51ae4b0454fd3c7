package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/export"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const (
	OrderStatusNew   = "new"
	ordersPageSize   = 100
	ordersExportSize = 5000
	notificationsCap = 50
)

type CartEvent struct {
	Type           string `json:"type"`
	CartID         uint   `json:"cartID"`
	ProductID      uint   `json:"productID,omitempty"`
	Quantity       int    `json:"quantity,omitempty"`
	TelegramUserID string `json:"telegramUserID,omitempty"`
}

type OrderEvent struct {
	Type       string  `json:"type"`
	OrderID    uint    `json:"orderID"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice,omitempty"`
}

// ShopService runs the cart and order flow and the admin notification feed.
type ShopService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

func (s *ShopService) OpenCart(ctx context.Context, req transport.CartRequest) (*models.Cart, error) {
	phone := strings.TrimSpace(req.UserPhone)
	if phone == "" {
		return nil, fmt.Errorf("user_phone required: %w", ErrValidation)
	}
	return s.Repo.OpenCart(ctx, phone, req.SessionID)
}

func (s *ShopService) AddItem(ctx context.Context, req transport.CartItemRequest) (*models.CartItem, error) {
	if req.CartID == 0 || req.ProductID == 0 {
		return nil, fmt.Errorf("cart_id and product_id required: %w", ErrValidation)
	}
	// A negative quantity decrements; rows at or below zero drop out of reads.
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if req.ProductPrice < 0 {
		return nil, fmt.Errorf("product_price cannot be negative: %w", ErrValidation)
	}

	item := &models.CartItem{
		CartID:       uint(req.CartID),
		ProductID:    uint(req.ProductID),
		ProductName:  req.ProductName,
		ProductPrice: req.ProductPrice,
		Quantity:     qty,
	}
	if err := s.Repo.AddCartItem(ctx, item); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, TopicCarts, strconv.FormatUint(uint64(item.CartID), 10), CartEvent{
		Type:      "cart_item_added",
		CartID:    item.CartID,
		ProductID: item.ProductID,
		Quantity:  qty,
	})
	return item, nil
}

func (s *ShopService) CartItems(ctx context.Context, cartID uint) (*transport.CartItemsResponse, error) {
	if cartID == 0 {
		return nil, fmt.Errorf("cart_id required: %w", ErrValidation)
	}
	items, err := s.Repo.CartItems(ctx, cartID)
	if err != nil {
		return nil, err
	}
	views, total := CartLines(items)
	return &transport.CartItemsResponse{Items: views, Total: total}, nil
}

// CartLines prices every item and sums the line totals.
func CartLines(items []models.CartItem) ([]transport.CartItemView, float64) {
	views := make([]transport.CartItemView, 0, len(items))
	var total float64
	for _, it := range items {
		line := it.ProductPrice * float64(it.Quantity)
		total += line
		views = append(views, transport.CartItemView{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductPrice: it.ProductPrice,
			Quantity:     it.Quantity,
			Total:        line,
		})
	}
	return views, total
}

func (s *ShopService) RemoveItem(ctx context.Context, itemID uint) error {
	if itemID == 0 {
		return fmt.Errorf("item_id required: %w", ErrValidation)
	}
	return s.Repo.DeleteCartItem(ctx, itemID)
}

func (s *ShopService) Checkout(ctx context.Context, req transport.CheckoutRequest) (*models.Cart, error) {
	if req.CartID == 0 {
		return nil, fmt.Errorf("cart_id required: %w", ErrValidation)
	}
	var tg *string
	if req.TelegramUserID != nil && *req.TelegramUserID != "" {
		v := string(*req.TelegramUserID)
		tg = &v
	}
	cart, err := s.Repo.CheckoutCart(ctx, uint(req.CartID), tg)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("Cart not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	ev := CartEvent{Type: "cart_checkout", CartID: cart.ID}
	if tg != nil {
		ev.TelegramUserID = *tg
	}
	publish(ctx, s.Events, TopicCarts, strconv.FormatUint(uint64(cart.ID), 10), ev)
	return cart, nil
}

// CreateOrder stores the order together with its admin notification.
func (s *ShopService) CreateOrder(ctx context.Context, req transport.OrderRequest) (*models.Order, error) {
	if strings.TrimSpace(req.UserName) == "" || strings.TrimSpace(req.UserPhone) == "" {
		return nil, fmt.Errorf("user_name and user_phone required: %w", ErrValidation)
	}
	if req.TotalPrice < 0 || req.ProductPrice < 0 {
		return nil, fmt.Errorf("prices cannot be negative: %w", ErrValidation)
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	o := &models.Order{
		UserName:     req.UserName,
		UserPhone:    req.UserPhone,
		UserEmail:    req.UserEmail,
		ProductName:  req.ProductName,
		ProductPrice: req.ProductPrice,
		Quantity:     qty,
		TotalPrice:   req.TotalPrice,
		Status:       OrderStatusNew,
		Notes:        req.Notes,
	}
	if err := s.Repo.CreateOrder(ctx, o, orderNotification); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, TopicOrders, strconv.FormatUint(uint64(o.ID), 10), OrderEvent{
		Type:       "order_created",
		OrderID:    o.ID,
		Status:     o.Status,
		TotalPrice: o.TotalPrice,
	})
	return o, nil
}

func orderNotification(o *models.Order) models.AdminNotification {
	return models.AdminNotification{
		Title:   "Новый заказ",
		Message: fmt.Sprintf("Заказ #%d от %s на %s ₽", o.ID, o.UserName, FormatMoney(o.TotalPrice)),
		Type:    "order",
		Link:    fmt.Sprintf("/admin/orders/%d", o.ID),
	}
}

func (s *ShopService) Orders(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, ordersPageSize)
}

// ExportOrders writes the most recent orders to w as an xlsx workbook.
func (s *ShopService) ExportOrders(ctx context.Context, w io.Writer) error {
	orders, err := s.Repo.ListOrders(ctx, ordersExportSize)
	if err != nil {
		return err
	}
	return export.Orders(w, orders)
}

func (s *ShopService) SetOrderStatus(ctx context.Context, req transport.OrderStatusRequest) error {
	status := strings.TrimSpace(req.Status)
	if req.ID == 0 || status == "" {
		return fmt.Errorf("id and status required: %w", ErrValidation)
	}
	err := s.Repo.UpdateOrderStatus(ctx, uint(req.ID), status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("Order not found: %w", ErrNotFound)
	}
	if err != nil {
		return err
	}
	publish(ctx, s.Events, TopicOrders, strconv.FormatUint(uint64(req.ID), 10), OrderEvent{
		Type:    "order_status_changed",
		OrderID: uint(req.ID),
		Status:  status,
	})
	return nil
}

func (s *ShopService) Notifications(ctx context.Context) ([]models.AdminNotification, error) {
	return s.Repo.ListNotifications(ctx, notificationsCap)
}

func (s *ShopService) MarkNotificationRead(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("id required: %w", ErrValidation)
	}
	err := s.Repo.MarkNotificationRead(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("Notification not found: %w", ErrNotFound)
	}
	return err
}
