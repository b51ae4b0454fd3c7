package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

const (
	cartsTable         = "carts"
	cartItemsTable     = "cart_items"
	ordersTable        = "orders"
	notificationsTable = "admin_notifications"

	CartActive   = "active"
	CartCheckout = "checkout"
)

// OpenCart returns the newest active cart of phone, creating one when none
// exists.
func (r *GormRepo) OpenCart(ctx context.Context, phone, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Table(r.table(cartsTable)).
			Where("user_phone = ? AND status = ?", phone, CartActive).
			Order("created_at DESC").
			Order("id DESC").
			Take(&cart).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		cart = models.Cart{UserPhone: phone, SessionID: sessionID, Status: CartActive}
		return tx.Table(r.table(cartsTable)).Create(&cart).Error
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) GetCart(ctx context.Context, id uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.from(ctx, cartsTable).Where("id = ?", id).Take(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem increments the quantity of an existing (cart, product) row or
// inserts a new one.
func (r *GormRepo) AddCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table(r.table(cartItemsTable)).
			Where("cart_id = ? AND product_id = ?", item.CartID, item.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Table(r.table(cartItemsTable)).
				Where("cart_id = ? AND product_id = ?", item.CartID, item.ProductID).
				Take(item).Error
		}
		return tx.Table(r.table(cartItemsTable)).Create(item).Error
	})
}

func (r *GormRepo) CartItems(ctx context.Context, cartID uint) ([]models.CartItem, error) {
	items := []models.CartItem{}
	err := r.from(ctx, cartItemsTable).
		Where("cart_id = ? AND quantity > 0", cartID).
		Order("id").
		Find(&items).Error
	return items, err
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, itemID uint) error {
	return r.from(ctx, cartItemsTable).Where("id = ?", itemID).Delete(&models.CartItem{}).Error
}

// CheckoutCart moves an active cart to checkout. A cart already in checkout
// keeps its status; telegramUserID is stored when given.
func (r *GormRepo) CheckoutCart(ctx context.Context, cartID uint, telegramUserID *string) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(r.table(cartsTable)).Where("id = ?", cartID).Take(&cart).Error; err != nil {
			return err
		}
		values := map[string]any{}
		if cart.Status == CartActive {
			values["status"] = CartCheckout
		}
		if telegramUserID != nil {
			values["telegram_user_id"] = *telegramUserID
		}
		if len(values) == 0 {
			return nil
		}
		if err := tx.Table(r.table(cartsTable)).Where("id = ?", cartID).Updates(values).Error; err != nil {
			return err
		}
		return tx.Table(r.table(cartsTable)).Where("id = ?", cartID).Take(&cart).Error
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) SetCartTelegramUser(ctx context.Context, cartID uint, chatID string) error {
	return r.from(ctx, cartsTable).Where("id = ?", cartID).Update("telegram_user_id", chatID).Error
}

// CreateOrder stores o and the notification built from it in one transaction.
func (r *GormRepo) CreateOrder(ctx context.Context, o *models.Order, notify func(*models.Order) models.AdminNotification) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(r.table(ordersTable)).Create(o).Error; err != nil {
			return err
		}
		n := notify(o)
		return tx.Table(r.table(notificationsTable)).Create(&n).Error
	})
}

func (r *GormRepo) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.from(ctx, ordersTable).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&orders).Error
	return orders, err
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	res := r.from(ctx, ordersTable).Where("id = ?", id).Updates(map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListNotifications(ctx context.Context, limit int) ([]models.AdminNotification, error) {
	items := []models.AdminNotification{}
	err := r.from(ctx, notificationsTable).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&items).Error
	return items, err
}

func (r *GormRepo) MarkNotificationRead(ctx context.Context, id uint) error {
	res := r.from(ctx, notificationsTable).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
