package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/models"
)

const (
	promotionsTable  = "promotions"
	subscribersTable = "newsletter_subscribers"
)

func (r *GormRepo) ListPromotions(ctx context.Context) ([]models.Promotion, error) {
	items := []models.Promotion{}
	err := r.from(ctx, promotionsTable).Order("created_at DESC").Order("id DESC").Find(&items).Error
	return items, err
}

func (r *GormRepo) GetPromotion(ctx context.Context, id uint) (*models.Promotion, error) {
	var p models.Promotion
	if err := r.from(ctx, promotionsTable).Where("id = ?", id).Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) CreatePromotion(ctx context.Context, p *models.Promotion) error {
	return r.from(ctx, promotionsTable).Create(p).Error
}

func (r *GormRepo) ReplacePromotion(ctx context.Context, p *models.Promotion) (*models.Promotion, error) {
	res := r.from(ctx, promotionsTable).Where("id = ?", p.ID).Updates(map[string]any{
		"title":       p.Title,
		"description": p.Description,
		"discount":    p.Discount,
		"image_url":   p.ImageURL,
		"valid_until": p.ValidUntil,
		"is_active":   p.IsActive,
		"updated_at":  time.Now().UTC(),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetPromotion(ctx, p.ID)
}

func (r *GormRepo) DeletePromotion(ctx context.Context, id uint) error {
	res := r.from(ctx, promotionsTable).Where("id = ?", id).Delete(&models.Promotion{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertSubscriber inserts email or re-activates the existing row and
// refreshes its subscribed_at.
func (r *GormRepo) UpsertSubscriber(ctx context.Context, email string) error {
	now := time.Now().UTC()
	sub := models.NewsletterSubscriber{Email: email, Active: true, SubscribedAt: now}
	return r.from(ctx, subscribersTable).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(map[string]any{"active": true, "subscribed_at": now}),
		}).
		Create(&sub).Error
}

func (r *GormRepo) ActiveSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	var subs []models.NewsletterSubscriber
	err := r.from(ctx, subscribersTable).Where("active = ?", true).Order("id").Find(&subs).Error
	return subs, err
}
