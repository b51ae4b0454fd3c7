package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

const productsTable = "products"

func (r *GormRepo) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	q := r.from(ctx, productsTable).Order("created_at DESC").Order("id DESC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	items := []models.Product{}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.from(ctx, productsTable).Where("id = ?", id).Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.from(ctx, productsTable).Create(p).Error
}

// ReplaceProduct overwrites every editable column of row p.ID.
func (r *GormRepo) ReplaceProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	res := r.from(ctx, productsTable).Where("id = ?", p.ID).Updates(map[string]any{
		"name":              p.Name,
		"price":             p.Price,
		"category":          p.Category,
		"image_url":         p.ImageURL,
		"short_description": p.ShortDescription,
		"full_description":  p.FullDescription,
		"features":          p.Features,
		"in_stock":          p.InStock,
		"is_new":            p.IsNew,
		"discount":          p.Discount,
		"updated_at":        time.Now().UTC(),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetProduct(ctx, p.ID)
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.from(ctx, productsTable).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchProducts is the SQL fallback used when no search index is configured.
func (r *GormRepo) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	where := "LOWER(name) LIKE ? OR LOWER(short_description) LIKE ? OR LOWER(full_description) LIKE ? OR LOWER(category) LIKE ?"

	var total int64
	if err := r.from(ctx, productsTable).Where(where, like, like, like, like).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := r.from(ctx, productsTable).
		Where(where, like, like, like, like).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

type CategoryCount struct {
	Category string
	Count    int64
}

func (r *GormRepo) InStockCategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	var out []CategoryCount
	err := r.from(ctx, productsTable).
		Select("category, COUNT(*) AS count").
		Where("in_stock = ?", true).
		Group("category").
		Order("category").
		Scan(&out).Error
	return out, err
}
