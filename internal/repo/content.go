package repo

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

const (
	pageContentTable = "page_content"
	siteContentTable = "site_content"
	siteTextsTable   = "site_texts"
	siteThemeTable   = "site_theme"
)

func (r *GormRepo) ListBlocks(ctx context.Context, page string) ([]models.PageBlock, error) {
	q := r.from(ctx, pageContentTable)
	if page != "" {
		q = q.Where("page_name = ?", page).Order("display_order").Order("id")
	} else {
		q = q.Order("page_name").Order("display_order").Order("id")
	}
	blocks := []models.PageBlock{}
	err := q.Find(&blocks).Error
	return blocks, err
}

// CreateBlock appends b after the last block of its page.
func (r *GormRepo) CreateBlock(ctx context.Context, b *models.PageBlock) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Table(r.table(pageContentTable)).
			Select("COALESCE(MAX(display_order), 0)").
			Where("page_name = ?", b.PageName).
			Scan(&last).Error; err != nil {
			return err
		}
		b.DisplayOrder = last + 1
		return tx.Table(r.table(pageContentTable)).Create(b).Error
	})
}

// SetBlockContent stores exactly one of text or doc and clears the other column.
func (r *GormRepo) SetBlockContent(ctx context.Context, id uint, text *string, doc datatypes.JSON, visible bool) error {
	values := map[string]any{
		"content_text": nil,
		"content_json": nil,
		"is_visible":   visible,
		"updated_at":   time.Now().UTC(),
	}
	if doc != nil {
		values["content_json"] = doc
	} else if text != nil {
		values["content_text"] = *text
	}
	res := r.from(ctx, pageContentTable).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) HideBlock(ctx context.Context, id uint) error {
	res := r.from(ctx, pageContentTable).Where("id = ?", id).Updates(map[string]any{
		"is_visible": false,
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

func (r *GormRepo) ListSiteContent(ctx context.Context, section string) ([]models.SiteContent, error) {
	q := r.from(ctx, siteContentTable)
	if section != "" {
		q = q.Where("section = ?", section).Order("content_key")
	} else {
		q = q.Order("section").Order("content_key")
	}
	var rows []models.SiteContent
	err := q.Find(&rows).Error
	return rows, err
}

func (r *GormRepo) UpdateSiteContent(ctx context.Context, values map[string]string) (int64, error) {
	return r.updateByKey(ctx, siteContentTable, "content_key", "content_value", values)
}

func (r *GormRepo) ListSiteTexts(ctx context.Context, section string) ([]models.SiteText, error) {
	q := r.from(ctx, siteTextsTable)
	if section != "" {
		q = q.Where("section = ?", section).Order("text_key")
	} else {
		q = q.Order("section").Order("text_key")
	}
	var rows []models.SiteText
	err := q.Find(&rows).Error
	return rows, err
}

func (r *GormRepo) UpdateSiteTexts(ctx context.Context, values map[string]string) (int64, error) {
	return r.updateByKey(ctx, siteTextsTable, "text_key", "text_value", values)
}

func (r *GormRepo) ListTheme(ctx context.Context) ([]models.ThemeSetting, error) {
	var rows []models.ThemeSetting
	err := r.from(ctx, siteThemeTable).Order("theme_key").Find(&rows).Error
	return rows, err
}

func (r *GormRepo) UpdateTheme(ctx context.Context, values map[string]string) (int64, error) {
	return r.updateByKey(ctx, siteThemeTable, "theme_key", "color_value", values)
}

// updateByKey sets valueCol for every existing keyCol in values and returns
// the number of rows matched. Unknown keys are skipped.
func (r *GormRepo) updateByKey(ctx context.Context, table, keyCol, valueCol string, values map[string]string) (int64, error) {
	var matched int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for k, v := range values {
			res := tx.Table(r.table(table)).
				Where(keyCol+" = ?", k).
				Updates(map[string]any{valueCol: v, "updated_at": now})
			if res.Error != nil {
				return res.Error
			}
			matched += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return matched, nil
}
