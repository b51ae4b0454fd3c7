package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
)

const pageViewsTable = "page_views"

func (r *GormRepo) TrackPageView(ctx context.Context, v *models.PageView) error {
	return r.from(ctx, pageViewsTable).Create(v).Error
}

type ViewStats struct {
	TotalViews     int64
	UniqueVisitors int64
	ViewsToday     int64
	ViewsWeek      int64
}

// ViewStats counts views overall and since the two cutoffs.
func (r *GormRepo) ViewStats(ctx context.Context, dayAgo, weekAgo time.Time) (ViewStats, error) {
	var s ViewStats
	sql := fmt.Sprintf(`SELECT
		COUNT(*) AS total_views,
		COUNT(DISTINCT user_ip) AS unique_visitors,
		COUNT(CASE WHEN created_at > ? THEN 1 END) AS views_today,
		COUNT(CASE WHEN created_at > ? THEN 1 END) AS views_week
	FROM %s`, r.quoted(pageViewsTable))
	err := r.DB.WithContext(ctx).Raw(sql, dayAgo, weekAgo).Scan(&s).Error
	return s, err
}

type PageCount struct {
	PageURL string
	Views   int64
}

func (r *GormRepo) TopPages(ctx context.Context, limit int) ([]PageCount, error) {
	out := []PageCount{}
	err := r.from(ctx, pageViewsTable).
		Select("page_url, COUNT(*) AS views").
		Group("page_url").
		Order("views DESC").
		Order("page_url").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

type OrderStats struct {
	TotalOrders     int64
	NewOrders       int64
	CompletedOrders int64
	TotalRevenue    float64
}

// OrderStats counts orders by status; revenue sums completed orders only.
func (r *GormRepo) OrderStats(ctx context.Context) (OrderStats, error) {
	var s OrderStats
	sql := fmt.Sprintf(`SELECT
		COUNT(*) AS total_orders,
		COUNT(CASE WHEN status = 'new' THEN 1 END) AS new_orders,
		COUNT(CASE WHEN status = 'completed' THEN 1 END) AS completed_orders,
		COALESCE(SUM(CASE WHEN status = 'completed' THEN total_price ELSE 0 END), 0) AS total_revenue
	FROM %s`, r.quoted(ordersTable))
	err := r.DB.WithContext(ctx).Raw(sql).Scan(&s).Error
	return s, err
}
