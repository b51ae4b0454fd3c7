package service

import (
	"context"
	"strings"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const topPagesLimit = 10

type AnalyticsService struct {
	Repo *repo.GormRepo
	Now  func() time.Time
}

func (s *AnalyticsService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AnalyticsService) Track(ctx context.Context, req transport.TrackRequest, ip, userAgent string) error {
	page := "/"
	if req.PageURL != nil && strings.TrimSpace(*req.PageURL) != "" {
		page = *req.PageURL
	}
	return s.Repo.TrackPageView(ctx, &models.PageView{
		PageURL:   page,
		UserIP:    ip,
		UserAgent: userAgent,
		Referrer:  req.Referrer,
		CreatedAt: s.now(),
	})
}

func (s *AnalyticsService) Stats(ctx context.Context) (*transport.AnalyticsStats, error) {
	now := s.now()
	views, err := s.Repo.ViewStats(ctx, now.Add(-24*time.Hour), now.Add(-7*24*time.Hour))
	if err != nil {
		return nil, err
	}
	top, err := s.Repo.TopPages(ctx, topPagesLimit)
	if err != nil {
		return nil, err
	}
	orders, err := s.Repo.OrderStats(ctx)
	if err != nil {
		return nil, err
	}

	out := &transport.AnalyticsStats{
		Views: transport.ViewsSummary{
			Total:  views.TotalViews,
			Unique: views.UniqueVisitors,
			Today:  views.ViewsToday,
			Week:   views.ViewsWeek,
		},
		TopPages: make([]transport.PageViews, 0, len(top)),
		Orders: transport.OrdersSummary{
			Total:     orders.TotalOrders,
			New:       orders.NewOrders,
			Completed: orders.CompletedOrders,
			Revenue:   orders.TotalRevenue,
		},
	}
	for _, p := range top {
		out.TopPages = append(out.TopPages, transport.PageViews{Page: p.PageURL, Views: p.Views})
	}
	return out, nil
}
