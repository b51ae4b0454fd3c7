package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type SubscriptionEvent struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

type PromotionService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

func (s *PromotionService) ListPromotions(ctx context.Context) ([]models.Promotion, error) {
	return s.Repo.ListPromotions(ctx)
}

func (s *PromotionService) GetPromotion(ctx context.Context, id uint) (*models.Promotion, error) {
	p, err := s.Repo.GetPromotion(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("Promotion not found: %w", ErrNotFound)
	}
	return p, err
}

func (s *PromotionService) CreatePromotion(ctx context.Context, req transport.PromotionRequest) (*models.Promotion, error) {
	p, err := promotionFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.CreatePromotion(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PromotionService) ReplacePromotion(ctx context.Context, id uint, req transport.PromotionRequest) (*models.Promotion, error) {
	if id == 0 {
		return nil, fmt.Errorf("Promotion ID is required: %w", ErrValidation)
	}
	p, err := promotionFromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ID = id

	out, err := s.Repo.ReplacePromotion(ctx, p)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("Promotion not found: %w", ErrNotFound)
	}
	return out, err
}

func (s *PromotionService) DeletePromotion(ctx context.Context, id uint) error {
	err := s.Repo.DeletePromotion(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("Promotion not found: %w", ErrNotFound)
	}
	return err
}

// Subscribe adds email to the newsletter or re-activates it.
func (s *PromotionService) Subscribe(ctx context.Context, email string) (string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpsertSubscriber(ctx, email); err != nil {
		return "", err
	}
	publish(ctx, s.Events, TopicNewsletter, email, SubscriptionEvent{Type: "newsletter_subscribed", Email: email})
	return email, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("Invalid email: %w", ErrValidation)
	}
	return email, nil
}

func promotionFromRequest(req transport.PromotionRequest) (*models.Promotion, error) {
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", ErrValidation)
	}
	p := &models.Promotion{
		Title:    *req.Title,
		ImageURL: PlaceholderImage,
		IsActive: true,
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Discount != nil {
		p.Discount = string(*req.Discount)
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.ValidUntil != nil {
		p.ValidUntil = string(*req.ValidUntil)
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	return p, nil
}
