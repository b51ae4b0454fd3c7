package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const PlaceholderImage = "/placeholder.svg"

// ProductIndex is implemented by search.Index.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
	Search(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error)
}

type ProductEvent struct {
	Type      string  `json:"type"`
	ProductID uint    `json:"productID"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Category  string  `json:"category,omitempty"`
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
	Index  ProductIndex
}

func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx, category)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("Product not found: %w", ErrNotFound)
	}
	return p, err
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.ProductRequest) (*models.Product, error) {
	p, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "product_created", *p)
	return p, nil
}

// ReplaceProduct overwrites the row named by req.ID with the request fields,
// applying the same defaults as CreateProduct.
func (s *CatalogService) ReplaceProduct(ctx context.Context, req transport.ProductRequest) (*models.Product, error) {
	if req.ID == nil || *req.ID == 0 {
		return nil, fmt.Errorf("Product ID is required: %w", ErrValidation)
	}
	p, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ID = uint(*req.ID)

	out, err := s.Repo.ReplaceProduct(ctx, p)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("Product not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "product_updated", *out)
	return out, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("Product not found: %w", ErrNotFound)
	}
	if err != nil {
		return err
	}

	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_index_delete_failed", "product_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, TopicProducts, strconv.FormatUint(uint64(id), 10), ProductEvent{Type: "product_deleted", ProductID: id})
	return nil
}

// SearchProducts queries the search index when one is configured and the
// products table otherwise.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, fmt.Errorf("query is required: %w", ErrValidation)
	}
	if s.Index != nil {
		total, items, err := s.Index.Search(ctx, q, offset, limit)
		if err == nil {
			return total, items, nil
		}
		logging.FromContext(ctx).Warn("search_index_query_failed", "error", err)
	}
	return s.Repo.SearchProducts(ctx, q, offset, limit)
}

func (s *CatalogService) afterWrite(ctx context.Context, kind string, p models.Product) {
	if s.Index != nil {
		if err := s.Index.IndexProduct(ctx, p); err != nil {
			logging.FromContext(ctx).Warn("search_index_put_failed", "product_id", p.ID, "error", err)
		}
	}
	publish(ctx, s.Events, TopicProducts, strconv.FormatUint(uint64(p.ID), 10), ProductEvent{
		Type:      kind,
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
	})
}

func productFromRequest(req transport.ProductRequest) (*models.Product, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	if req.Category == nil || strings.TrimSpace(*req.Category) == "" {
		return nil, fmt.Errorf("category is required: %w", ErrValidation)
	}
	if req.Price == nil {
		return nil, fmt.Errorf("price is required: %w", ErrValidation)
	}
	if *req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	p := &models.Product{
		Name:     *req.Name,
		Price:    *req.Price,
		Category: *req.Category,
		ImageURL: PlaceholderImage,
		Features: datatypes.JSON("{}"),
		InStock:  true,
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.ShortDescription != nil {
		p.ShortDescription = *req.ShortDescription
	}
	if req.FullDescription != nil {
		p.FullDescription = *req.FullDescription
	}
	if f := strings.TrimSpace(string(req.Features)); f != "" && f != "null" {
		p.Features = datatypes.JSON(f)
	}
	if req.InStock != nil {
		p.InStock = *req.InStock
	}
	if req.IsNew != nil {
		p.IsNew = *req.IsNew
	}
	if req.Discount != nil {
		p.Discount = *req.Discount
	}
	return p, nil
}
