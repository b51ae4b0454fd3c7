package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

// ContentService covers page blocks, site content, site texts and the theme.
type ContentService struct {
	Repo *repo.GormRepo
}

func (s *ContentService) Blocks(ctx context.Context, page string) ([]transport.PageBlockResponse, error) {
	blocks, err := s.Repo.ListBlocks(ctx, page)
	if err != nil {
		return nil, err
	}
	out := make([]transport.PageBlockResponse, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, blockResponse(b))
	}
	return out, nil
}

func (s *ContentService) CreateBlock(ctx context.Context, req transport.PageBlockRequest) (*transport.PageBlockResponse, error) {
	if strings.TrimSpace(req.PageName) == "" || strings.TrimSpace(req.BlockKey) == "" {
		return nil, fmt.Errorf("page_name and block_key are required: %w", ErrValidation)
	}
	b := models.PageBlock{
		PageName:  req.PageName,
		BlockKey:  req.BlockKey,
		BlockType: req.BlockType,
		IsVisible: true,
	}
	if b.BlockType == "" {
		b.BlockType = "text"
	}
	if req.IsVisible != nil {
		b.IsVisible = *req.IsVisible
	}
	b.ContentText, b.ContentJSON = splitContent(req.Content)

	if err := s.Repo.CreateBlock(ctx, &b); err != nil {
		return nil, err
	}
	resp := blockResponse(b)
	return &resp, nil
}

func (s *ContentService) UpdateBlock(ctx context.Context, id uint, req transport.PageBlockRequest) error {
	if id == 0 {
		return fmt.Errorf("ID is required: %w", ErrValidation)
	}
	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}
	text, doc := splitContent(req.Content)
	err := s.Repo.SetBlockContent(ctx, id, text, doc, visible)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("Block not found: %w", ErrNotFound)
	}
	return err
}

func (s *ContentService) HideBlock(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("ID is required: %w", ErrValidation)
	}
	err := s.Repo.HideBlock(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("Block not found: %w", ErrNotFound)
	}
	return err
}

func (s *ContentService) SiteContent(ctx context.Context, section string) (map[string]transport.KeyedValue, error) {
	rows, err := s.Repo.ListSiteContent(ctx, section)
	if err != nil {
		return nil, err
	}
	out := make(map[string]transport.KeyedValue, len(rows))
	for _, r := range rows {
		out[r.ContentKey] = transport.KeyedValue{Value: r.ContentValue, Section: r.Section, Description: r.Description}
	}
	return out, nil
}

func (s *ContentService) UpdateSiteContent(ctx context.Context, body map[string]any) (int64, error) {
	return s.Repo.UpdateSiteContent(ctx, stringValues(body))
}

func (s *ContentService) SiteTexts(ctx context.Context, section string) (map[string]transport.KeyedValue, error) {
	rows, err := s.Repo.ListSiteTexts(ctx, section)
	if err != nil {
		return nil, err
	}
	out := make(map[string]transport.KeyedValue, len(rows))
	for _, r := range rows {
		out[r.TextKey] = transport.KeyedValue{Value: r.TextValue, Section: r.Section, Description: r.Description}
	}
	return out, nil
}

func (s *ContentService) UpdateSiteTexts(ctx context.Context, body map[string]any) (int64, error) {
	return s.Repo.UpdateSiteTexts(ctx, stringValues(body))
}

func (s *ContentService) Theme(ctx context.Context) (map[string]string, error) {
	rows, err := s.Repo.ListTheme(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.ThemeKey] = r.ColorValue
	}
	return out, nil
}

func (s *ContentService) UpdateTheme(ctx context.Context, body map[string]any) (int64, error) {
	return s.Repo.UpdateTheme(ctx, stringValues(body))
}

func blockResponse(b models.PageBlock) transport.PageBlockResponse {
	resp := transport.PageBlockResponse{
		ID:           b.ID,
		PageName:     b.PageName,
		BlockKey:     b.BlockKey,
		BlockType:    b.BlockType,
		IsVisible:    b.IsVisible,
		DisplayOrder: b.DisplayOrder,
	}
	switch {
	case len(b.ContentJSON) > 0:
		resp.Content = json.RawMessage(b.ContentJSON)
	case b.ContentText != nil:
		resp.Content = *b.ContentText
	}
	return resp
}

// splitContent keeps JSON objects and arrays as documents and stores every
// other value as text. A missing or null value clears both columns.
func splitContent(raw json.RawMessage) (*string, datatypes.JSON) {
	r := bytes.TrimSpace(raw)
	if len(r) == 0 || string(r) == "null" {
		return nil, nil
	}
	switch r[0] {
	case '{', '[':
		return nil, datatypes.JSON(r)
	case '"':
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			return &s, nil
		}
	}
	s := string(r)
	return &s, nil
}

func stringValues(body map[string]any) map[string]string {
	out := make(map[string]string, len(body))
	for k, v := range body {
		switch vv := v.(type) {
		case string:
			out[k] = vv
		case nil:
			out[k] = ""
		default:
			b, err := json.Marshal(vv)
			if err != nil {
				out[k] = fmt.Sprint(vv)
				continue
			}
			out[k] = string(b)
		}
	}
	return out
}
