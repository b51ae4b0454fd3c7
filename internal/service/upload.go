package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BlobStore is implemented by storage.S3Store.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

type Image struct {
	ContentType string
	Ext         string
	Data        []byte
}

var extPattern = regexp.MustCompile(`^[A-Za-z0-9.-]+$`)

// ParseDataURL decodes "data:image/<type>;base64,<payload>".
func ParseDataURL(s string) (*Image, error) {
	if !strings.HasPrefix(s, "data:image/") {
		return nil, fmt.Errorf("Invalid image format: %w", ErrValidation)
	}
	header, payload, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("Invalid image format: %w", ErrValidation)
	}
	mime, _, _ := strings.Cut(strings.TrimPrefix(header, "data:"), ";")
	ext, _, _ := strings.Cut(strings.TrimPrefix(mime, "image/"), "+")
	if !extPattern.MatchString(ext) {
		return nil, fmt.Errorf("Invalid image format: %w", ErrValidation)
	}

	data, err := decodeBase64(payload)
	if err != nil || len(data) == 0 {
		return nil, fmt.Errorf("Invalid image data: %w", ErrValidation)
	}
	return &Image{ContentType: mime, Ext: strings.ToLower(ext), Data: data}, nil
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

type UploadService struct {
	Store      BlobStore
	CDNBaseURL string
	AccountID  string
	Now        func() time.Time
	NewSuffix  func() string
}

// Upload validates a data URL, stores the image under products/ and returns
// its public CDN URL.
func (s *UploadService) Upload(ctx context.Context, dataURL string) (string, error) {
	img, err := ParseDataURL(dataURL)
	if err != nil {
		return "", err
	}
	if s.Store == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	key := s.objectKey(img.Ext)
	if err := s.Store.Put(ctx, key, img.ContentType, img.Data); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

func (s *UploadService) PublicURL(key string) string {
	return fmt.Sprintf("%s/projects/%s/bucket/%s", strings.TrimRight(s.CDNBaseURL, "/"), s.AccountID, key)
}

func (s *UploadService) objectKey(ext string) string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	suffix := s.NewSuffix
	if suffix == nil {
		suffix = func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:8] }
	}
	return fmt.Sprintf("products/%s_%s.%s", now().UTC().Format("20060102_150405"), suffix(), ext)
}
