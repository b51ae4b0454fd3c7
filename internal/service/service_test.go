package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/mailer"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "650", FormatMoney(650))
	assert.Equal(t, "99.50", FormatMoney(99.5))
	assert.Equal(t, "0", FormatMoney(0))
}

func TestCartSummary(t *testing.T) {
	items := []models.CartItem{
		{ProductName: "Sencha <green>", ProductPrice: 250, Quantity: 2},
		{ProductName: "Cup", ProductPrice: 99.5, Quantity: 1},
	}
	out := CartSummary(items)

	assert.Contains(t, out, "• Sencha &lt;green&gt; x2 = 500₽")
	assert.Contains(t, out, "• Cup x1 = 99.50₽")
	assert.Contains(t, out, "Итого: 599.50₽")
}

func TestCartLinesTotal(t *testing.T) {
	views, total := CartLines([]models.CartItem{
		{ID: 1, ProductPrice: 10, Quantity: 3},
		{ID: 2, ProductPrice: 2.5, Quantity: 2},
	})
	require.Len(t, views, 2)
	assert.InDelta(t, 30, views[0].Total, 1e-9)
	assert.InDelta(t, 35, total, 1e-9)
}

func TestStartCartID(t *testing.T) {
	cases := []struct {
		in string
		id uint
		ok bool
	}{
		{"/start_42", 42, true},
		{"/start order_7", 7, true},
		{"/start", 0, false},
		{"/start_", 0, false},
		{"/start_abc", 0, false},
		{"/start_-1", 0, false},
		{"/starter_5", 0, false},
	}
	for _, tc := range cases {
		id, ok := startCartID(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.id, id, tc.in)
	}
}

func TestParseDataURL(t *testing.T) {
	img, err := ParseDataURL("data:image/svg+xml;base64,PHN2Zy8+")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", img.ContentType)
	assert.Equal(t, "svg", img.Ext)
	assert.Equal(t, "<svg/>", string(img.Data))

	img, err = ParseDataURL("data:image/PNG;base64,aGk")
	require.NoError(t, err)
	assert.Equal(t, "png", img.Ext)

	for _, bad := range []string{
		"image/png;base64,aGk=",
		"data:image/png;base64",
		"data:image/../x;base64,aGk=",
		"data:image/png;base64,@@@",
		"data:image/png;base64,",
	} {
		_, err := ParseDataURL(bad)
		require.ErrorIs(t, err, ErrValidation, bad)
	}
}

type recordingStore struct {
	calls int
	err   error
}

func (s *recordingStore) Put(context.Context, string, string, []byte) error {
	s.calls++
	return s.err
}

func TestUploadStoreFailureIsNotValidation(t *testing.T) {
	store := &recordingStore{err: errors.New("403 forbidden")}
	svc := &UploadService{Store: store, CDNBaseURL: "https://cdn.example/", AccountID: "acc"}

	_, err := svc.Upload(context.Background(), "data:image/png;base64,aGk=")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, 1, store.calls)

	_, err = svc.Upload(context.Background(), "not-an-image")
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 1, store.calls)
}

func TestUploadObjectKey(t *testing.T) {
	svc := &UploadService{
		CDNBaseURL: "https://cdn.example/",
		AccountID:  "acc",
		Now:        func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) },
		NewSuffix:  func() string { return "deadbeef" },
	}
	key := svc.objectKey("jpeg")
	assert.Equal(t, "products/20250102_030405_deadbeef.jpeg", key)
	assert.Equal(t, "https://cdn.example/projects/acc/bucket/"+key, svc.PublicURL(key))

	svc.NewSuffix = nil
	assert.Regexp(t, `^products/20250102_030405_[0-9a-f]{8}\.png$`, svc.objectKey("png"))
}

func TestReason(t *testing.T) {
	assert.Equal(t, "cart_id required", Reason(fmt.Errorf("cart_id required: %w", ErrValidation)))
	assert.Equal(t, "Order not found", Reason(fmt.Errorf("Order not found: %w", ErrNotFound)))
	assert.Equal(t, "boom", Reason(errors.New("boom")))
}

type failingMailer struct{ err error }

func (m failingMailer) Send(context.Context, mailer.Message) error { return m.err }

func TestSendTestErrors(t *testing.T) {
	ctx := context.Background()
	full := config.SMTP{Host: "h", Port: "587", User: "u", Password: "p"}

	svc := &MailService{SMTP: config.SMTP{}, Mailer: failingMailer{}}
	err := svc.SendTest(ctx, "a@example.com")
	var missing *MissingSMTPError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD"}, missing.Params)
	assert.ErrorIs(t, err, ErrConfig)

	require.ErrorIs(t, svc.SendTest(ctx, "  "), ErrValidation)

	svc = &MailService{SMTP: full, Mailer: failingMailer{err: errors.New("auth failed")}}
	err = svc.SendTest(ctx, "a@example.com")
	var sendErr *SendError
	require.ErrorAs(t, err, &sendErr)
	assert.Equal(t, "Ошибка отправки: auth failed", err.Error())
}

func TestSendNewsletterRequiresContent(t *testing.T) {
	svc := &MailService{SMTP: config.SMTP{Host: "h", Port: "1", User: "u", Password: "p"}}
	_, err := svc.SendNewsletter(context.Background(), transport.NewsletterRequest{Subject: "Hi"})
	require.ErrorIs(t, err, ErrValidation)
}
