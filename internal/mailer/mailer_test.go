package mailer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/config"
)

func TestBuildMultipartAlternative(t *testing.T) {
	mm, err := Build("shop@example.com", Message{
		To:      "customer@example.com",
		Subject: "Welcome",
		HTML:    "<h2>Hello</h2>",
		Text:    "Hello",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = mm.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "Subject: Welcome")
	assert.Contains(t, raw, "<customer@example.com>")
}

func TestBuildRejectsBadRecipient(t *testing.T) {
	_, err := Build("shop@example.com", Message{To: "not an address"})
	require.Error(t, err)
}

func TestSendRejectsNonNumericPort(t *testing.T) {
	m := New(config.SMTP{Host: "localhost", Port: "smtp", User: "shop@example.com", Password: "x"}, 0)
	err := m.Send(context.Background(), Message{To: "a@b.c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_PORT")
}
