package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUpdate(t *testing.T) {
	msg, ok, err := ParseUpdate([]byte(`{"update_id":1,"message":{"message_id":5,"date":0,"chat":{"id":42,"type":"private"},"text":"/start_7"}}`))
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 42, msg.ChatID)
	assert.Equal(t, "/start_7", msg.Text)

	_, ok, err = ParseUpdate([]byte(`{"update_id":2}`))
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ParseUpdate([]byte(`not json`))
	require.Error(t, err)
}

func TestClientSend(t *testing.T) {
	type call struct {
		path   string
		chatID string
		text   string
		markup string
	}
	calls := make(chan call, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		calls <- call{
			path:   r.URL.Path,
			chatID: r.FormValue("chat_id"),
			text:   r.FormValue("text"),
			markup: r.FormValue("reply_markup"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`))
	}))
	defer srv.Close()

	c, err := New("123:abc", Options{ServerURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	require.NoError(t, c.Send(context.Background(), "42", "<b>hi</b>", Button{Text: "shop", URL: "https://example.com"}))

	got := <-calls
	assert.Equal(t, "/bot123:abc/sendMessage", got.path)
	assert.Equal(t, "42", got.chatID)
	assert.Equal(t, "<b>hi</b>", got.text)

	var markup struct {
		InlineKeyboard [][]struct {
			Text string `json:"text"`
			URL  string `json:"url"`
		} `json:"inline_keyboard"`
	}
	require.NoError(t, json.Unmarshal([]byte(got.markup), &markup))
	require.Len(t, markup.InlineKeyboard, 1)
	assert.Equal(t, "https://example.com", markup.InlineKeyboard[0][0].URL)
}

func TestChatValue(t *testing.T) {
	assert.Equal(t, int64(-100123), chatValue("-100123"))
	assert.Equal(t, "@shop_admins", chatValue("@shop_admins"))
}
