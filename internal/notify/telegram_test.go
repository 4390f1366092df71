package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendUnconfiguredIsNoOp(t *testing.T) {
	var requests int
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer mockServer.Close()

	notifier := New(TelegramConfig{BaseURL: mockServer.URL}, zerolog.Nop())

	assert.False(t, notifier.Configured())
	assert.NoError(t, notifier.Send(context.Background(), "hello"))
	assert.Equal(t, 0, requests)
}

func TestSendPostsHTMLMessage(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/botbot-token/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "12345", payload["chat_id"])
		assert.Equal(t, "HTML", payload["parse_mode"])
		assert.Equal(t, "<b>report</b>", payload["text"])

		w.Write([]byte(`{"ok": true}`))
	}))
	defer mockServer.Close()

	notifier := New(TelegramConfig{
		BotToken: "bot-token",
		ChatID:   "12345",
		BaseURL:  mockServer.URL,
	}, zerolog.Nop())

	assert.NoError(t, notifier.Send(context.Background(), "<b>report</b>"))
}

func TestSendReturnsErrorOnRejection(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok": false, "description": "chat not found"}`))
	}))
	defer mockServer.Close()

	notifier := New(TelegramConfig{
		BotToken: "bot-token",
		ChatID:   "12345",
		BaseURL:  mockServer.URL,
	}, zerolog.Nop())

	assert.Error(t, notifier.Send(context.Background(), "report"))
}
