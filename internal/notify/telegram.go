package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultAPIBase = "https://api.telegram.org"

// TelegramConfig holds the bot credentials. Either field being empty disables
// the channel.
type TelegramConfig struct {
	BotToken string
	ChatID   string
	// BaseURL overrides the Telegram API endpoint, used by tests.
	BaseURL string
}

// Telegram sends run reports through a Telegram bot.
type Telegram struct {
	botToken string
	chatID   string
	baseURL  string
	http     *http.Client
	log      zerolog.Logger
}

// New creates a Telegram notifier.
func New(cfg TelegramConfig, log zerolog.Logger) *Telegram {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultAPIBase
	}
	return &Telegram{
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 15 * time.Second},
		log:      log,
	}
}

// Configured reports whether both credentials are present.
func (t *Telegram) Configured() bool {
	return t.botToken != "" && t.chatID != ""
}

// Send delivers text as an HTML-formatted message. An unconfigured channel is
// a logged no-op, never a failure. Delivery errors are logged and returned,
// but the caller is expected to treat them as non-fatal.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if !t.Configured() {
		t.log.Warn().Msg("telegram not configured, skipping notification")
		return nil
	}

	payload := map[string]string{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		t.log.Warn().Err(err).Msg("telegram send failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("telegram send: unexpected status %s", resp.Status)
		t.log.Warn().Int("status", resp.StatusCode).Msg("telegram send rejected")
		return err
	}

	return nil
}
