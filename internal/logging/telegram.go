package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shopify-price-updater/internal/config"
)

const (
	iconInfo    = "ℹ️"
	iconError   = "❌"
	iconWarning = "⚠️"
	iconSuccess = "✅"
)

type telegramRequest struct {
	ChatId string `json:"chat_id"`
	Text   string `json:"text"`
}

type telegramNotifier struct {
	creds      config.TelegramBotConfig
	apiBase    string
	httpClient *http.Client
}

func newTelegramNotifier(creds config.TelegramBotConfig) *telegramNotifier {
	return &telegramNotifier{
		creds:      creds,
		apiBase:    "https://api.telegram.org",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *telegramNotifier) Log(value string) {
	_ = t.send(formatMessage(iconInfo, "INFO", value))
}

func (t *telegramNotifier) LogError(value string, err error) {
	message := value
	if err != nil {
		message = fmt.Sprintf("%s: %v", value, err)
	}
	_ = t.send(formatMessage(iconError, "ERROR", message))
}

func (t *telegramNotifier) LogWarning(value string) {
	_ = t.send(formatMessage(iconWarning, "WARNING", value))
}

func (t *telegramNotifier) LogSuccess(value string) {
	_ = t.send(formatMessage(iconSuccess, "SUCCESS", value))
}

func formatMessage(icon, level, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		v = "-"
	}
	return fmt.Sprintf("%s %s: %s", icon, level, v)
}

func (t *telegramNotifier) send(value string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.creds.Token)

	bodyBytes, err := json.Marshal(telegramRequest{
		ChatId: t.creds.ChatId,
		Text:   value,
	})
	if err != nil {
		return err
	}

	resp, err := t.httpClient.Post(url, "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram send failed: %s %s", resp.Status, string(respBody))
	}
	return nil
}
