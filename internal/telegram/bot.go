package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Notifier announces engine events to a chat. Notification failures are
// always non-fatal to the caller.
type Notifier interface {
	SendMessage(text string) error
}

// BotClient is a minimal Telegram Bot API client.
type BotClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	chatID     string
}

var _ Notifier = (*BotClient)(nil)

// NewBotClient creates a client posting to the given chat. An empty chatID
// disables sending, which keeps local setups quiet without extra wiring.
func NewBotClient(token, chatID string) *BotClient {
	return &BotClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://api.telegram.org",
		token:      token,
		chatID:     chatID,
	}
}

// SendMessage posts a plain-text message to the configured chat.
func (c *BotClient) SendMessage(text string) error {
	if c.chatID == "" {
		log.Debug("No admin chat configured, dropping notification", "text", text)
		return nil
	}

	body, err := json.Marshal(map[string]string{
		"chat_id": c.chatID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram api returned %d: %s", resp.StatusCode, string(payload))
	}
	return nil
}

// MockNotifier records messages for testing.
type MockNotifier struct {
	Messages []string
	Err      error
}

var _ Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) SendMessage(text string) error {
	m.Messages = append(m.Messages, text)
	return m.Err
}
