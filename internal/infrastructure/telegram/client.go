package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/finman/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// maxResponseSize is the maximum allowed response size from the Bot API (1MB)
const maxResponseSize = 1 * 1024 * 1024

var (
	// ErrNotConfigured indicates the bot token is missing
	ErrNotConfigured = errors.New("telegram: bot token not configured")

	// ErrSendFailed indicates the Bot API rejected the message
	ErrSendFailed = errors.New("telegram: send message failed")
)

// Sender delivers outbound chat messages
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Client talks to the Telegram Bot API
type Client struct {
	apiURL     string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Bot API client from configuration
func NewClient(cfg config.TelegramConfig, logger *zap.Logger) *Client {
	return &Client{
		apiURL: cfg.APIURL,
		token:  cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Enabled reports whether a bot token is configured
func (c *Client) Enabled() bool {
	return c.token != ""
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// SendMessage delivers a Markdown-formatted message to a chat
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return fmt.Errorf("telegram: failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.apiURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("telegram: failed to read response: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("telegram: invalid response (status %d): %w", resp.StatusCode, err)
	}
	if !apiResp.OK {
		c.logger.Warn("telegram send rejected",
			zap.Int64("chat_id", chatID),
			zap.Int("error_code", apiResp.ErrorCode),
			zap.String("description", apiResp.Description))
		return fmt.Errorf("%w: %s (code %d)", ErrSendFailed, apiResp.Description, apiResp.ErrorCode)
	}
	return nil
}

// Ensure Client implements Sender
var _ Sender = (*Client)(nil)
