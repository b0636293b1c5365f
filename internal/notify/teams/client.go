package teams

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aigovern/admin-api/internal/config"
)

// MessageCard is the legacy Teams incoming-webhook card format. It is still
// the format the governance channel connector accepts.
type MessageCard struct {
	Type       string    `json:"@type"`
	Context    string    `json:"@context"`
	Summary    string    `json:"summary"`
	ThemeColor string    `json:"themeColor,omitempty"`
	Title      string    `json:"title"`
	Text       string    `json:"text,omitempty"`
	Sections   []Section `json:"sections,omitempty"`
}

// Section groups facts on a card.
type Section struct {
	Facts []Fact `json:"facts,omitempty"`
}

// Fact is a single name/value row on a card.
type Fact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewMessageCard creates a card with the fixed type/context fields set.
func NewMessageCard(title, summary string) *MessageCard {
	return &MessageCard{
		Type:    "MessageCard",
		Context: "http://schema.org/extensions",
		Summary: summary,
		Title:   title,
	}
}

// Client posts cards to a Teams incoming webhook. An empty webhook URL puts
// the client in disabled mode: cards are logged and dropped, which keeps
// local development working without a channel connector.
type Client struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client from notification configuration.
func NewClient(cfg config.NotifyConfig, logger *slog.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		webhookURL: cfg.TeamsWebhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "teams_client"),
	}
}

// PostCard sends a card to the webhook and returns an error on any non-2xx
// response or transport failure.
func (c *Client) PostCard(ctx context.Context, card *MessageCard) error {
	if c.webhookURL == "" {
		c.logger.Debug("teams webhook not configured, dropping card",
			"title", card.Title)
		return nil
	}

	body, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal card: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post card to webhook: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Error("failed to close webhook response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Teams returns error detail in the body; keep it short in the error.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, detail)
	}

	c.logger.Debug("card posted", "title", card.Title)
	return nil
}
