package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/laprovidence/livestock/internal/config"
)

// Client exposes the outbound notification operations used by the scheduler.
type Client interface {
	Send(ctx context.Context, n Notification) error
}

// Notification is a plain-text summary pushed to the configured webhook.
type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	SentAt  string `json:"sent_at"`
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewClient builds a webhook notification client from configuration.
func NewClient(cfg config.NotifyConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: cfg.WebhookURL,
	}
}

// Send posts the notification payload to the webhook.
func (c *WebhookClient) Send(ctx context.Context, n Notification) error {
	if n.SentAt == "" {
		n.SentAt = time.Now().UTC().Format(time.RFC3339)
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(n).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("notification webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
