package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// WebhookService posts chat-ops messages to a Discord-compatible
// webhook. Best-effort: with no URL configured every send is a logged
// no-op, and failures surface only to the dispatcher's retry loop.
type WebhookService struct {
	url    string
	client *http.Client
}

// NewWebhookService creates a new webhook service
func NewWebhookService(url string) *WebhookService {
	return &WebhookService{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// IsConfigured checks if a webhook URL is set
func (w *WebhookService) IsConfigured() bool {
	return w.url != ""
}

// Send posts a plain content message.
func (w *WebhookService) Send(ctx context.Context, content string) error {
	if !w.IsConfigured() {
		log.Println("Webhook not configured. Skipping chat-ops message.")
		return nil
	}

	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// SendSupportMessage formats and posts a support-form submission.
func (w *WebhookService) SendSupportMessage(ctx context.Context, name, email, message string) error {
	content := fmt.Sprintf("🆘 **New Support Message**\n\n**Name:** %s\n**Email:** %s\n**Message:** %s",
		name, email, message)
	return w.Send(ctx, content)
}
