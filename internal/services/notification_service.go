package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pratik-mahalle/campwatch/internal/config"
	"github.com/pratik-mahalle/campwatch/internal/domain/alert"
	"github.com/pratik-mahalle/campwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
)

// WebhookNotifier delivers alerts to a Slack-compatible incoming
// webhook. It implements alert.Notifier.
type WebhookNotifier struct {
	webhookURL string
	channel    string
	logger     *logger.Logger
	httpClient *http.Client
}

// NewWebhookNotifier creates a new webhook notifier
func NewWebhookNotifier(cfg config.NotifierConfig, log *logger.Logger) *WebhookNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		webhookURL: cfg.WebhookURL,
		channel:    cfg.Channel,
		logger:     log,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// severityEmoji maps severity levels to Slack message markers
var severityEmoji = map[string]string{
	"info":     ":information_source:",
	"warning":  ":warning:",
	"critical": ":rotating_light:",
}

// Notify posts the alert to the configured webhook
func (n *WebhookNotifier) Notify(ctx context.Context, a *alert.Alert) error {
	if n.webhookURL == "" {
		return errors.NotificationFailure("webhook", fmt.Errorf("no webhook URL configured"))
	}

	emoji := severityEmoji[a.Severity]
	if emoji == "" {
		emoji = ":bell:"
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"channel": n.channel,
		"text":    fmt.Sprintf("%s *Campaign alert* [%s]: %s", emoji, a.Severity, a.Message),
		"attachments": []map[string]interface{}{
			{
				"fields": []map[string]interface{}{
					{"title": "Campaign", "value": fmt.Sprintf("%d", a.CampaignID), "short": true},
					{"title": "Metric", "value": string(a.Metric), "short": true},
					{"title": "Window value", "value": fmt.Sprintf("%.4g", a.Value), "short": true},
					{"title": "Triggered at", "value": a.CreatedAt.Format(time.RFC3339), "short": true},
				},
			},
		},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return errors.NotificationFailure("webhook", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return errors.NotificationFailure("webhook", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NotificationFailure("webhook",
			fmt.Errorf("webhook returned status %d", resp.StatusCode))
	}

	return nil
}
