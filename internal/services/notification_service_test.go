package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pratik-mahalle/campwatch/internal/config"
	"github.com/pratik-mahalle/campwatch/internal/domain/alert"
	"github.com/pratik-mahalle/campwatch/internal/domain/metric"
	apperrors "github.com/pratik-mahalle/campwatch/internal/pkg/errors"
)

func TestWebhookNotifier_Notify(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewWebhookNotifier(config.NotifierConfig{
		WebhookURL: server.URL,
		Channel:    "#campaign-alerts",
		Timeout:    5 * time.Second,
	}, testLogger())

	a := &alert.Alert{
		ID:         1,
		TriggerID:  1,
		CampaignID: 42,
		Metric:     metric.KeySpend,
		Value:      330,
		Message:    "Spend > 300 for 3h",
		Severity:   "critical",
		CreatedAt:  time.Now().UTC(),
	}

	if err := n.Notify(context.Background(), a); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if received == nil {
		t.Fatal("webhook received no payload")
	}
	if received["channel"] != "#campaign-alerts" {
		t.Errorf("channel = %v, want #campaign-alerts", received["channel"])
	}
	text, _ := received["text"].(string)
	if text == "" {
		t.Error("payload has no text")
	}
}

func TestWebhookNotifier_NotifyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := NewWebhookNotifier(config.NotifierConfig{WebhookURL: server.URL}, testLogger())

	err := n.Notify(context.Background(), &alert.Alert{Metric: metric.KeyCTR, Severity: "info"})
	if err == nil {
		t.Fatal("Notify() expected an error for 500 response")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeNotification {
		t.Errorf("error = %v, want NOTIFICATION_FAILURE", err)
	}
}

func TestWebhookNotifier_NotifyUnconfigured(t *testing.T) {
	n := NewWebhookNotifier(config.NotifierConfig{}, testLogger())

	err := n.Notify(context.Background(), &alert.Alert{Metric: metric.KeyCTR, Severity: "info"})
	if err == nil {
		t.Fatal("Notify() expected an error with no webhook URL")
	}
}
