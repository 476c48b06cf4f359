package services

import (
	"context"
	"time"

	"github.com/pratik-mahalle/campwatch/internal/domain/alert"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/campwatch/internal/pkg/metrics"
)

// AlertService implements alert.Service
type AlertService struct {
	repo     alert.Repository
	notifier alert.Notifier
	logger   *logger.Logger
}

// NewAlertService creates a new alert service. The notifier may be nil
// when delivery is not configured.
func NewAlertService(repo alert.Repository, notifier alert.Notifier, log *logger.Logger) alert.Service {
	return &AlertService{repo: repo, notifier: notifier, logger: log}
}

// Emit persists an alert unless the trigger's cooldown suppresses it.
// The cooldown compares against the latest committed alert for the
// trigger, so a crash between evaluation and emission never shortens
// the suppression window. Notification failure never fails emission.
func (s *AlertService) Emit(ctx context.Context, a *alert.Alert, suppressionHours int) (*alert.Alert, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	if suppressionHours > 0 {
		latest, err := s.repo.LatestByTrigger(ctx, a.TriggerID)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			cutoff := latest.CreatedAt.Add(time.Duration(suppressionHours) * time.Hour)
			if a.CreatedAt.Before(cutoff) {
				metrics.RecordAlertSuppressed()
				s.logger.WithFields(map[string]interface{}{
					"trigger_id": a.TriggerID,
					"until":      cutoff,
				}).Debug("Alert suppressed by cooldown")
				return nil, nil
			}
		}
	}

	id, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	metrics.RecordAlertEmitted(string(a.Metric), a.Severity)

	s.logger.WithFields(map[string]interface{}{
		"alert_id":    id,
		"trigger_id":  a.TriggerID,
		"campaign_id": a.CampaignID,
		"metric":      a.Metric,
		"value":       a.Value,
	}).Info("Alert emitted")

	s.deliver(ctx, a)

	return a, nil
}

// deliver hands the alert to the notifier. Failures are logged and
// recorded; the alert stays persisted with notified = false.
func (s *AlertService) deliver(ctx context.Context, a *alert.Alert) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.Notify(ctx, a); err != nil {
		metrics.RecordNotification("failure")
		s.logger.WithFields(map[string]interface{}{
			"alert_id": a.ID,
		}).ErrorWithErr(err, "Failed to deliver alert notification")
		return
	}

	metrics.RecordNotification("success")
	if err := s.repo.MarkNotified(ctx, a.ID); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"alert_id": a.ID,
		}).ErrorWithErr(err, "Failed to mark alert notified")
		return
	}
	a.Notified = true
}

func (s *AlertService) GetByID(ctx context.Context, id int64) (*alert.Alert, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AlertService) List(ctx context.Context, filter alert.Filter, limit, offset int) ([]*alert.Alert, int64, error) {
	return s.repo.ListWithPagination(ctx, filter, limit, offset)
}

func (s *AlertService) StatsSince(ctx context.Context, since time.Time) (map[int64]*alert.Stats, error) {
	return s.repo.StatsSince(ctx, since)
}
