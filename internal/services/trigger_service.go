package services

import (
	"context"

	"github.com/pratik-mahalle/campwatch/internal/domain/campaign"
	"github.com/pratik-mahalle/campwatch/internal/domain/metric"
	"github.com/pratik-mahalle/campwatch/internal/domain/trigger"
	"github.com/pratik-mahalle/campwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
)

// TriggerService implements trigger.Service
type TriggerService struct {
	repo      trigger.Repository
	campaigns campaign.Repository
	logger    *logger.Logger
}

// NewTriggerService creates a new trigger service
func NewTriggerService(repo trigger.Repository, campaigns campaign.Repository, log *logger.Logger) trigger.Service {
	return &TriggerService{repo: repo, campaigns: campaigns, logger: log}
}

func (s *TriggerService) Create(ctx context.Context, t *trigger.Trigger) (int64, error) {
	if t.Mode == "" {
		t.Mode = trigger.ModeAbsolute
	}
	if t.Severity == "" {
		t.Severity = trigger.SeverityInfo
	}

	if err := t.Validate(); err != nil {
		return 0, errors.InvalidTriggerConfig(err.Error())
	}
	if _, err := s.campaigns.GetByID(ctx, t.CampaignID); err != nil {
		return 0, errors.NotFound("Campaign")
	}

	id, err := s.repo.Create(ctx, t)
	if err != nil {
		return 0, err
	}
	t.ID = id

	s.logger.WithFields(map[string]interface{}{
		"trigger_id":  id,
		"campaign_id": t.CampaignID,
		"condition":   t.Condition(),
	}).Info("Trigger created")

	return id, nil
}

func (s *TriggerService) GetByID(ctx context.Context, id int64) (*trigger.Trigger, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TriggerService) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if v, ok := updates["metric"].(string); ok {
		key, err := metric.ParseKey(v)
		if err != nil {
			return errors.InvalidTriggerConfig(err.Error())
		}
		t.Metric = key
	}
	if v, ok := updates["operator"].(string); ok {
		t.Operator = trigger.Operator(v)
	}
	if v, ok := updates["threshold"].(float64); ok {
		t.Threshold = v
	}
	if v, ok := updates["mode"].(string); ok {
		t.Mode = v
	}
	if v, ok := updates["duration_hours"].(int); ok {
		t.DurationHours = v
	}
	if v, ok := updates["suppression_hours"].(int); ok {
		t.SuppressionHours = v
	}
	if v, ok := updates["severity"].(string); ok {
		t.Severity = v
	}
	if v, ok := updates["name"].(string); ok {
		t.Name = v
	}
	if v, ok := updates["custom_message"].(string); ok {
		t.CustomMessage = v
	}
	if v, ok := updates["active"].(bool); ok {
		t.Active = v
	}

	// The assembled trigger must still be valid as a whole
	if err := t.Validate(); err != nil {
		return errors.InvalidTriggerConfig(err.Error())
	}

	return s.repo.Update(ctx, t)
}

func (s *TriggerService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithFields(map[string]interface{}{"trigger_id": id}).Info("Trigger deleted")
	return nil
}

func (s *TriggerService) List(ctx context.Context, filter trigger.Filter) ([]*trigger.Trigger, error) {
	return s.repo.List(ctx, filter)
}

func (s *TriggerService) SetActive(ctx context.Context, id int64, active bool) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.Active == active {
		return nil
	}
	t.Active = active
	if err := s.repo.Update(ctx, t); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"trigger_id": id,
		"active":     active,
	}).Info("Trigger state changed")

	return nil
}
