package dto

import "time"

// TriggerDTO represents a trigger in API responses
type TriggerDTO struct {
	ID               int64     `json:"id"`
	CampaignID       int64     `json:"campaign_id"`
	Metric           string    `json:"metric"`
	Operator         string    `json:"operator"`
	Threshold        float64   `json:"threshold"`
	Mode             string    `json:"mode"`
	DurationHours    int       `json:"duration_hours"`
	SuppressionHours int       `json:"suppression_hours"`
	Severity         string    `json:"severity"`
	Name             string    `json:"name,omitempty"`
	CustomMessage    string    `json:"custom_message,omitempty"`
	Active           bool      `json:"active"`
	Condition        string    `json:"condition"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateTriggerRequest represents a trigger creation request
type CreateTriggerRequest struct {
	CampaignID       int64   `json:"campaign_id" validate:"required"`
	Metric           string  `json:"metric" validate:"required,oneof=CTR Spend CPM ROAS"`
	Operator         string  `json:"operator" validate:"required,oneof=< >"`
	Threshold        float64 `json:"threshold"`
	Mode             string  `json:"mode,omitempty" validate:"omitempty,oneof=absolute relative"`
	DurationHours    int     `json:"duration_hours" validate:"required,min=1"`
	SuppressionHours int     `json:"suppression_hours,omitempty" validate:"min=0"`
	Severity         string  `json:"severity,omitempty" validate:"omitempty,oneof=info warning critical"`
	Name             string  `json:"name,omitempty" validate:"max=255"`
	CustomMessage    string  `json:"custom_message,omitempty"`
}

// UpdateTriggerRequest represents a trigger update request
type UpdateTriggerRequest struct {
	Metric           *string  `json:"metric,omitempty"`
	Operator         *string  `json:"operator,omitempty"`
	Threshold        *float64 `json:"threshold,omitempty"`
	Mode             *string  `json:"mode,omitempty"`
	DurationHours    *int     `json:"duration_hours,omitempty"`
	SuppressionHours *int     `json:"suppression_hours,omitempty"`
	Severity         *string  `json:"severity,omitempty"`
	Name             *string  `json:"name,omitempty"`
	CustomMessage    *string  `json:"custom_message,omitempty"`
	Active           *bool    `json:"active,omitempty"`
}

// SimulateTriggerRequest represents a backtest request for a trigger
// definition that does not need to be persisted
type SimulateTriggerRequest struct {
	CampaignID    int64   `json:"campaign_id" validate:"required"`
	Metric        string  `json:"metric" validate:"required,oneof=CTR Spend CPM ROAS"`
	Operator      string  `json:"operator" validate:"required,oneof=< >"`
	Threshold     float64 `json:"threshold"`
	Mode          string  `json:"mode,omitempty" validate:"omitempty,oneof=absolute relative"`
	DurationHours int     `json:"duration_hours" validate:"required,min=1"`
	LookbackDays  int     `json:"lookback_days,omitempty" validate:"min=0,max=365"`
}
