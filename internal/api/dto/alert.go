package dto

import "time"

// AlertDTO represents an alert in API responses
type AlertDTO struct {
	ID         int64     `json:"id"`
	TriggerID  int64     `json:"trigger_id"`
	CampaignID int64     `json:"campaign_id"`
	Metric     string    `json:"metric"`
	Value      float64   `json:"value"`
	Message    string    `json:"message"`
	Severity   string    `json:"severity"`
	Notified   bool      `json:"notified"`
	CreatedAt  time.Time `json:"created_at"`
}

// AlertStatsDTO represents per-trigger alert activity
type AlertStatsDTO struct {
	TriggerID int64      `json:"trigger_id"`
	Count     int64      `json:"count"`
	Last      *time.Time `json:"last,omitempty"`
}
