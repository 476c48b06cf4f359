package alert

import (
	"time"

	"github.com/pratik-mahalle/campwatch/internal/domain/metric"
)

// Alert records a trigger condition that was satisfied during a live
// evaluation pass. Alerts are write-once; only the notified flag is
// flipped after delivery.
type Alert struct {
	ID         int64      `json:"id"`
	TriggerID  int64      `json:"trigger_id"`
	CampaignID int64      `json:"campaign_id"`
	Metric     metric.Key `json:"metric"`
	Value      float64    `json:"value"`
	Message    string     `json:"message"`
	Severity   string     `json:"severity"`
	Notified   bool       `json:"notified"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Filter contains alert filtering options
type Filter struct {
	TriggerID  int64
	CampaignID int64
	Metric     string
	Severity   string
}

// Stats summarizes recent alert activity for one trigger
type Stats struct {
	TriggerID int64      `json:"trigger_id"`
	Count     int64      `json:"count"`
	Last      *time.Time `json:"last,omitempty"`
}
