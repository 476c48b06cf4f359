package dto

import "time"

// ObservationDTO represents one metric row in an ingest request
type ObservationDTO struct {
	TS          time.Time `json:"ts" validate:"required"`
	Impressions int64     `json:"impressions" validate:"min=0"`
	Clicks      int64     `json:"clicks" validate:"min=0"`
	Spend       float64   `json:"spend" validate:"min=0"`
	Revenue     float64   `json:"revenue" validate:"min=0"`
}

// IngestMetricsRequest represents a batch of metric rows for one campaign
type IngestMetricsRequest struct {
	CampaignID   int64            `json:"campaign_id" validate:"required"`
	Observations []ObservationDTO `json:"observations" validate:"required,min=1,dive"`
}

// SuggestThresholdResponse carries threshold suggestion statistics
type SuggestThresholdResponse struct {
	Baseline      float64 `json:"baseline"`
	Spread        float64 `json:"spread"`
	AbsSuggestion float64 `json:"abs_suggestion"`
	RelOptions    []int   `json:"rel_options"`
}
