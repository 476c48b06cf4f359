package client

import "time"

// Campaign represents a monitored marketing campaign
type Campaign struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	PlatformID string    `json:"platform_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Trigger represents an alerting rule on one campaign metric
type Trigger struct {
	ID               int64     `json:"id"`
	CampaignID       int64     `json:"campaign_id"`
	Metric           string    `json:"metric"`   // CTR, Spend, CPM, ROAS
	Operator         string    `json:"operator"` // < or >
	Threshold        float64   `json:"threshold"`
	Mode             string    `json:"mode"` // absolute or relative
	DurationHours    int       `json:"duration_hours"`
	SuppressionHours int       `json:"suppression_hours"`
	Severity         string    `json:"severity"` // info, warning, critical
	Name             string    `json:"name,omitempty"`
	CustomMessage    string    `json:"custom_message,omitempty"`
	Active           bool      `json:"active"`
	Condition        string    `json:"condition"`
	CreatedAt        time.Time `json:"created_at"`
}

// Alert represents a fired trigger condition
type Alert struct {
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

// AlertStats summarizes recent alert activity for one trigger
type AlertStats struct {
	TriggerID int64      `json:"trigger_id"`
	Count     int64      `json:"count"`
	Last      *time.Time `json:"last,omitempty"`
}

// WindowMatch is one historical window that satisfied a simulated
// trigger condition
type WindowMatch struct {
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	Value       float64   `json:"value"`
}

// SimulationResult summarizes a trigger backtest
type SimulationResult struct {
	WindowsChecked int           `json:"windows_checked"`
	ExpectedAlerts int           `json:"expected_alerts"`
	Threshold      float64       `json:"threshold"`
	Sample         []WindowMatch `json:"sample"`
}

// Suggestion proposes a starting threshold for a campaign metric
type Suggestion struct {
	Baseline      float64 `json:"baseline"`
	Spread        float64 `json:"spread"`
	AbsSuggestion float64 `json:"abs_suggestion"`
	RelOptions    []int   `json:"rel_options"`
}

// Observation is one hourly metric row
type Observation struct {
	TS          time.Time `json:"ts"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Spend       float64   `json:"spend"`
	Revenue     float64   `json:"revenue"`
}

// Paginated wraps a page of results
type Paginated[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// ListOptions contains common pagination options
type ListOptions struct {
	Page     int
	PageSize int
}
