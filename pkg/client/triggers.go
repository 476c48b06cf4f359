package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// TriggerService handles trigger-related API calls
type TriggerService struct {
	client *Client
}

// CreateTriggerRequest represents a request to create a trigger
type CreateTriggerRequest struct {
	CampaignID       int64   `json:"campaign_id"`
	Metric           string  `json:"metric"`   // CTR, Spend, CPM, ROAS
	Operator         string  `json:"operator"` // < or >
	Threshold        float64 `json:"threshold"`
	Mode             string  `json:"mode,omitempty"` // absolute or relative
	DurationHours    int     `json:"duration_hours"`
	SuppressionHours int     `json:"suppression_hours,omitempty"`
	Severity         string  `json:"severity,omitempty"`
	Name             string  `json:"name,omitempty"`
	CustomMessage    string  `json:"custom_message,omitempty"`
}

// UpdateTriggerRequest represents a request to update a trigger
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

// SimulateRequest represents a trigger backtest request
type SimulateRequest struct {
	CampaignID    int64   `json:"campaign_id"`
	Metric        string  `json:"metric"`
	Operator      string  `json:"operator"`
	Threshold     float64 `json:"threshold"`
	Mode          string  `json:"mode,omitempty"`
	DurationHours int     `json:"duration_hours"`
	LookbackDays  int     `json:"lookback_days,omitempty"`
}

// TriggerListOptions contains options for listing triggers
type TriggerListOptions struct {
	CampaignID int64
	Metric     string
	ActiveOnly bool
}

// List retrieves triggers with optional filters
func (s *TriggerService) List(ctx context.Context, opts *TriggerListOptions) ([]Trigger, error) {
	query := url.Values{}
	if opts != nil {
		if opts.CampaignID > 0 {
			query.Set("campaign_id", strconv.FormatInt(opts.CampaignID, 10))
		}
		if opts.Metric != "" {
			query.Set("metric", opts.Metric)
		}
		if opts.ActiveOnly {
			query.Set("active", "true")
		}
	}

	path := "/api/v1/triggers"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var triggers []Trigger
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &triggers); err != nil {
		return nil, err
	}
	return triggers, nil
}

// Get retrieves a trigger by ID
func (s *TriggerService) Get(ctx context.Context, id int64) (*Trigger, error) {
	var t Trigger
	if err := s.client.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/triggers/%d", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create creates a new trigger and returns its ID
func (s *TriggerService) Create(ctx context.Context, req *CreateTriggerRequest) (int64, error) {
	var result struct {
		ID int64 `json:"id"`
	}
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/triggers", req, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

// Update updates trigger fields
func (s *TriggerService) Update(ctx context.Context, id int64, req *UpdateTriggerRequest) error {
	return s.client.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/v1/triggers/%d", id), req, nil)
}

// Delete deletes a trigger
func (s *TriggerService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/triggers/%d", id), nil, nil)
}

// Pause deactivates a trigger
func (s *TriggerService) Pause(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, http.MethodPost, fmt.Sprintf("/api/v1/triggers/%d/pause", id), nil, nil)
}

// Resume reactivates a trigger
func (s *TriggerService) Resume(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, http.MethodPost, fmt.Sprintf("/api/v1/triggers/%d/resume", id), nil, nil)
}

// Simulate backtests a trigger definition over historical data
func (s *TriggerService) Simulate(ctx context.Context, req *SimulateRequest) (*SimulationResult, error) {
	var result SimulationResult
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/triggers/simulate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SuggestThreshold proposes a threshold for a campaign metric
func (s *TriggerService) SuggestThreshold(ctx context.Context, campaignID int64, metric string) (*Suggestion, error) {
	query := url.Values{}
	query.Set("campaign_id", strconv.FormatInt(campaignID, 10))
	query.Set("metric", metric)

	var suggestion Suggestion
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/triggers/suggest?"+query.Encode(), nil, &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}
