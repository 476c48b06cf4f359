package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// AlertService handles alert-related API calls
type AlertService struct {
	client *Client
}

// AlertListOptions contains options for listing alerts
type AlertListOptions struct {
	ListOptions
	TriggerID  int64
	CampaignID int64
	Metric     string
	Severity   string
}

// List retrieves a page of alerts
func (s *AlertService) List(ctx context.Context, opts *AlertListOptions) (*Paginated[Alert], error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.TriggerID > 0 {
			query.Set("trigger_id", strconv.FormatInt(opts.TriggerID, 10))
		}
		if opts.CampaignID > 0 {
			query.Set("campaign_id", strconv.FormatInt(opts.CampaignID, 10))
		}
		if opts.Metric != "" {
			query.Set("metric", opts.Metric)
		}
		if opts.Severity != "" {
			query.Set("severity", opts.Severity)
		}
	}

	path := "/api/v1/alerts"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page Paginated[Alert]
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves an alert by ID
func (s *AlertService) Get(ctx context.Context, id int64) (*Alert, error) {
	var a Alert
	if err := s.client.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/alerts/%d", id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Stats retrieves per-trigger alert counts over the last days
func (s *AlertService) Stats(ctx context.Context, days int) ([]AlertStats, error) {
	path := "/api/v1/alerts/stats"
	if days > 0 {
		path += "?days=" + strconv.Itoa(days)
	}

	var stats []AlertStats
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
