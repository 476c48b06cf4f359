package client

import (
	"context"
	"net/http"
)

// MetricService handles metric ingestion API calls
type MetricService struct {
	client *Client
}

// IngestRequest represents a batch of metric rows for one campaign
type IngestRequest struct {
	CampaignID   int64         `json:"campaign_id"`
	Observations []Observation `json:"observations"`
}

// Ingest appends metric observations for a campaign
func (s *MetricService) Ingest(ctx context.Context, req *IngestRequest) error {
	return s.client.doRequest(ctx, http.MethodPost, "/api/v1/metrics", req, nil)
}
