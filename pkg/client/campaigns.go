package client

import (
	"context"
	"fmt"
	"net/http"
)

// CampaignService handles campaign-related API calls
type CampaignService struct {
	client *Client
}

// CreateCampaignRequest represents a request to create a campaign
type CreateCampaignRequest struct {
	Name       string `json:"name"`
	PlatformID string `json:"platform_id,omitempty"`
}

// UpdateCampaignRequest represents a request to update a campaign
type UpdateCampaignRequest struct {
	Name       *string `json:"name,omitempty"`
	PlatformID *string `json:"platform_id,omitempty"`
}

// List retrieves all campaigns
func (s *CampaignService) List(ctx context.Context) ([]Campaign, error) {
	var campaigns []Campaign
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/campaigns", nil, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// Get retrieves a campaign by ID
func (s *CampaignService) Get(ctx context.Context, id int64) (*Campaign, error) {
	var c Campaign
	if err := s.client.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/campaigns/%d", id), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new campaign and returns its ID
func (s *CampaignService) Create(ctx context.Context, req *CreateCampaignRequest) (int64, error) {
	var result struct {
		ID int64 `json:"id"`
	}
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/campaigns", req, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

// Update updates campaign fields
func (s *CampaignService) Update(ctx context.Context, id int64, req *UpdateCampaignRequest) error {
	return s.client.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/v1/campaigns/%d", id), req, nil)
}

// Delete deletes a campaign
func (s *CampaignService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/campaigns/%d", id), nil, nil)
}
