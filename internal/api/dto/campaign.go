package dto

import "time"

// CampaignDTO represents a campaign in API responses
type CampaignDTO struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	PlatformID string    `json:"platform_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateCampaignRequest represents a campaign creation request
type CreateCampaignRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	PlatformID string `json:"platform_id,omitempty" validate:"max=255"`
}

// UpdateCampaignRequest represents a campaign update request
type UpdateCampaignRequest struct {
	Name       *string `json:"name,omitempty"`
	PlatformID *string `json:"platform_id,omitempty"`
}
