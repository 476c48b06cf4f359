package services

import (
	"context"

	"github.com/pratik-mahalle/campwatch/internal/domain/campaign"
	"github.com/pratik-mahalle/campwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
)

// CampaignService implements campaign.Service
type CampaignService struct {
	repo   campaign.Repository
	logger *logger.Logger
}

// NewCampaignService creates a new campaign service
func NewCampaignService(repo campaign.Repository, log *logger.Logger) campaign.Service {
	return &CampaignService{repo: repo, logger: log}
}

func (s *CampaignService) Create(ctx context.Context, c *campaign.Campaign) (int64, error) {
	if c.Name == "" {
		return 0, errors.BadRequest("Campaign name is required")
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return 0, err
	}
	c.ID = id

	s.logger.WithFields(map[string]interface{}{
		"campaign_id": id,
		"name":        c.Name,
	}).Info("Campaign created")

	return id, nil
}

func (s *CampaignService) GetByID(ctx context.Context, id int64) (*campaign.Campaign, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CampaignService) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if name, ok := updates["name"].(string); ok {
		if name == "" {
			return errors.BadRequest("Campaign name is required")
		}
		c.Name = name
	}
	if platformID, ok := updates["platform_id"].(string); ok {
		c.PlatformID = platformID
	}

	return s.repo.Update(ctx, c)
}

func (s *CampaignService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithFields(map[string]interface{}{"campaign_id": id}).Info("Campaign deleted")
	return nil
}

func (s *CampaignService) List(ctx context.Context) ([]*campaign.Campaign, error) {
	return s.repo.List(ctx)
}
