package campaign

import "context"

// Service defines the interface for campaign business logic
type Service interface {
	// Create creates a new campaign
	Create(ctx context.Context, c *Campaign) (int64, error)

	// GetByID retrieves a campaign by ID
	GetByID(ctx context.Context, id int64) (*Campaign, error)

	// Update updates campaign fields
	Update(ctx context.Context, id int64, updates map[string]interface{}) error

	// Delete deletes a campaign
	Delete(ctx context.Context, id int64) error

	// List retrieves all campaigns
	List(ctx context.Context) ([]*Campaign, error)
}
