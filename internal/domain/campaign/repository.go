package campaign

import "context"

// Repository defines the interface for campaign data access
type Repository interface {
	// Create creates a new campaign
	Create(ctx context.Context, c *Campaign) (int64, error)

	// GetByID retrieves a campaign by ID
	GetByID(ctx context.Context, id int64) (*Campaign, error)

	// Update updates a campaign
	Update(ctx context.Context, c *Campaign) error

	// Delete deletes a campaign
	Delete(ctx context.Context, id int64) error

	// List retrieves all campaigns ordered by name
	List(ctx context.Context) ([]*Campaign, error)
}
