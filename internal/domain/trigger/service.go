package trigger

import "context"

// Service defines the interface for trigger business logic
type Service interface {
	// Create validates and creates a new trigger
	Create(ctx context.Context, t *Trigger) (int64, error)

	// GetByID retrieves a trigger by ID
	GetByID(ctx context.Context, id int64) (*Trigger, error)

	// Update validates and updates trigger fields
	Update(ctx context.Context, id int64, updates map[string]interface{}) error

	// Delete deletes a trigger
	Delete(ctx context.Context, id int64) error

	// List retrieves triggers with filters
	List(ctx context.Context, filter Filter) ([]*Trigger, error)

	// SetActive pauses or resumes a trigger
	SetActive(ctx context.Context, id int64, active bool) error
}
