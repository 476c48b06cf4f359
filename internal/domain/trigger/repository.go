package trigger

import "context"

// Repository defines the interface for trigger data access
type Repository interface {
	// Create creates a new trigger
	Create(ctx context.Context, t *Trigger) (int64, error)

	// GetByID retrieves a trigger by ID
	GetByID(ctx context.Context, id int64) (*Trigger, error)

	// Update updates a trigger
	Update(ctx context.Context, t *Trigger) error

	// Delete deletes a trigger
	Delete(ctx context.Context, id int64) error

	// List retrieves triggers with filters, newest first
	List(ctx context.Context, filter Filter) ([]*Trigger, error)

	// ListActive retrieves all active triggers for live evaluation
	ListActive(ctx context.Context) ([]*Trigger, error)
}
