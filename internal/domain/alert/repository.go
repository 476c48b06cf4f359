package alert

import (
	"context"
	"time"
)

// Repository defines the interface for alert data access
type Repository interface {
	// Create persists a new alert
	Create(ctx context.Context, a *Alert) (int64, error)

	// GetByID retrieves an alert by ID
	GetByID(ctx context.Context, id int64) (*Alert, error)

	// LatestByTrigger retrieves the most recently created alert for a
	// trigger, or nil when none exists. Cooldown checks use this read,
	// which must reflect committed state.
	LatestByTrigger(ctx context.Context, triggerID int64) (*Alert, error)

	// MarkNotified flips the notified flag after successful delivery
	MarkNotified(ctx context.Context, id int64) error

	// ListWithPagination retrieves alerts with filters, newest first
	ListWithPagination(ctx context.Context, filter Filter, limit, offset int) ([]*Alert, int64, error)

	// StatsSince returns per-trigger alert counts and last alert times
	// for alerts created at or after the cutoff, in one grouped query
	StatsSince(ctx context.Context, since time.Time) (map[int64]*Stats, error)
}
