package alert

import (
	"context"
	"time"
)

// Service defines the interface for alert business logic
type Service interface {
	// Emit persists a new alert for a satisfied trigger condition,
	// honoring the trigger's cooldown, and hands off to the notifier.
	// It returns the persisted alert, or nil when the cooldown
	// suppressed emission.
	Emit(ctx context.Context, a *Alert, suppressionHours int) (*Alert, error)

	// GetByID retrieves an alert by ID
	GetByID(ctx context.Context, id int64) (*Alert, error)

	// List retrieves alerts with filters and pagination
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Alert, int64, error)

	// StatsSince returns per-trigger alert activity since the cutoff
	StatsSince(ctx context.Context, since time.Time) (map[int64]*Stats, error)
}

// Notifier delivers an alert to an external channel. Delivery is
// fire-and-forget relative to persistence.
type Notifier interface {
	Notify(ctx context.Context, a *Alert) error
}
