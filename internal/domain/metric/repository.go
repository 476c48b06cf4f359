package metric

import (
	"context"
	"time"
)

// Repository defines the interface for metric observation access.
// Observations are append-only from the core's perspective.
type Repository interface {
	// Insert appends a new observation
	Insert(ctx context.Context, o *Observation) (int64, error)

	// InsertBatch appends multiple observations
	InsertBatch(ctx context.Context, rows []*Observation) error

	// ListRange retrieves observations for a campaign within [from, to),
	// ascending by timestamp
	ListRange(ctx context.Context, campaignID int64, from, to time.Time) ([]*Observation, error)
}
