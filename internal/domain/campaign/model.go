package campaign

import "time"

// Campaign represents a marketing campaign being monitored
type Campaign struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	PlatformID string    `json:"platform_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}
