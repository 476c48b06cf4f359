package trigger

import (
	"fmt"
	"time"

	"github.com/pratik-mahalle/campwatch/internal/domain/metric"
)

// Operator compares a window aggregate against a threshold
type Operator string

const (
	OperatorBelow Operator = "<"
	OperatorAbove Operator = ">"
)

// IsValid reports whether op is a known operator
func (op Operator) IsValid() bool {
	return op == OperatorBelow || op == OperatorAbove
}

// Threshold modes
const (
	ModeAbsolute = "absolute"
	// ModeRelative interprets the threshold as a percent drop from the
	// campaign's baseline median, resolved fresh on every evaluation.
	ModeRelative = "relative"
)

// Severity levels
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Trigger is a user-defined alerting rule on one campaign metric
type Trigger struct {
	ID               int64      `json:"id"`
	CampaignID       int64      `json:"campaign_id"`
	Metric           metric.Key `json:"metric"`
	Operator         Operator   `json:"operator"`
	Threshold        float64    `json:"threshold"`
	Mode             string     `json:"mode"`
	DurationHours    int        `json:"duration_hours"`
	SuppressionHours int        `json:"suppression_hours"`
	Severity         string     `json:"severity"`
	Name             string     `json:"name,omitempty"`
	CustomMessage    string     `json:"custom_message,omitempty"`
	Active           bool       `json:"active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at,omitempty"`
}

// Validate checks the trigger definition. Evaluation assumes a valid
// trigger, so every rule here is enforced before persisting.
func (t *Trigger) Validate() error {
	if t.CampaignID == 0 {
		return fmt.Errorf("no campaign selected")
	}
	if !t.Metric.IsValid() {
		return fmt.Errorf("unknown metric key: %q", t.Metric)
	}
	if !t.Operator.IsValid() {
		return fmt.Errorf("operator must be %q or %q", OperatorBelow, OperatorAbove)
	}
	if t.Mode != ModeAbsolute && t.Mode != ModeRelative {
		return fmt.Errorf("mode must be %q or %q", ModeAbsolute, ModeRelative)
	}
	if t.Mode == ModeRelative && (t.Threshold < 0 || t.Threshold > 100) {
		return fmt.Errorf("relative threshold must be a percent in [0,100], got %v", t.Threshold)
	}
	if t.DurationHours < 1 {
		return fmt.Errorf("duration must be at least 1 hour, got %d", t.DurationHours)
	}
	if t.SuppressionHours < 0 {
		return fmt.Errorf("suppression hours must not be negative, got %d", t.SuppressionHours)
	}
	switch t.Severity {
	case SeverityInfo, SeverityWarning, SeverityCritical:
	default:
		return fmt.Errorf("unknown severity: %q", t.Severity)
	}
	return nil
}

// Condition renders the trigger condition as a human-readable string
func (t *Trigger) Condition() string {
	return fmt.Sprintf("%s %s %g for %dh", t.Metric, t.Operator, t.Threshold, t.DurationHours)
}

// Filter contains trigger filtering options
type Filter struct {
	CampaignID int64
	Metric     string
	ActiveOnly bool
}
