package metric

import (
	"fmt"
	"time"
)

// Key identifies a campaign performance metric
type Key string

const (
	KeyCTR   Key = "CTR"
	KeySpend Key = "Spend"
	KeyCPM   Key = "CPM"
	KeyROAS  Key = "ROAS"
)

// ParseKey validates and returns a metric key
func ParseKey(s string) (Key, error) {
	switch Key(s) {
	case KeyCTR, KeySpend, KeyCPM, KeyROAS:
		return Key(s), nil
	}
	return "", fmt.Errorf("unknown metric key: %q", s)
}

// IsValid reports whether k is a known metric key
func (k Key) IsValid() bool {
	_, err := ParseKey(string(k))
	return err == nil
}

// IsCumulative reports whether window aggregation should sum values
// instead of averaging them. Spend accumulates; the rate-like metrics
// (CTR, CPM, ROAS) are averaged.
func (k Key) IsCumulative() bool {
	return k == KeySpend
}

// ROASMode selects how the ROAS metric is computed from a row
type ROASMode string

const (
	// ROASModeRevenue returns raw revenue, matching the dashboard's
	// historical behavior.
	ROASModeRevenue ROASMode = "revenue"
	// ROASModeRatio returns revenue/spend with a zero-spend floor,
	// analogous to the CTR/CPM rule.
	ROASModeRatio ROASMode = "ratio"
)

// Observation is one hourly metric row for a campaign. Rows are
// append-only; timestamps are ascending but not guaranteed strictly
// increasing or gap-free.
type Observation struct {
	ID          int64     `json:"id"`
	CampaignID  int64     `json:"campaign_id"`
	TS          time.Time `json:"ts"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Spend       float64   `json:"spend"`
	Revenue     float64   `json:"revenue"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Point is a single scalar sample in a metric series
type Point struct {
	TS    time.Time `json:"ts"`
	Value float64   `json:"value"`
}

// Series is a time-ordered sequence of scalar samples for one metric.
// The metric key is carried once for the whole series, not per point.
type Series struct {
	Metric Key     `json:"metric"`
	Points []Point `json:"points"`
}
