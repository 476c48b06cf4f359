package evaluator

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/pratik-mahalle/campwatch/internal/domain/metric"
	"github.com/pratik-mahalle/campwatch/internal/domain/trigger"
	"github.com/pratik-mahalle/campwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
)

// Config contains evaluation tunables
type Config struct {
	// SimulationLookbackDays is the default historical range for backtests.
	SimulationLookbackDays int
	// BaselineDays is the range behind threshold suggestions and
	// relative-threshold resolution.
	BaselineDays int
	// SampleLimit caps the matches returned by a simulation.
	SampleLimit int
	// ROASMode selects raw-revenue or revenue/spend ROAS.
	ROASMode metric.ROASMode
}

// DefaultConfig returns the evaluation defaults used by the dashboard
func DefaultConfig() Config {
	return Config{
		SimulationLookbackDays: 30,
		BaselineDays:           7,
		SampleLimit:            20,
		ROASMode:               metric.ROASModeRevenue,
	}
}

// Evaluator runs trigger conditions against campaign metric series
type Evaluator struct {
	metrics metric.Repository
	cfg     Config
	logger  *logger.Logger
}

// New creates a new evaluator
func New(metrics metric.Repository, cfg Config, log *logger.Logger) *Evaluator {
	if cfg.SampleLimit <= 0 {
		cfg.SampleLimit = 20
	}
	if cfg.BaselineDays <= 0 {
		cfg.BaselineDays = 7
	}
	if cfg.SimulationLookbackDays <= 0 {
		cfg.SimulationLookbackDays = 30
	}
	return &Evaluator{metrics: metrics, cfg: cfg, logger: log}
}

// SimulationRequest describes a historical backtest of a trigger
// definition. The definition does not need to be persisted.
type SimulationRequest struct {
	CampaignID    int64
	Metric        metric.Key
	Operator      trigger.Operator
	Threshold     float64
	Mode          string
	DurationHours int
	LookbackDays  int
}

// SimulationResult summarizes a backtest for display
type SimulationResult struct {
	WindowsChecked int     `json:"windows_checked"`
	ExpectedAlerts int     `json:"expected_alerts"`
	Threshold      float64 `json:"threshold"`
	Sample         []Match `json:"sample"`
}

// Outcome reports a single live evaluation of a trigger
type Outcome struct {
	Matched        bool
	Match          Match
	Threshold      float64
	WindowsChecked int
}

// series fetches the scalar series for a campaign metric over [from, to).
// A failed or empty fetch is not fatal here; callers decide whether an
// empty series is acceptable.
func (e *Evaluator) series(ctx context.Context, campaignID int64, key metric.Key, from, to time.Time) (metric.Series, error) {
	rows, err := e.metrics.ListRange(ctx, campaignID, from, to)
	if err != nil {
		return metric.Series{Metric: key}, err
	}
	return metric.BuildSeries(rows, key, e.cfg.ROASMode), nil
}

// baseline computes the baseline median for a campaign metric over the
// configured baseline range ending at now.
func (e *Evaluator) baseline(ctx context.Context, campaignID int64, key metric.Key, now time.Time) (float64, error) {
	from := now.AddDate(0, 0, -e.cfg.BaselineDays)
	s, err := e.series(ctx, campaignID, key, from, now)
	if err != nil {
		return 0, err
	}
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	median, _ := MedianIQR(values)
	return median, nil
}

// ResolveThreshold converts a trigger's configured threshold into the
// absolute value compared against window aggregates. Relative triggers
// are resolved as max(0, baseline * (1 - pct/100)) from a fresh
// baseline median.
func (e *Evaluator) ResolveThreshold(ctx context.Context, t *trigger.Trigger, now time.Time) (float64, error) {
	if t.Mode != trigger.ModeRelative {
		return t.Threshold, nil
	}
	baseline, err := e.baseline(ctx, t.CampaignID, t.Metric, now)
	if err != nil {
		return 0, err
	}
	return math.Max(0, baseline*(1-t.Threshold/100)), nil
}

// Simulate backtests a trigger definition over historical data. It is
// read-only, never writes alerts, and returns identical results for
// identical inputs against an unchanged series. A fetch failure is
// treated as an empty series.
func (e *Evaluator) Simulate(ctx context.Context, req SimulationRequest) (*SimulationResult, error) {
	if req.CampaignID == 0 {
		return nil, errors.InvalidTriggerConfig("no campaign selected")
	}
	if !req.Metric.IsValid() {
		return nil, errors.InvalidTriggerConfig("unknown metric key: " + string(req.Metric))
	}
	if req.DurationHours < 1 {
		return nil, errors.InvalidTriggerConfig("duration must be at least 1 hour")
	}

	now := time.Now().UTC()

	threshold := req.Threshold
	if req.Mode == trigger.ModeRelative {
		if req.Threshold < 0 || req.Threshold > 100 {
			return nil, errors.InvalidTriggerConfig("relative threshold must be a percent in [0,100]")
		}
		baseline, err := e.baseline(ctx, req.CampaignID, req.Metric, now)
		if err != nil {
			baseline = 0
		}
		threshold = math.Max(0, baseline*(1-req.Threshold/100))
	}

	lookback := req.LookbackDays
	if lookback <= 0 {
		lookback = e.cfg.SimulationLookbackDays
	}
	from := now.AddDate(0, 0, -lookback)

	s, err := e.series(ctx, req.CampaignID, req.Metric, from, now)
	if err != nil {
		// DataUnavailable policy for simulation: evaluate an empty
		// series instead of failing the request.
		e.logger.WithFields(map[string]interface{}{
			"campaign_id": req.CampaignID,
			"metric":      req.Metric,
		}).ErrorWithErr(err, "Metric fetch failed, simulating over empty series")
		s = metric.Series{Metric: req.Metric}
	}

	res := EvaluateWindows(s, time.Duration(req.DurationHours)*time.Hour, req.Operator, threshold)

	sample := res.Matches
	if len(sample) > e.cfg.SampleLimit {
		sample = sample[:e.cfg.SampleLimit]
	}

	return &SimulationResult{
		WindowsChecked: res.WindowsChecked,
		ExpectedAlerts: len(res.Matches),
		Threshold:      threshold,
		Sample:         sample,
	}, nil
}

// SuggestThreshold proposes a threshold for a campaign metric from its
// baseline statistics.
func (e *Evaluator) SuggestThreshold(ctx context.Context, campaignID int64, key metric.Key) (*Suggestion, error) {
	if campaignID == 0 {
		return nil, errors.InvalidTriggerConfig("no campaign selected")
	}
	if !key.IsValid() {
		return nil, errors.InvalidTriggerConfig("unknown metric key: " + string(key))
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -e.cfg.BaselineDays)
	s, err := e.series(ctx, campaignID, key, from, now)
	if err != nil {
		return nil, errors.DataUnavailable(formatID(campaignID), err)
	}

	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	suggestion := SuggestFromSample(values)
	return &suggestion, nil
}

// EvaluateTrigger runs one live evaluation of a trigger at the given
// instant. It fetches the most recent series covering the trigger's
// duration, scans it, and reports the most recent matching window.
// Emission and cooldown are the caller's concern.
func (e *Evaluator) EvaluateTrigger(ctx context.Context, t *trigger.Trigger, now time.Time) (*Outcome, error) {
	// Defensive guard; triggers are validated at definition time but a
	// malformed duration must not produce an unbounded window.
	if t.DurationHours < 1 {
		return &Outcome{}, nil
	}

	threshold, err := e.ResolveThreshold(ctx, t, now)
	if err != nil {
		return nil, errors.DataUnavailable(formatID(t.CampaignID), err)
	}

	from := now.Add(-time.Duration(t.DurationHours) * time.Hour)
	s, err := e.series(ctx, t.CampaignID, t.Metric, from, now)
	if err != nil {
		return nil, errors.DataUnavailable(formatID(t.CampaignID), err)
	}

	res := EvaluateWindows(s, time.Duration(t.DurationHours)*time.Hour, t.Operator, threshold)

	out := &Outcome{
		Threshold:      threshold,
		WindowsChecked: res.WindowsChecked,
	}
	if len(res.Matches) > 0 {
		out.Matched = true
		out.Match = res.Matches[len(res.Matches)-1]
	}
	return out, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
