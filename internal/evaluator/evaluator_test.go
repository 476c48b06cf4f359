package evaluator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pratik-mahalle/campwatch/internal/domain/metric"
	"github.com/pratik-mahalle/campwatch/internal/domain/trigger"
	apperrors "github.com/pratik-mahalle/campwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/campwatch/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func newTestEvaluator(metrics metric.Repository) *Evaluator {
	return New(metrics, DefaultConfig(), testLogger())
}

// ctrRow builds an hourly observation whose CTR value is pct.
func ctrRow(campaignID int64, ts time.Time, pct float64) *metric.Observation {
	return &metric.Observation{
		CampaignID:  campaignID,
		TS:          ts,
		Impressions: 1000,
		Clicks:      int64(pct * 10),
	}
}

func TestResolveThreshold(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	repo := testutil.NewMockMetricRepository()

	// Baseline CTR over the last 7 days: median 5.0.
	for i := 1; i <= 5; i++ {
		repo.Insert(ctx, ctrRow(1, now.Add(-time.Duration(i)*24*time.Hour), 5.0))
	}
	ev := newTestEvaluator(repo)

	t.Run("absolute mode passes the threshold through", func(t *testing.T) {
		tr := &trigger.Trigger{CampaignID: 1, Metric: metric.KeyCTR, Mode: trigger.ModeAbsolute, Threshold: 2.5}
		got, err := ev.ResolveThreshold(ctx, tr, now)
		if err != nil {
			t.Fatalf("ResolveThreshold() error = %v", err)
		}
		if got != 2.5 {
			t.Errorf("threshold = %v, want 2.5", got)
		}
	})

	t.Run("relative mode resolves against the baseline median", func(t *testing.T) {
		// 20% below a 5.0 baseline is 4.0.
		tr := &trigger.Trigger{CampaignID: 1, Metric: metric.KeyCTR, Mode: trigger.ModeRelative, Threshold: 20}
		got, err := ev.ResolveThreshold(ctx, tr, now)
		if err != nil {
			t.Fatalf("ResolveThreshold() error = %v", err)
		}
		if got != 4.0 {
			t.Errorf("threshold = %v, want 4.0", got)
		}
	})

	t.Run("relative mode never resolves below zero", func(t *testing.T) {
		tr := &trigger.Trigger{CampaignID: 99, Metric: metric.KeyCTR, Mode: trigger.ModeRelative, Threshold: 50}
		got, err := ev.ResolveThreshold(ctx, tr, now)
		if err != nil {
			t.Fatalf("ResolveThreshold() error = %v", err)
		}
		// No data for campaign 99: baseline 0, floor at 0.
		if got != 0 {
			t.Errorf("threshold = %v, want 0", got)
		}
	})
}

func TestSimulateValidation(t *testing.T) {
	ev := newTestEvaluator(testutil.NewMockMetricRepository())
	ctx := context.Background()

	tests := []struct {
		name string
		req  SimulationRequest
	}{
		{
			name: "missing campaign",
			req:  SimulationRequest{Metric: metric.KeyCTR, Operator: trigger.OperatorBelow, DurationHours: 3},
		},
		{
			name: "unknown metric",
			req:  SimulationRequest{CampaignID: 1, Metric: "Bounce", Operator: trigger.OperatorBelow, DurationHours: 3},
		},
		{
			name: "zero duration",
			req:  SimulationRequest{CampaignID: 1, Metric: metric.KeyCTR, Operator: trigger.OperatorBelow, DurationHours: 0},
		},
		{
			name: "relative percent out of range",
			req: SimulationRequest{
				CampaignID: 1, Metric: metric.KeyCTR, Operator: trigger.OperatorBelow,
				Mode: trigger.ModeRelative, Threshold: 150, DurationHours: 3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ev.Simulate(ctx, tt.req)
			if err == nil {
				t.Fatal("Simulate() expected an error, got nil")
			}
			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("Simulate() error = %T, want *AppError", err)
			}
			if appErr.Code != apperrors.ErrCodeInvalidTrigger {
				t.Errorf("error code = %s, want %s", appErr.Code, apperrors.ErrCodeInvalidTrigger)
			}
		})
	}
}

func TestSimulate(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	repo := testutil.NewMockMetricRepository()

	// A CTR dip yesterday: four consecutive low hours inside a steady
	// run of healthy values.
	base := now.Add(-24 * time.Hour)
	for i := 0; i < 12; i++ {
		pct := 5.0
		if i >= 4 && i <= 7 {
			pct = 1.0
		}
		repo.Insert(ctx, ctrRow(1, base.Add(time.Duration(i)*time.Hour), pct))
	}
	ev := newTestEvaluator(repo)

	req := SimulationRequest{
		CampaignID:    1,
		Metric:        metric.KeyCTR,
		Operator:      trigger.OperatorBelow,
		Threshold:     2.0,
		Mode:          trigger.ModeAbsolute,
		DurationHours: 3,
	}

	res, err := ev.Simulate(ctx, req)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if res.WindowsChecked != 12 {
		t.Errorf("WindowsChecked = %d, want 12", res.WindowsChecked)
	}
	// Trailing 3h averages dip under 2.0 only while the window holds
	// dip hours alone: hours 6 and 7.
	if res.ExpectedAlerts != 2 {
		t.Errorf("ExpectedAlerts = %d, want 2", res.ExpectedAlerts)
	}
	if res.Threshold != 2.0 {
		t.Errorf("Threshold = %v, want 2.0", res.Threshold)
	}
	for _, m := range res.Sample {
		if m.Value >= 2.0 {
			t.Errorf("sample window value %v not below threshold", m.Value)
		}
	}
}

func TestSimulateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	repo := testutil.NewMockMetricRepository()
	for i := 0; i < 48; i++ {
		repo.Insert(ctx, ctrRow(1, now.Add(-time.Duration(i)*time.Hour), float64(i%7)))
	}
	ev := newTestEvaluator(repo)

	req := SimulationRequest{
		CampaignID:    1,
		Metric:        metric.KeyCTR,
		Operator:      trigger.OperatorBelow,
		Threshold:     3.0,
		Mode:          trigger.ModeAbsolute,
		DurationHours: 4,
	}

	first, err := ev.Simulate(ctx, req)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	second, err := ev.Simulate(ctx, req)
	if err != nil {
		t.Fatalf("Simulate() second run error = %v", err)
	}
	if first.WindowsChecked != second.WindowsChecked || first.ExpectedAlerts != second.ExpectedAlerts {
		t.Errorf("runs disagree: (%d, %d) vs (%d, %d)",
			first.WindowsChecked, first.ExpectedAlerts, second.WindowsChecked, second.ExpectedAlerts)
	}
	if len(repo.Rows) != 48 {
		t.Errorf("simulation wrote to the store: %d rows", len(repo.Rows))
	}
}

func TestSimulateCapsSample(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	repo := testutil.NewMockMetricRepository()

	// Every window matches; far more matches than the sample cap.
	for i := 1; i <= 100; i++ {
		repo.Insert(ctx, ctrRow(1, now.Add(-time.Duration(i)*time.Hour), 1.0))
	}
	ev := newTestEvaluator(repo)

	res, err := ev.Simulate(ctx, SimulationRequest{
		CampaignID:    1,
		Metric:        metric.KeyCTR,
		Operator:      trigger.OperatorBelow,
		Threshold:     5.0,
		Mode:          trigger.ModeAbsolute,
		DurationHours: 2,
	})
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if res.ExpectedAlerts != 100 {
		t.Errorf("ExpectedAlerts = %d, want 100", res.ExpectedAlerts)
	}
	if len(res.Sample) != 20 {
		t.Errorf("sample size = %d, want 20 cap", len(res.Sample))
	}
}

func TestSimulateTreatsFetchFailureAsEmptySeries(t *testing.T) {
	repo := testutil.NewMockMetricRepository()
	repo.ListError = errors.New("connection refused")
	ev := newTestEvaluator(repo)

	res, err := ev.Simulate(context.Background(), SimulationRequest{
		CampaignID:    1,
		Metric:        metric.KeySpend,
		Operator:      trigger.OperatorAbove,
		Threshold:     100,
		Mode:          trigger.ModeAbsolute,
		DurationHours: 6,
	})
	if err != nil {
		t.Fatalf("Simulate() error = %v, want graceful empty result", err)
	}
	if res.WindowsChecked != 0 || res.ExpectedAlerts != 0 {
		t.Errorf("got (%d windows, %d alerts), want (0, 0)", res.WindowsChecked, res.ExpectedAlerts)
	}
}

func TestSuggestThreshold(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	repo := testutil.NewMockMetricRepository()
	for i, pct := range []float64{1, 2, 3, 4, 5} {
		repo.Insert(ctx, ctrRow(1, now.Add(-time.Duration(i+1)*time.Hour), pct))
	}
	ev := newTestEvaluator(repo)

	s, err := ev.SuggestThreshold(ctx, 1, metric.KeyCTR)
	if err != nil {
		t.Fatalf("SuggestThreshold() error = %v", err)
	}
	if s.Baseline != 3 {
		t.Errorf("Baseline = %v, want 3", s.Baseline)
	}
	if s.Spread != 2 {
		t.Errorf("Spread = %v, want 2", s.Spread)
	}
	if s.AbsSuggestion != 1 {
		t.Errorf("AbsSuggestion = %v, want 1", s.AbsSuggestion)
	}
}

func TestSuggestThresholdNoData(t *testing.T) {
	ev := newTestEvaluator(testutil.NewMockMetricRepository())

	s, err := ev.SuggestThreshold(context.Background(), 7, metric.KeyROAS)
	if err != nil {
		t.Fatalf("SuggestThreshold() error = %v", err)
	}
	if s.Baseline != 0 || s.Spread != 0 || s.AbsSuggestion != 0 {
		t.Errorf("empty campaign suggestion = %+v, want zeros", s)
	}
}

func TestSuggestThresholdFetchFailure(t *testing.T) {
	repo := testutil.NewMockMetricRepository()
	repo.ListError = errors.New("connection refused")
	ev := newTestEvaluator(repo)

	_, err := ev.SuggestThreshold(context.Background(), 1, metric.KeyCTR)
	if err == nil {
		t.Fatal("SuggestThreshold() expected an error")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeDataUnavailable {
		t.Errorf("error = %v, want DATA_UNAVAILABLE", err)
	}
}

func TestEvaluateTrigger(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("matched trigger reports the most recent window", func(t *testing.T) {
		repo := testutil.NewMockMetricRepository()
		// Healthy history, then two low hours. The 2h trigger only
		// sees the low tail.
		for i := 1; i <= 5; i++ {
			pct := 5.0
			if i <= 2 {
				pct = 1.0
			}
			repo.Insert(ctx, ctrRow(1, now.Add(-time.Duration(i)*time.Hour), pct))
		}
		ev := newTestEvaluator(repo)

		tr := &trigger.Trigger{
			CampaignID:    1,
			Metric:        metric.KeyCTR,
			Operator:      trigger.OperatorBelow,
			Threshold:     2.0,
			Mode:          trigger.ModeAbsolute,
			DurationHours: 2,
		}
		out, err := ev.EvaluateTrigger(ctx, tr, now)
		if err != nil {
			t.Fatalf("EvaluateTrigger() error = %v", err)
		}
		if !out.Matched {
			t.Fatal("Matched = false, want true")
		}
		if out.WindowsChecked != 2 {
			t.Errorf("WindowsChecked = %d, want 2", out.WindowsChecked)
		}
		if out.Match.Value != 1.0 {
			t.Errorf("match value = %v, want 1.0", out.Match.Value)
		}
		// Both windows match; the reported one ends at the latest point.
		if !out.Match.WindowEnd.Equal(now.Add(-time.Hour)) {
			t.Errorf("match end = %v, want %v", out.Match.WindowEnd, now.Add(-time.Hour))
		}
	})

	t.Run("healthy series does not match", func(t *testing.T) {
		repo := testutil.NewMockMetricRepository()
		for i := 1; i <= 5; i++ {
			repo.Insert(ctx, ctrRow(1, now.Add(-time.Duration(i)*time.Hour), 5.0))
		}
		ev := newTestEvaluator(repo)

		tr := &trigger.Trigger{
			CampaignID:    1,
			Metric:        metric.KeyCTR,
			Operator:      trigger.OperatorBelow,
			Threshold:     2.0,
			Mode:          trigger.ModeAbsolute,
			DurationHours: 6,
		}
		out, err := ev.EvaluateTrigger(ctx, tr, now)
		if err != nil {
			t.Fatalf("EvaluateTrigger() error = %v", err)
		}
		if out.Matched {
			t.Errorf("Matched = true for healthy series, match = %+v", out.Match)
		}
	})

	t.Run("malformed duration yields empty outcome", func(t *testing.T) {
		ev := newTestEvaluator(testutil.NewMockMetricRepository())
		tr := &trigger.Trigger{CampaignID: 1, Metric: metric.KeyCTR, Operator: trigger.OperatorBelow, DurationHours: 0}
		out, err := ev.EvaluateTrigger(ctx, tr, now)
		if err != nil {
			t.Fatalf("EvaluateTrigger() error = %v", err)
		}
		if out.Matched || out.WindowsChecked != 0 {
			t.Errorf("outcome = %+v, want empty", out)
		}
	})

	t.Run("fetch failure is data unavailable", func(t *testing.T) {
		repo := testutil.NewMockMetricRepository()
		repo.ListError = errors.New("connection refused")
		ev := newTestEvaluator(repo)

		tr := &trigger.Trigger{
			CampaignID:    1,
			Metric:        metric.KeyCTR,
			Operator:      trigger.OperatorBelow,
			Threshold:     2.0,
			Mode:          trigger.ModeAbsolute,
			DurationHours: 6,
		}
		_, err := ev.EvaluateTrigger(ctx, tr, now)
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeDataUnavailable {
			t.Errorf("error = %v, want DATA_UNAVAILABLE", err)
		}
	})
}
