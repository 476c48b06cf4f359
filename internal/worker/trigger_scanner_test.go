package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pratik-mahalle/campwatch/internal/config"
	"github.com/pratik-mahalle/campwatch/internal/domain/metric"
	"github.com/pratik-mahalle/campwatch/internal/domain/trigger"
	"github.com/pratik-mahalle/campwatch/internal/evaluator"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/campwatch/internal/services"
	"github.com/pratik-mahalle/campwatch/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

type fixture struct {
	metrics  *testutil.MockMetricRepository
	triggers *testutil.MockTriggerRepository
	alerts   *testutil.MockAlertRepository
	notifier *testutil.MockNotifier
	scanner  *TriggerScanner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := testLogger()
	f := &fixture{
		metrics:  testutil.NewMockMetricRepository(),
		triggers: testutil.NewMockTriggerRepository(),
		alerts:   testutil.NewMockAlertRepository(),
		notifier: testutil.NewMockNotifier(),
	}
	ev := evaluator.New(f.metrics, evaluator.DefaultConfig(), log)
	alertSvc := services.NewAlertService(f.alerts, f.notifier, log)
	f.scanner = NewTriggerScanner(f.triggers, ev, alertSvc, config.EvaluationConfig{
		Schedule:       "0 * * * *",
		Workers:        4,
		TriggerTimeout: 5 * time.Second,
	}, log)
	return f
}

// seedLowCTR inserts hourly rows whose CTR sits at 1% for the trailing
// window of the given trigger duration.
func (f *fixture) seedLowCTR(campaignID int64, hours int) {
	now := time.Now().UTC()
	for i := 1; i <= hours; i++ {
		f.metrics.Insert(context.Background(), &metric.Observation{
			CampaignID:  campaignID,
			TS:          now.Add(-time.Duration(i) * time.Hour),
			Impressions: 1000,
			Clicks:      10,
		})
	}
}

func (f *fixture) addTrigger(t *testing.T, tr *trigger.Trigger) int64 {
	t.Helper()
	id, err := f.triggers.Create(context.Background(), tr)
	if err != nil {
		t.Fatalf("Failed to seed trigger: %v", err)
	}
	return id
}

func ctrTrigger(campaignID int64, suppressionHours int) *trigger.Trigger {
	return &trigger.Trigger{
		CampaignID:       campaignID,
		Metric:           metric.KeyCTR,
		Operator:         trigger.OperatorBelow,
		Threshold:        2.0,
		Mode:             trigger.ModeAbsolute,
		DurationHours:    3,
		SuppressionHours: suppressionHours,
		Severity:         trigger.SeverityWarning,
		Active:           true,
	}
}

func TestRunPassEmitsOneAlertPerTrigger(t *testing.T) {
	f := newFixture(t)
	f.seedLowCTR(1, 6)
	id := f.addTrigger(t, ctrTrigger(1, 0))

	emitted := f.scanner.RunPass(context.Background())

	if len(emitted) != 1 {
		t.Fatalf("pass returned %d alerts, want 1", len(emitted))
	}
	if len(f.alerts.Alerts) != 1 {
		t.Fatalf("pass emitted %d alerts, want 1", len(f.alerts.Alerts))
	}
	for _, a := range f.alerts.Alerts {
		if a.TriggerID != id {
			t.Errorf("alert trigger = %d, want %d", a.TriggerID, id)
		}
		if a.Message == "" {
			t.Error("alert has no message")
		}
		if a.Severity != trigger.SeverityWarning {
			t.Errorf("alert severity = %s, want warning", a.Severity)
		}
	}
	if f.notifier.SentCount() != 1 {
		t.Errorf("notifier delivered %d alerts, want 1", f.notifier.SentCount())
	}
}

func TestRunPassSuppressionAcrossPasses(t *testing.T) {
	f := newFixture(t)
	f.seedLowCTR(1, 6)
	f.addTrigger(t, ctrTrigger(1, 6))

	ctx := context.Background()
	f.scanner.RunPass(ctx)
	second := f.scanner.RunPass(ctx)

	// The condition still holds on the second pass but the cooldown
	// suppresses re-emission.
	if len(second) != 0 {
		t.Errorf("suppressed pass returned %d alerts, want 0", len(second))
	}
	if len(f.alerts.Alerts) != 1 {
		t.Errorf("two passes emitted %d alerts, want 1", len(f.alerts.Alerts))
	}
}

func TestRunPassZeroSuppressionReEmits(t *testing.T) {
	f := newFixture(t)
	f.seedLowCTR(1, 6)
	f.addTrigger(t, ctrTrigger(1, 0))

	ctx := context.Background()
	f.scanner.RunPass(ctx)
	f.scanner.RunPass(ctx)

	if len(f.alerts.Alerts) != 2 {
		t.Errorf("two passes emitted %d alerts, want 2", len(f.alerts.Alerts))
	}
}

func TestRunPassSkipsInactiveTriggers(t *testing.T) {
	f := newFixture(t)
	f.seedLowCTR(1, 6)
	tr := ctrTrigger(1, 0)
	tr.Active = false
	f.addTrigger(t, tr)

	f.scanner.RunPass(context.Background())

	if len(f.alerts.Alerts) != 0 {
		t.Errorf("pass emitted %d alerts for a paused trigger, want 0", len(f.alerts.Alerts))
	}
}

func TestRunPassEvaluatesManyTriggers(t *testing.T) {
	f := newFixture(t)
	f.seedLowCTR(1, 6)

	// More triggers than workers; the pool must drain them all.
	for i := 0; i < 20; i++ {
		f.addTrigger(t, ctrTrigger(1, 0))
	}

	f.scanner.RunPass(context.Background())

	if len(f.alerts.Alerts) != 20 {
		t.Errorf("pass emitted %d alerts, want 20", len(f.alerts.Alerts))
	}
}

func TestRunPassContinuesAfterFetchFailure(t *testing.T) {
	f := newFixture(t)
	f.addTrigger(t, ctrTrigger(1, 0))
	f.metrics.ListError = errors.New("connection refused")

	// Fetch failures are logged and skipped; the pass completes.
	f.scanner.RunPass(context.Background())

	if len(f.alerts.Alerts) != 0 {
		t.Errorf("pass emitted %d alerts from a failing store, want 0", len(f.alerts.Alerts))
	}
}

func TestRunPassCancelledContext(t *testing.T) {
	f := newFixture(t)
	f.seedLowCTR(1, 6)
	for i := 0; i < 10; i++ {
		f.addTrigger(t, ctrTrigger(1, 0))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A pass on a dead context must return promptly without panicking.
	// In-flight work may still emit, but the pass must not hang.
	done := make(chan struct{})
	go func() {
		f.scanner.RunPass(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("RunPass did not return on cancelled context")
	}
}
