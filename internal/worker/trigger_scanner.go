package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pratik-mahalle/campwatch/internal/config"
	"github.com/pratik-mahalle/campwatch/internal/domain/alert"
	"github.com/pratik-mahalle/campwatch/internal/domain/trigger"
	"github.com/pratik-mahalle/campwatch/internal/evaluator"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/campwatch/internal/pkg/metrics"
)

// TriggerScanner runs periodic evaluation passes over all active
// triggers.
type TriggerScanner struct {
	triggers     trigger.Repository
	evaluator    *evaluator.Evaluator
	alertService alert.Service
	cfg          config.EvaluationConfig
	logger       *logger.Logger

	cron    *cron.Cron
	running atomic.Bool
}

// NewTriggerScanner creates a new trigger scanner worker
func NewTriggerScanner(
	triggers trigger.Repository,
	ev *evaluator.Evaluator,
	alertService alert.Service,
	cfg config.EvaluationConfig,
	log *logger.Logger,
) *TriggerScanner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &TriggerScanner{
		triggers:     triggers,
		evaluator:    ev,
		alertService: alertService,
		cfg:          cfg,
		logger:       log,
	}
}

// Start schedules evaluation passes according to the configured cron
// expression and blocks until the context is cancelled.
func (s *TriggerScanner) Start(ctx context.Context) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.RunPass(ctx)
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"schedule": s.cfg.Schedule,
		"workers":  s.cfg.Workers,
	}).Info("Starting trigger scanner worker")

	s.cron.Start()
	<-ctx.Done()

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Trigger scanner worker stopped")
	return nil
}

// RunPass evaluates every active trigger once and returns the alerts
// it emitted. Passes never overlap: if the previous pass is still
// running the new tick is skipped. Each trigger produces at most one
// alert per pass.
func (s *TriggerScanner) RunPass(ctx context.Context) []*alert.Alert {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("Previous evaluation pass still running, skipping tick")
		metrics.RecordPass("skipped")
		return nil
	}
	defer s.running.Store(false)

	start := time.Now()
	now := start.UTC()

	triggers, err := s.triggers.ListActive(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list active triggers")
		metrics.RecordPass("error")
		return nil
	}

	s.logger.WithFields(map[string]interface{}{
		"triggers": len(triggers),
	}).Info("Starting evaluation pass")

	sem := make(chan struct{}, s.cfg.Workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var emitted []*alert.Alert

	for _, t := range triggers {
		// A cancelled pass finishes in-flight triggers but starts no
		// new ones.
		select {
		case <-ctx.Done():
			s.logger.Info("Evaluation pass interrupted")
			wg.Wait()
			metrics.RecordPass("interrupted")
			return emitted
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(t *trigger.Trigger) {
			defer wg.Done()
			defer func() { <-sem }()
			if a := s.evaluateOne(ctx, t, now); a != nil {
				mu.Lock()
				emitted = append(emitted, a)
				mu.Unlock()
			}
		}(t)
	}

	wg.Wait()

	s.logger.WithFields(map[string]interface{}{
		"triggers": len(triggers),
		"alerts":   len(emitted),
		"duration": time.Since(start).String(),
	}).Info("Completed evaluation pass")
	metrics.RecordPass("success")
	return emitted
}

// evaluateOne evaluates a single trigger and emits at most one alert,
// returning it (nil when nothing fired). A failing trigger is logged
// and skipped; it never aborts the pass.
func (s *TriggerScanner) evaluateOne(ctx context.Context, t *trigger.Trigger, now time.Time) *alert.Alert {
	evalCtx := ctx
	if s.cfg.TriggerTimeout > 0 {
		var cancel context.CancelFunc
		evalCtx, cancel = context.WithTimeout(ctx, s.cfg.TriggerTimeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.evaluator.EvaluateTrigger(evalCtx, t, now)
	if err != nil {
		metrics.RecordTriggerEvaluation(string(t.Metric), "error", time.Since(start), 0)
		s.logger.WithFields(map[string]interface{}{
			"trigger_id":  t.ID,
			"campaign_id": t.CampaignID,
		}).ErrorWithErr(err, "Trigger evaluation failed, skipping")
		return nil
	}

	outcome := "no_match"
	if out.Matched {
		outcome = "match"
	}
	metrics.RecordTriggerEvaluation(string(t.Metric), outcome, time.Since(start), out.WindowsChecked)

	if !out.Matched {
		return nil
	}

	a := &alert.Alert{
		TriggerID:  t.ID,
		CampaignID: t.CampaignID,
		Metric:     t.Metric,
		Value:      out.Match.Value,
		Message:    buildMessage(t),
		Severity:   t.Severity,
		CreatedAt:  now,
	}

	persisted, err := s.alertService.Emit(evalCtx, a, t.SuppressionHours)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"trigger_id": t.ID,
		}).ErrorWithErr(err, "Failed to emit alert")
		return nil
	}
	// Suppressed emissions return no alert.
	return persisted
}

// buildMessage renders the alert message from the trigger condition,
// appending the user's custom message when present.
func buildMessage(t *trigger.Trigger) string {
	msg := t.Condition()
	if t.CustomMessage != "" {
		msg += ": " + t.CustomMessage
	}
	return msg
}
