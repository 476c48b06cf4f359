package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pratik-mahalle/campwatch/internal/api/handlers"
	"github.com/pratik-mahalle/campwatch/internal/api/router"
	"github.com/pratik-mahalle/campwatch/internal/config"
	"github.com/pratik-mahalle/campwatch/internal/domain/alert"
	"github.com/pratik-mahalle/campwatch/internal/domain/metric"
	"github.com/pratik-mahalle/campwatch/internal/evaluator"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/campwatch/internal/pkg/validator"
	"github.com/pratik-mahalle/campwatch/internal/repository/postgres"
	"github.com/pratik-mahalle/campwatch/internal/services"
	"github.com/pratik-mahalle/campwatch/internal/worker"
	"github.com/pratik-mahalle/campwatch/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	log.WithFields(map[string]interface{}{
		"environment": cfg.Server.Environment,
		"driver":      cfg.Database.Driver,
	}).Info("Starting CampWatch API server")

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, migrations.GetFS()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	campaignRepo := postgres.NewCampaignRepository(db)
	triggerRepo := postgres.NewTriggerRepository(db)
	metricRepo := postgres.NewMetricRepository(db)
	alertRepo := postgres.NewAlertRepository(db)

	// Evaluation engine
	ev := evaluator.New(metricRepo, evaluator.Config{
		SimulationLookbackDays: cfg.Evaluation.SimulationLookbackDays,
		BaselineDays:           cfg.Evaluation.BaselineDays,
		SampleLimit:            cfg.Evaluation.SampleLimit,
		ROASMode:               metric.ROASMode(cfg.Evaluation.ROASMode),
	}, log)

	// Services
	var notifier alert.Notifier
	if cfg.Notifier.WebhookURL != "" {
		notifier = services.NewWebhookNotifier(cfg.Notifier, log)
	} else {
		log.Warn("No webhook URL configured, alerts will not be delivered")
	}

	campaignService := services.NewCampaignService(campaignRepo, log)
	triggerService := services.NewTriggerService(triggerRepo, campaignRepo, log)
	alertService := services.NewAlertService(alertRepo, notifier, log)

	// Background evaluation worker
	scanner := worker.NewTriggerScanner(triggerRepo, ev, alertService, cfg.Evaluation, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := scanner.Start(ctx); err != nil {
			log.ErrorWithErr(err, "Trigger scanner stopped")
		}
	}()

	// HTTP surface
	val := validator.New()
	h := &router.Handlers{
		Health:     handlers.NewHealthHandler(db.DB, log),
		Campaign:   handlers.NewCampaignHandler(campaignService, log, val),
		Trigger:    handlers.NewTriggerHandler(triggerService, ev, log, val),
		Alert:      handlers.NewAlertHandler(alertService, log),
		Metric:     handlers.NewMetricHandler(metricRepo, log, val),
		Evaluation: handlers.NewEvaluationHandler(scanner, log),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Graceful shutdown failed")
	}

	log.Info("Server stopped")
}
