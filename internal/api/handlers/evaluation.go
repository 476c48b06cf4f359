package handlers

import (
	"context"
	"net/http"

	"github.com/pratik-mahalle/campwatch/internal/domain/alert"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/campwatch/internal/pkg/utils"
)

// PassRunner runs one evaluation pass over all active triggers and
// reports the alerts it emitted
type PassRunner interface {
	RunPass(ctx context.Context) []*alert.Alert
}

// EvaluationHandler exposes on-demand evaluation passes
type EvaluationHandler struct {
	runner PassRunner
	logger *logger.Logger
}

func NewEvaluationHandler(runner PassRunner, log *logger.Logger) *EvaluationHandler {
	return &EvaluationHandler{runner: runner, logger: log}
}

// Run kicks off an evaluation pass in the background. The pass-level
// overlap guard makes concurrent requests harmless.
func (h *EvaluationHandler) Run(w http.ResponseWriter, r *http.Request) {
	go h.runner.RunPass(context.WithoutCancel(r.Context()))

	utils.WriteSuccessWithMessage(w, http.StatusAccepted, "Evaluation pass started", nil)
}
