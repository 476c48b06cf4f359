package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pratik-mahalle/campwatch/internal/api/dto"
	"github.com/pratik-mahalle/campwatch/internal/domain/metric"
	"github.com/pratik-mahalle/campwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/campwatch/internal/pkg/utils"
	"github.com/pratik-mahalle/campwatch/internal/pkg/validator"
)

type MetricHandler struct {
	repo      metric.Repository
	logger    *logger.Logger
	validator *validator.Validator
}

func NewMetricHandler(repo metric.Repository, log *logger.Logger, val *validator.Validator) *MetricHandler {
	return &MetricHandler{repo: repo, logger: log, validator: val}
}

// Ingest appends a batch of metric observations for a campaign
func (h *MetricHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req dto.IngestMetricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	rows := make([]*metric.Observation, len(req.Observations))
	for i, o := range req.Observations {
		rows[i] = &metric.Observation{
			CampaignID:  req.CampaignID,
			TS:          o.TS.UTC(),
			Impressions: o.Impressions,
			Clicks:      o.Clicks,
			Spend:       o.Spend,
			Revenue:     o.Revenue,
		}
	}

	if err := h.repo.InsertBatch(r.Context(), rows); err != nil {
		writeServiceError(w, err, "Failed to ingest metrics")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"campaign_id": req.CampaignID,
		"rows":        len(rows),
	}).Info("Metric observations ingested")

	utils.WriteSuccessWithMessage(w, http.StatusCreated, "Metrics ingested", map[string]int{"rows": len(rows)})
}
