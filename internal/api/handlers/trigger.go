package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/campwatch/internal/api/dto"
	"github.com/pratik-mahalle/campwatch/internal/domain/metric"
	"github.com/pratik-mahalle/campwatch/internal/domain/trigger"
	"github.com/pratik-mahalle/campwatch/internal/evaluator"
	"github.com/pratik-mahalle/campwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/campwatch/internal/pkg/utils"
	"github.com/pratik-mahalle/campwatch/internal/pkg/validator"
)

type TriggerHandler struct {
	service   trigger.Service
	evaluator *evaluator.Evaluator
	logger    *logger.Logger
	validator *validator.Validator
}

func NewTriggerHandler(service trigger.Service, ev *evaluator.Evaluator, log *logger.Logger, val *validator.Validator) *TriggerHandler {
	return &TriggerHandler{service: service, evaluator: ev, logger: log, validator: val}
}

func triggerDTO(t *trigger.Trigger) dto.TriggerDTO {
	return dto.TriggerDTO{
		ID:               t.ID,
		CampaignID:       t.CampaignID,
		Metric:           string(t.Metric),
		Operator:         string(t.Operator),
		Threshold:        t.Threshold,
		Mode:             t.Mode,
		DurationHours:    t.DurationHours,
		SuppressionHours: t.SuppressionHours,
		Severity:         t.Severity,
		Name:             t.Name,
		CustomMessage:    t.CustomMessage,
		Active:           t.Active,
		Condition:        t.Condition(),
		CreatedAt:        t.CreatedAt,
	}
}

// List returns triggers with optional filters
func (h *TriggerHandler) List(w http.ResponseWriter, r *http.Request) {
	campaignID, _ := strconv.ParseInt(r.URL.Query().Get("campaign_id"), 10, 64)

	filter := trigger.Filter{
		CampaignID: campaignID,
		Metric:     r.URL.Query().Get("metric"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}

	triggers, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, "Failed to list triggers")
		return
	}

	dtos := make([]dto.TriggerDTO, len(triggers))
	for i, t := range triggers {
		dtos[i] = triggerDTO(t)
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// Get returns a single trigger by ID
func (h *TriggerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	t, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get trigger")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, triggerDTO(t))
}

// Create creates a new trigger
func (h *TriggerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	t := &trigger.Trigger{
		CampaignID:       req.CampaignID,
		Metric:           metric.Key(req.Metric),
		Operator:         trigger.Operator(req.Operator),
		Threshold:        req.Threshold,
		Mode:             req.Mode,
		DurationHours:    req.DurationHours,
		SuppressionHours: req.SuppressionHours,
		Severity:         req.Severity,
		Name:             req.Name,
		CustomMessage:    req.CustomMessage,
		Active:           true,
	}

	id, err := h.service.Create(r.Context(), t)
	if err != nil {
		writeServiceError(w, err, "Failed to create trigger")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, map[string]int64{"id": id})
}

// Update updates trigger fields
func (h *TriggerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	var req dto.UpdateTriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	updates := make(map[string]interface{})
	if req.Metric != nil {
		updates["metric"] = *req.Metric
	}
	if req.Operator != nil {
		updates["operator"] = *req.Operator
	}
	if req.Threshold != nil {
		updates["threshold"] = *req.Threshold
	}
	if req.Mode != nil {
		updates["mode"] = *req.Mode
	}
	if req.DurationHours != nil {
		updates["duration_hours"] = *req.DurationHours
	}
	if req.SuppressionHours != nil {
		updates["suppression_hours"] = *req.SuppressionHours
	}
	if req.Severity != nil {
		updates["severity"] = *req.Severity
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.CustomMessage != nil {
		updates["custom_message"] = *req.CustomMessage
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if err := h.service.Update(r.Context(), id, updates); err != nil {
		writeServiceError(w, err, "Failed to update trigger")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Trigger updated", nil)
}

// Delete deletes a trigger
func (h *TriggerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to delete trigger")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Trigger deleted", nil)
}

// Pause deactivates a trigger
func (h *TriggerHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false, "Trigger paused")
}

// Resume reactivates a trigger
func (h *TriggerHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true, "Trigger resumed")
}

func (h *TriggerHandler) setActive(w http.ResponseWriter, r *http.Request, active bool, message string) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err := h.service.SetActive(r.Context(), id, active); err != nil {
		writeServiceError(w, err, "Failed to change trigger state")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, message, nil)
}

// Simulate backtests a trigger definition over historical data
func (h *TriggerHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req dto.SimulateTriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	result, err := h.evaluator.Simulate(r.Context(), evaluator.SimulationRequest{
		CampaignID:    req.CampaignID,
		Metric:        metric.Key(req.Metric),
		Operator:      trigger.Operator(req.Operator),
		Threshold:     req.Threshold,
		Mode:          req.Mode,
		DurationHours: req.DurationHours,
		LookbackDays:  req.LookbackDays,
	})
	if err != nil {
		writeServiceError(w, err, "Failed to simulate trigger")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, result)
}

// SuggestThreshold proposes a threshold for a campaign metric
func (h *TriggerHandler) SuggestThreshold(w http.ResponseWriter, r *http.Request) {
	campaignID, _ := strconv.ParseInt(r.URL.Query().Get("campaign_id"), 10, 64)
	key, err := metric.ParseKey(r.URL.Query().Get("metric"))
	if err != nil {
		utils.WriteError(w, errors.InvalidTriggerConfig(err.Error()))
		return
	}

	suggestion, err := h.evaluator.SuggestThreshold(r.Context(), campaignID, key)
	if err != nil {
		writeServiceError(w, err, "Failed to suggest threshold")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.SuggestThresholdResponse{
		Baseline:      suggestion.Baseline,
		Spread:        suggestion.Spread,
		AbsSuggestion: suggestion.AbsSuggestion,
		RelOptions:    suggestion.RelOptions,
	})
}
