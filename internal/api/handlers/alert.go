package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/campwatch/internal/api/dto"
	"github.com/pratik-mahalle/campwatch/internal/domain/alert"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/campwatch/internal/pkg/utils"
)

type AlertHandler struct {
	service alert.Service
	logger  *logger.Logger
}

func NewAlertHandler(service alert.Service, log *logger.Logger) *AlertHandler {
	return &AlertHandler{service: service, logger: log}
}

func alertDTO(a *alert.Alert) dto.AlertDTO {
	return dto.AlertDTO{
		ID:         a.ID,
		TriggerID:  a.TriggerID,
		CampaignID: a.CampaignID,
		Metric:     string(a.Metric),
		Value:      a.Value,
		Message:    a.Message,
		Severity:   a.Severity,
		Notified:   a.Notified,
		CreatedAt:  a.CreatedAt,
	}
}

// List returns alerts with pagination and filtering
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := utils.ParsePagination(r)

	triggerID, _ := strconv.ParseInt(r.URL.Query().Get("trigger_id"), 10, 64)
	campaignID, _ := strconv.ParseInt(r.URL.Query().Get("campaign_id"), 10, 64)

	filter := alert.Filter{
		TriggerID:  triggerID,
		CampaignID: campaignID,
		Metric:     r.URL.Query().Get("metric"),
		Severity:   r.URL.Query().Get("severity"),
	}

	offset := (page - 1) * pageSize
	alerts, total, err := h.service.List(r.Context(), filter, pageSize, offset)
	if err != nil {
		writeServiceError(w, err, "Failed to list alerts")
		return
	}

	dtos := make([]dto.AlertDTO, len(alerts))
	for i, a := range alerts {
		dtos[i] = alertDTO(a)
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, page, pageSize, total))
}

// Get returns a single alert by ID
func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	a, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get alert")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, alertDTO(a))
}

// Stats returns per-trigger alert counts over a recent window
func (h *AlertHandler) Stats(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days < 1 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	stats, err := h.service.StatsSince(r.Context(), since)
	if err != nil {
		writeServiceError(w, err, "Failed to get alert stats")
		return
	}

	dtos := make([]dto.AlertStatsDTO, 0, len(stats))
	for _, s := range stats {
		dtos = append(dtos, dto.AlertStatsDTO{
			TriggerID: s.TriggerID,
			Count:     s.Count,
			Last:      s.Last,
		})
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}
