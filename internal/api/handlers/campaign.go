package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/campwatch/internal/api/dto"
	"github.com/pratik-mahalle/campwatch/internal/domain/campaign"
	"github.com/pratik-mahalle/campwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/campwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/campwatch/internal/pkg/utils"
	"github.com/pratik-mahalle/campwatch/internal/pkg/validator"
)

type CampaignHandler struct {
	service   campaign.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewCampaignHandler(service campaign.Service, log *logger.Logger, val *validator.Validator) *CampaignHandler {
	return &CampaignHandler{service: service, logger: log, validator: val}
}

func campaignDTO(c *campaign.Campaign) dto.CampaignDTO {
	return dto.CampaignDTO{
		ID:         c.ID,
		Name:       c.Name,
		PlatformID: c.PlatformID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// List returns all campaigns
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to list campaigns")
		return
	}

	dtos := make([]dto.CampaignDTO, len(campaigns))
	for i, c := range campaigns {
		dtos[i] = campaignDTO(c)
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// Get returns a single campaign by ID
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get campaign")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, campaignDTO(c))
}

// Create creates a new campaign
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	c := &campaign.Campaign{Name: req.Name, PlatformID: req.PlatformID}
	id, err := h.service.Create(r.Context(), c)
	if err != nil {
		writeServiceError(w, err, "Failed to create campaign")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, map[string]int64{"id": id})
}

// Update updates campaign fields
func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	var req dto.UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.PlatformID != nil {
		updates["platform_id"] = *req.PlatformID
	}

	if err := h.service.Update(r.Context(), id, updates); err != nil {
		writeServiceError(w, err, "Failed to update campaign")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Campaign updated", nil)
}

// Delete deletes a campaign
func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to delete campaign")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Campaign deleted", nil)
}
