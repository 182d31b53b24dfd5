package create_template

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m-orlv/STB-AvailabilityService/internal/api/handlers"
	schedule "github.com/m-orlv/STB-AvailabilityService/internal/service/schedule"
	"github.com/m-orlv/STB-AvailabilityService/internal/service/schedule/models"
)

const (
	msgInvalidProviderID  = "invalid provider ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInterval    = "interval end must be after start"
	msgProviderNotFound   = "provider not found"
	msgDuplicateTemplate  = "an enabled template for this weekday already exists"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/providers/{providerId}/templates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /providers/{id}/templates - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	var req models.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("POST /providers/{id}/templates - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	// The path owns the provider identity; the body may not redirect it.
	req.ProviderID = providerID

	result, err := h.service.CreateTemplate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrDuplicateTemplate):
			h.logger.Warn("POST /providers/{id}/templates - Duplicate template: provider_id=%d, weekday=%d",
				providerID, req.DayOfWeek)
			handlers.RespondConflict(w, msgDuplicateTemplate)

		case errors.Is(err, schedule.ErrProviderNotFound):
			h.logger.Warn("POST /providers/{id}/templates - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, schedule.ErrInvalidInterval):
			h.logger.Warn("POST /providers/{id}/templates - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /providers/{id}/templates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /providers/{id}/templates - Failed: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/templates - Created: provider_id=%d, template_id=%d, weekday=%d",
		providerID, result.ID, result.DayOfWeek)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
