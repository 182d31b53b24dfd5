package update_template

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
	msgInvalidTemplateID  = "invalid template ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInterval    = "interval end must be after start"
	msgTemplateNotFound   = "template not found"
	msgForbidden          = "template belongs to a different provider"
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

// Handle PUT /api/v1/providers/{providerId}/templates/{templateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /providers/{id}/templates/{id} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	templateID, err := strconv.ParseInt(vars["templateId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /providers/{id}/templates/{id} - Invalid template ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	var req models.UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("PUT /providers/{id}/templates/{id} - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ProviderID = providerID

	result, err := h.service.UpdateTemplate(r.Context(), templateID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrTemplateNotFound):
			h.logger.Warn("PUT /providers/{id}/templates/{id} - Not found: template_id=%d", templateID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /providers/{id}/templates/{id} - Access denied: provider_id=%d, template_id=%d",
				providerID, templateID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrDuplicateTemplate):
			h.logger.Warn("PUT /providers/{id}/templates/{id} - Duplicate template: provider_id=%d, weekday=%d",
				providerID, req.DayOfWeek)
			handlers.RespondConflict(w, msgDuplicateTemplate)

		case errors.Is(err, schedule.ErrInvalidInterval):
			h.logger.Warn("PUT /providers/{id}/templates/{id} - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /providers/{id}/templates/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /providers/{id}/templates/{id} - Failed: template_id=%d, error=%v", templateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/{id}/templates/{id} - Updated: provider_id=%d, template_id=%d",
		providerID, templateID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
