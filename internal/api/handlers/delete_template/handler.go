package delete_template

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m-orlv/STB-AvailabilityService/internal/api/handlers"
	schedule "github.com/m-orlv/STB-AvailabilityService/internal/service/schedule"
)

const (
	msgInvalidProviderID = "invalid provider ID"
	msgInvalidTemplateID = "invalid template ID"
	msgTemplateNotFound  = "template not found"
	msgForbidden         = "template belongs to a different provider"
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

// Handle DELETE /api/v1/providers/{providerId}/templates/{templateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /providers/{id}/templates/{id} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	templateID, err := strconv.ParseInt(vars["templateId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /providers/{id}/templates/{id} - Invalid template ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	if err := h.service.DeleteTemplate(r.Context(), providerID, templateID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrTemplateNotFound):
			h.logger.Warn("DELETE /providers/{id}/templates/{id} - Not found: template_id=%d", templateID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /providers/{id}/templates/{id} - Access denied: provider_id=%d, template_id=%d",
				providerID, templateID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /providers/{id}/templates/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /providers/{id}/templates/{id} - Failed: template_id=%d, error=%v", templateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /providers/{id}/templates/{id} - Deleted: provider_id=%d, template_id=%d",
		providerID, templateID)
	w.WriteHeader(http.StatusNoContent)
}
