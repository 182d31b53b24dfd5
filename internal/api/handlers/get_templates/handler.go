package get_templates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m-orlv/STB-AvailabilityService/internal/api/handlers"
	schedule "github.com/m-orlv/STB-AvailabilityService/internal/service/schedule"
	"github.com/m-orlv/STB-AvailabilityService/internal/service/schedule/models"
)

const msgInvalidProviderID = "invalid provider ID"

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

// ListResponse wraps the template list.
type ListResponse struct {
	Templates []*models.TemplateResponse `json:"templates"`
}

// Handle GET /api/v1/providers/{providerId}/templates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/templates - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	templates, err := h.service.ListTemplates(r.Context(), providerID)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("GET /providers/{id}/templates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /providers/{id}/templates - Failed: provider_id=%d, error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/{id}/templates - Listed: provider_id=%d, count=%d", providerID, len(templates))
	handlers.RespondJSON(w, http.StatusOK, ListResponse{Templates: templates})
}
