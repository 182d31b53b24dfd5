package delete_override

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
	msgOverrideNotFound  = "override not found"
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

// Handle DELETE /api/v1/providers/{providerId}/overrides/{date}
// The date falls back to its weekday template.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /providers/{id}/overrides/{date} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}
	date := vars["date"]

	if err := h.service.DeleteOverride(r.Context(), providerID, date); err != nil {
		switch {
		case errors.Is(err, schedule.ErrOverrideNotFound):
			h.logger.Warn("DELETE /providers/{id}/overrides/{date} - Not found: provider_id=%d, date=%s",
				providerID, date)
			handlers.RespondNotFound(w, msgOverrideNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /providers/{id}/overrides/{date} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /providers/{id}/overrides/{date} - Failed: provider_id=%d, date=%s, error=%v",
				providerID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /providers/{id}/overrides/{date} - Deleted: provider_id=%d, date=%s", providerID, date)
	w.WriteHeader(http.StatusNoContent)
}
