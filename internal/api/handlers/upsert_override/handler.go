package upsert_override

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

// Handle PUT /api/v1/providers/{providerId}/overrides/{date}
// A repeated PUT for the same date replaces the previous exception.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /providers/{id}/overrides/{date} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	var req models.UpsertOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("PUT /providers/{id}/overrides/{date} - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	// Path segments own the identity of the record.
	req.ProviderID = providerID
	req.Date = vars["date"]

	result, err := h.service.UpsertOverride(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrProviderNotFound):
			h.logger.Warn("PUT /providers/{id}/overrides/{date} - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, schedule.ErrInvalidInterval):
			h.logger.Warn("PUT /providers/{id}/overrides/{date} - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /providers/{id}/overrides/{date} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /providers/{id}/overrides/{date} - Failed: provider_id=%d, date=%s, error=%v",
				providerID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/{id}/overrides/{date} - Saved: provider_id=%d, date=%s, closed=%t",
		providerID, result.Date, result.Closed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
