package get_effective_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m-orlv/STB-AvailabilityService/internal/api/handlers"
	getEffectiveConfig "github.com/m-orlv/STB-AvailabilityService/internal/usecase/get_effective_config"
)

const (
	msgInvalidProviderID = "invalid provider ID"
	msgMissingDate       = "date query parameter is required"
	msgInvalidDate       = "invalid date format, expected YYYY-MM-DD"
	msgProviderNotFound  = "provider not found"
)

type Handler struct {
	useCase GetEffectiveConfigUseCase
	logger  Logger
}

func NewHandler(useCase GetEffectiveConfigUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/effective-config
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/effective-config - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /providers/{id}/effective-config - Missing date: provider_id=%d", providerID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getEffectiveConfig.Request{
		ProviderID: providerID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getEffectiveConfig.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/effective-config - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getEffectiveConfig.ErrInvalidDate):
			h.logger.Warn("GET /providers/{id}/effective-config - Invalid date: provider_id=%d, date=%s", providerID, date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getEffectiveConfig.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/effective-config - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /providers/{id}/effective-config - Failed: provider_id=%d, date=%s, error=%v",
				providerID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/effective-config - Resolved: provider_id=%d, date=%s, closed=%t, source=%s",
		providerID, date, result.Closed, result.Source)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
