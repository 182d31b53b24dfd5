package preview_effective_config

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m-orlv/STB-AvailabilityService/internal/api/handlers"
	"github.com/m-orlv/STB-AvailabilityService/internal/domain"
	getEffectiveConfig "github.com/m-orlv/STB-AvailabilityService/internal/usecase/get_effective_config"
	"github.com/m-orlv/STB-AvailabilityService/pkg/types"
)

const (
	msgInvalidProviderID  = "invalid provider ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgProviderNotFound   = "provider not found"
	msgInvalidTime        = "invalid time format, expected HH:MM"
	msgInvalidInterval    = "interval end must be after start"
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

// Handle POST /api/v1/providers/{providerId}/effective-config/preview
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /providers/{id}/effective-config/preview - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("POST /providers/{id}/effective-config/preview - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(providerID, &req))
	if err != nil {
		switch {
		case errors.Is(err, getEffectiveConfig.ErrProviderNotFound):
			h.logger.Warn("POST /providers/{id}/effective-config/preview - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getEffectiveConfig.ErrInvalidDate):
			h.logger.Warn("POST /providers/{id}/effective-config/preview - Invalid date: provider_id=%d, date=%s",
				providerID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getEffectiveConfig.ErrInvalidInput):
			h.logger.Warn("POST /providers/{id}/effective-config/preview - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		// A draft is caller input, so resolution faults in it are the
		// caller's to fix.
		case errors.Is(err, types.ErrInvalidTimeFormat):
			h.logger.Warn("POST /providers/{id}/effective-config/preview - Invalid draft time: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, domain.ErrInvalidInterval):
			h.logger.Warn("POST /providers/{id}/effective-config/preview - Invalid draft interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("POST /providers/{id}/effective-config/preview - Failed: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/effective-config/preview - Previewed: provider_id=%d, date=%s, closed=%t, source=%s",
		providerID, req.Date, result.Closed, result.Source)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
