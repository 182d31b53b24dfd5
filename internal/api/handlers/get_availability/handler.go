package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m-orlv/STB-AvailabilityService/internal/api/handlers"
	getAvailability "github.com/m-orlv/STB-AvailabilityService/internal/usecase/get_availability"
)

const (
	msgInvalidProviderID = "invalid provider ID"
	msgMissingDate       = "date query parameter is required"
	msgInvalidDate       = "invalid date format, expected YYYY-MM-DD"
	msgInvalidDuration   = "invalid duration_minutes value"
	msgProviderNotFound  = "provider not found"
	msgBeyondHorizon     = "date is beyond the provider's booking horizon"
	msgBookingStoreDown  = "booking data is temporarily unavailable"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/availability
// Query params: date (required, YYYY-MM-DD), duration_minutes (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /providers/{id}/availability - Missing date: provider_id=%d", providerID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	durationMinutes := 0
	if durationStr := r.URL.Query().Get("duration_minutes"); durationStr != "" {
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/availability - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		ProviderID:      providerID,
		Date:            date,
		DurationMinutes: durationMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/availability - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /providers/{id}/availability - Invalid date: provider_id=%d, date=%s", providerID, date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailability.ErrDateBeyondHorizon):
			h.logger.Warn("GET /providers/{id}/availability - Date beyond horizon: provider_id=%d, date=%s", providerID, date)
			handlers.RespondBadRequest(w, msgBeyondHorizon)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailability.ErrBookingStoreUnavailable):
			h.logger.Error("GET /providers/{id}/availability - Booking store unavailable: provider_id=%d, date=%s", providerID, date)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgBookingStoreDown)

		default:
			h.logger.Error("GET /providers/{id}/availability - Failed: provider_id=%d, date=%s, error=%v", providerID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/availability - Computed: provider_id=%d, date=%s, closed=%t, slots_count=%d",
		providerID, date, result.Closed, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
