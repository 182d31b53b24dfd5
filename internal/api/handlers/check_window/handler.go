package check_window

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m-orlv/STB-AvailabilityService/internal/api/handlers"
	checkWindow "github.com/m-orlv/STB-AvailabilityService/internal/usecase/check_window"
)

const (
	msgInvalidProviderID = "invalid provider ID"
	msgMissingBounds     = "start and end query parameters are required"
	msgInvalidBounds     = "start and end must be RFC3339 timestamps"
	msgInvalidWindow     = "window end must be after start"
	msgProviderNotFound  = "provider not found"
	msgBookingStoreDown  = "booking data is temporarily unavailable"
)

type Handler struct {
	useCase CheckWindowUseCase
	logger  Logger
}

func NewHandler(useCase CheckWindowUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/window-check
// Query params: start (required, RFC3339), end (required, RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/window-check - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /providers/{id}/window-check - Missing bounds: provider_id=%d", providerID)
		handlers.RespondBadRequest(w, msgMissingBounds)
		return
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/window-check - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBounds)
		return
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/window-check - Invalid end: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBounds)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkWindow.Request{
		ProviderID: providerID,
		Start:      start,
		End:        end,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkWindow.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/window-check - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, checkWindow.ErrInvalidWindow):
			h.logger.Warn("GET /providers/{id}/window-check - Invalid window: provider_id=%d, start=%s, end=%s",
				providerID, startStr, endStr)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, checkWindow.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/window-check - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, checkWindow.ErrBookingStoreUnavailable):
			h.logger.Error("GET /providers/{id}/window-check - Booking store unavailable: provider_id=%d", providerID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgBookingStoreDown)

		default:
			h.logger.Error("GET /providers/{id}/window-check - Failed: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/window-check - Checked: provider_id=%d, is_free=%t, conflicts=%d",
		providerID, result.IsFree, result.ConflictCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
