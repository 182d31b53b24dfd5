package get_overrides

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m-orlv/STB-AvailabilityService/internal/api/handlers"
	schedule "github.com/m-orlv/STB-AvailabilityService/internal/service/schedule"
	"github.com/m-orlv/STB-AvailabilityService/internal/service/schedule/models"
)

const (
	msgInvalidProviderID = "invalid provider ID"
	msgMissingRange      = "from and to query parameters are required"
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

// ListResponse wraps the override list.
type ListResponse struct {
	Overrides []*models.OverrideResponse `json:"overrides"`
}

// Handle GET /api/v1/providers/{providerId}/overrides
// Query params: from (required, YYYY-MM-DD), to (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/overrides - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		h.logger.Warn("GET /providers/{id}/overrides - Missing range: provider_id=%d", providerID)
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	overrides, err := h.service.ListOverrides(r.Context(), providerID, from, to)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("GET /providers/{id}/overrides - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /providers/{id}/overrides - Failed: provider_id=%d, error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/{id}/overrides - Listed: provider_id=%d, from=%s, to=%s, count=%d",
		providerID, from, to, len(overrides))
	handlers.RespondJSON(w, http.StatusOK, ListResponse{Overrides: overrides})
}
