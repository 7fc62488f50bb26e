package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GradShootBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/availability"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/availability/models"
)

const msgInvalidType = "Query parameter type must be studio or campus"

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?type=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shootType := r.URL.Query().Get("type")

	result, err := h.service.ByDate(r.Context(), shootType)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			h.logger.Warn("GET /availability - Invalid type: %q", shootType)
			handlers.RespondBadRequest(w, msgInvalidType)
			return
		}
		h.logger.Error("GET /availability - Failed to get availability: type=%s, error=%v", shootType, err)
		handlers.RespondInternalError(w)
		return
	}

	if result == nil {
		result = []models.DateAvailability{}
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}
