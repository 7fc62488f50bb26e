package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GradShootBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/availability"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/availability/models"
)

const msgInvalidQuery = "Query parameters type (studio|campus) and date (YYYY-MM-DD) are required"

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

// Handle GET /api/v1/slots?type=&date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	shootType, date := q.Get("type"), q.Get("date")

	result, err := h.service.ByTime(r.Context(), shootType, date)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			h.logger.Warn("GET /slots - Invalid query: type=%q, date=%q", shootType, date)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /slots - Failed to get slots: type=%s, date=%s, error=%v", shootType, date, err)
		handlers.RespondInternalError(w)
		return
	}

	if result == nil {
		result = []models.TimeAvailability{}
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}
