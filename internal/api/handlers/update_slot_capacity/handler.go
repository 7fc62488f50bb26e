package update_slot_capacity

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GradShootBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GradShootBooking/internal/api/middleware"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/availability"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/availability/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidData        = "Invalid slot: type, date (YYYY-MM-DD), time and a non-negative capacity are required"
	msgForbidden          = "Admins only"
	msgUpdated            = "Slot capacity updated"
)

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

// Handle PUT /api/v1/admin/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req models.SetCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetCapacity(r.Context(), id.Email, &req); err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /admin/slots - Access denied: email=%s", id.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /admin/slots - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /admin/slots - Failed to set capacity: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/slots - Capacity set: type=%s, date=%s, time=%s, capacity=%d, by=%s",
		req.Type, req.Date, req.Time, req.Capacity, id.Email)
	handlers.RespondSuccess(w, http.StatusOK, msgUpdated)
}
