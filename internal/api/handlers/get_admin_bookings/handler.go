package get_admin_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GradShootBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GradShootBooking/internal/api/middleware"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/bookings"
)

const msgForbidden = "Admins only"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	result, err := h.service.ListConfirmed(r.Context(), id.Email)
	if err != nil {
		if errors.Is(err, bookings.ErrAccessDenied) {
			h.logger.Warn("GET /admin/bookings - Access denied: email=%s", id.Email)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /admin/bookings - Failed to list bookings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bookings - Listed %d bookings for %s", result.Total, id.Email)
	handlers.RespondJSON(w, http.StatusOK, result)
}
