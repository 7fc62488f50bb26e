package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GradShootBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GradShootBooking/internal/api/middleware"
	cancelBooking "github.com/m04kA/SMC-GradShootBooking/internal/usecase/cancel_booking"
)

const (
	msgCancelled     = "Booking cancelled."
	msgNoHistory     = "Initial booking records not found"
	msgNotFound      = "No active booking found"
	msgWindowExpired = "Reschedule window expired. (24 hours since your first booking has passed)"
	msgUpdateFailed  = "Update failed"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/booking
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{Identity: id})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, cancelBooking.ErrNoBookingHistory):
			h.logger.Warn("DELETE /booking - No booking history: user_id=%s", id.ID)
			handlers.RespondNotFound(w, msgNoHistory)

		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("DELETE /booking - No confirmed booking: user_id=%s", id.ID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrWindowExpired):
			h.logger.Warn("DELETE /booking - Window expired: user_id=%s", id.ID)
			handlers.RespondForbidden(w, msgWindowExpired)

		default:
			h.logger.Error("DELETE /booking - Failed to cancel booking: user_id=%s, error=%v", id.ID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgUpdateFailed)
		}
		return
	}

	h.logger.Info("DELETE /booking - Booking cancelled: booking_id=%s, user_id=%s", result.ID, id.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
