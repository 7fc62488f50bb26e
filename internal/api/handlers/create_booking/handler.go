package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GradShootBooking/internal/api/handlers"
	"github.com/m04kA/SMC-GradShootBooking/internal/api/middleware"
	submitBooking "github.com/m04kA/SMC-GradShootBooking/internal/usecase/submit_booking"
)

const (
	msgBooked             = "Booking confirmed!"
	msgRescheduled        = "Booking rescheduled!"
	msgInvalidRequestBody = "Invalid request body"
	msgDomainNotAllowed   = "Strictly for UP students only. Please login with your UP email."
	msgInvalidMobile      = "Invalid mobile number. Must be 11 digits starting with 09."
	msgInvalidInput       = "Missing or invalid booking details."
	msgAlreadyBooked      = "You already have an active booking."
	msgSlotNotConfigured  = "This slot is not available."
	msgSlotFull           = "Slot is fully booked."
	msgWindowExpired      = "Reschedule window expired. (24 hours since your first booking has passed)"
	msgSaveFailed         = "Database Error: Could not save booking."
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /book - Invalid request body: user_id=%s, error=%v", id.ID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id))
	if err != nil {
		switch {
		case errors.Is(err, submitBooking.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, submitBooking.ErrEmailDomainNotAllowed):
			h.logger.Warn("POST /book - Email domain not allowed: user_id=%s", id.ID)
			handlers.RespondForbidden(w, msgDomainNotAllowed)

		case errors.Is(err, submitBooking.ErrInvalidMobile):
			h.logger.Warn("POST /book - Invalid mobile: user_id=%s", id.ID)
			handlers.RespondBadRequest(w, msgInvalidMobile)

		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /book - Invalid input: user_id=%s, error=%v", id.ID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, submitBooking.ErrWindowExpired):
			h.logger.Warn("POST /book - Reschedule window expired: user_id=%s", id.ID)
			handlers.RespondForbidden(w, msgWindowExpired)

		case errors.Is(err, submitBooking.ErrActiveBookingExists):
			handlers.RespondConflict(w, msgAlreadyBooked)

		case errors.Is(err, submitBooking.ErrSlotNotConfigured):
			handlers.RespondConflict(w, msgSlotNotConfigured)

		case errors.Is(err, submitBooking.ErrSlotFull):
			handlers.RespondConflict(w, msgSlotFull)

		default:
			h.logger.Error("POST /book - Failed to submit booking: user_id=%s, error=%v", id.ID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgSaveFailed)
		}
		return
	}

	h.logger.Info("POST /book - Booking saved: booking_id=%s, user_id=%s, rescheduled=%t",
		result.ID, id.ID, result.Rescheduled)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
