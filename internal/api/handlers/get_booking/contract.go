package get_booking

import (
	"context"

	"github.com/m04kA/SMC-GradShootBooking/internal/service/bookings/models"
)

type BookingService interface {
	GetMyBooking(ctx context.Context, userID string) (*models.MyBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
