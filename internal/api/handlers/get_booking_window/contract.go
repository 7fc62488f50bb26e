package get_booking_window

import (
	"context"

	"github.com/m04kA/SMC-GradShootBooking/internal/service/bookings/models"
)

type BookingService interface {
	CheckWindow(ctx context.Context, userID string) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
