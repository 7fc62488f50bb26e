package get_admin_bookings

import (
	"context"

	"github.com/m04kA/SMC-GradShootBooking/internal/service/bookings/models"
)

type BookingService interface {
	ListConfirmed(ctx context.Context, email string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
