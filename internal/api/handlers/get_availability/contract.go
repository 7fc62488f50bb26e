package get_availability

import (
	"context"

	"github.com/m04kA/SMC-GradShootBooking/internal/service/availability/models"
)

type AvailabilityService interface {
	ByDate(ctx context.Context, shootType string) ([]models.DateAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
