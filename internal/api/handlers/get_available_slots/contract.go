package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-GradShootBooking/internal/service/availability/models"
)

type AvailabilityService interface {
	ByTime(ctx context.Context, shootType, date string) ([]models.TimeAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
