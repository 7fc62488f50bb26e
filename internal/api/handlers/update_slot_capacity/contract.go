package update_slot_capacity

import (
	"context"

	"github.com/m04kA/SMC-GradShootBooking/internal/service/availability/models"
)

type AvailabilityService interface {
	SetCapacity(ctx context.Context, email string, req *models.SetCapacityRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
