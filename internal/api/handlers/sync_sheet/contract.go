package sync_sheet

import (
	"context"

	"github.com/m04kA/SMC-GradShootBooking/internal/service/syncer"
)

type SyncService interface {
	Sweep(ctx context.Context) (*syncer.SweepResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
