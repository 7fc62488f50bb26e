package syncer

import (
	"context"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
	"github.com/m04kA/SMC-GradShootBooking/internal/worker"
)

// Pusher таблица, принимающая строки по одной или пачкой
type Pusher interface {
	Push(ctx context.Context, payload domain.SyncPayload) error
	PushBatch(ctx context.Context, payloads []domain.SyncPayload) ([]string, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListUnsynced(ctx context.Context, limit int, excludeIDs ...string) ([]*domain.Booking, error)
	MarkSynced(ctx context.Context, marks ...domain.SyncMark) (int64, error)
}

// JobSubmitter очередь фоновых задач
type JobSubmitter interface {
	Submit(job worker.Job) bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
