package notifications

import (
	"context"

	"github.com/m04kA/SMC-GradShootBooking/internal/worker"
)

// Sender отправка письма
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
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
