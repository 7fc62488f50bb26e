package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
)

// SlotConfigRepository вместимость слотов и их загрузка
type SlotConfigRepository interface {
	ListUsage(ctx context.Context, shootType domain.ShootType, date *time.Time) ([]domain.SlotUsage, error)
	Upsert(ctx context.Context, cfg domain.SlotConfig) error
}

// AdminRepository проверка прав администратора
type AdminRepository interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
