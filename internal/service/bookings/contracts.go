package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByUser(ctx context.Context, userID string) (*domain.Booking, error)
	GetInitialBookingAt(ctx context.Context, userID string) (*time.Time, error)
	ListByStatus(ctx context.Context, status domain.BookingStatus) ([]*domain.Booking, error)
}

// AdminRepository проверка прав администратора
type AdminRepository interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
