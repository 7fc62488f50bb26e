package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/notifications"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByUser(ctx context.Context, userID string) (*domain.Booking, error)
	GetInitialBookingAt(ctx context.Context, userID string) (*time.Time, error)
	Cancel(ctx context.Context, id string, at time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SyncQueue фоновая выгрузка брони в таблицу
type SyncQueue interface {
	Enqueue(b *domain.Booking)
}

// Notifier фоновая отправка письма
type Notifier interface {
	Notify(b *domain.Booking, kind notifications.Kind)
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

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
