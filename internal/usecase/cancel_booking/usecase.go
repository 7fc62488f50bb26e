package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GradShootBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/notifications"
	"github.com/m04kA/SMC-GradShootBooking/pkg/metrics"
)

// UseCase use case для отмены брони в пределах окна
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	syncQueue    SyncQueue
	notifier     Notifier
	window       time.Duration
	timeProvider TimeProvider
	logger       Logger
	metrics      *metrics.Metrics
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	syncQueue SyncQueue,
	notifier Notifier,
	window time.Duration,
	logger Logger,
	m *metrics.Metrics,
) *UseCase {
	if window <= 0 {
		window = domain.DefaultRescheduleWindow
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		syncQueue:    syncQueue,
		notifier:     notifier,
		window:       window,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		metrics:      m,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute отменяет подтвержденную бронь пользователя.
// Окно считается от самой первой брони, а не от последней.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Identity.ID == "" {
		return nil, ErrUnauthorized
	}

	uc.logger.Info("CancelBooking: user=%s", req.Identity.ID)

	var (
		cancelled *domain.Booking
		window    domain.RescheduleWindow
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		cancelled = nil
		now := uc.timeProvider.Now()

		initial, err := uc.bookingRepo.GetInitialBookingAt(txCtx, req.Identity.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to get initial booking time: %w", ErrInternal, err)
		}
		if initial == nil {
			return ErrNoBookingHistory
		}

		window = domain.ComputeWindow(*initial, now, uc.window)
		if !window.Allowed {
			return ErrWindowExpired
		}

		existing, err := uc.bookingRepo.GetActiveByUser(txCtx, req.Identity.ID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get active booking: %w", ErrInternal, err)
		}

		if err := uc.bookingRepo.Cancel(txCtx, existing.ID, now); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to cancel booking id=%s: %w", ErrInternal, existing.ID, err)
		}

		existing.Status = domain.StatusCancelled
		existing.Synced = false
		existing.CancelledAt = &now
		existing.UpdatedAt = now
		existing.Version++
		cancelled = existing
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrNoBookingHistory), errors.Is(err, ErrBookingNotFound):
			uc.metrics.ObserveAdmission("cancel", "not_found")
			uc.logger.Warn("CancelBooking: user=%s: %v", req.Identity.ID, err)
			return nil, err
		case errors.Is(err, ErrWindowExpired):
			uc.metrics.ObserveAdmission("cancel", "window_expired")
			uc.logger.Warn("CancelBooking: user=%s: window closed at %s", req.Identity.ID,
				window.ExpiresAt.Format(time.RFC3339))
			return nil, err
		}
		uc.metrics.ObserveAdmission("cancel", "internal")
		uc.logger.Error("CancelBooking: user=%s: %v", req.Identity.ID, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.ObserveAdmission("cancel", "ok")
	uc.logger.Info("CancelBooking: cancelled booking id=%s for user=%s", cancelled.ID, cancelled.UserID)

	// Отмена тоже должна попасть в таблицу
	uc.syncQueue.Enqueue(cancelled)
	uc.notifier.Notify(cancelled, notifications.KindCancelled)

	return &Response{
		ID:          cancelled.ID,
		Status:      cancelled.Status,
		CancelledAt: *cancelled.CancelledAt,
		HoursLeft:   window.HoursLeft,
	}, nil
}
