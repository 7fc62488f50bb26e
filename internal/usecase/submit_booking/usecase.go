package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GradShootBooking/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-GradShootBooking/internal/infra/storage/slotconfig"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/notifications"
	"github.com/m04kA/SMC-GradShootBooking/pkg/metrics"
	"github.com/m04kA/SMC-GradShootBooking/pkg/ptr"
)

// UseCase use case для бронирования и переноса фотосессии
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotConfigRepository
	txManager    TransactionManager
	syncQueue    SyncQueue
	notifier     Notifier
	emailSuffix  string
	window       time.Duration
	timeProvider TimeProvider
	logger       Logger
	metrics      *metrics.Metrics
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotConfigRepository,
	txManager TransactionManager,
	syncQueue SyncQueue,
	notifier Notifier,
	emailSuffix string,
	window time.Duration,
	logger Logger,
	m *metrics.Metrics,
) *UseCase {
	if window <= 0 {
		window = domain.DefaultRescheduleWindow
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		syncQueue:    syncQueue,
		notifier:     notifier,
		emailSuffix:  emailSuffix,
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

// Execute выполняет бронирование.
// Проверка прошлых броней, отмена при переносе, проверка вместимости и вставка
// идут в одной сериализуемой транзакции. Выгрузка в таблицу и письмо
// ставятся в фоновую очередь после коммита.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	normalizeRequest(req)
	action := string(req.Action)

	// 1. Пользователь должен быть подтвержден
	if req.Identity.ID == "" {
		uc.metrics.ObserveAdmission(action, "unauthorized")
		return nil, ErrUnauthorized
	}

	// 2. Домен email берется только из identity provider
	if !req.Identity.HasEmailSuffix(uc.emailSuffix) {
		uc.logger.Warn("SubmitBooking: blocked email outside %s: %s", uc.emailSuffix, req.Identity.Email)
		uc.metrics.ObserveAdmission(action, "forbidden_domain")
		return nil, ErrEmailDomainNotAllowed
	}

	// 3. Номер телефона
	if err := validateMobile(req.Mobile); err != nil {
		uc.metrics.ObserveAdmission(action, "invalid_mobile")
		return nil, err
	}

	// 4. Остальные поля
	date, err := validateFields(req)
	if err != nil {
		uc.logger.Warn("SubmitBooking: validation failed for user=%s: %v", req.Identity.ID, err)
		uc.metrics.ObserveAdmission(action, "invalid_input")
		return nil, err
	}

	uc.logger.Info("SubmitBooking: user=%s, action=%s, type=%s, date=%s, time=%s",
		req.Identity.ID, req.Action, req.Type, req.Date, req.Time)

	slot := domain.SlotKey{Type: domain.ShootType(req.Type), Date: date, Time: req.Time}

	var (
		created   *domain.Booking
		cancelled *domain.Booking
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Транзакция может быть повторена, поэтому результат сбрасывается
		created, cancelled = nil, nil
		now := uc.timeProvider.Now()

		initial, err := uc.bookingRepo.GetInitialBookingAt(txCtx, req.Identity.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to get initial booking time: %w", ErrInternal, err)
		}

		// 5. Прошлое состояние
		if req.Action == ActionReschedule {
			cancelled, err = uc.cancelActive(txCtx, req.Identity.ID, initial, now)
			if err != nil {
				return err
			}
		} else {
			active, err := uc.bookingRepo.CountActiveByUser(txCtx, req.Identity.ID)
			if err != nil {
				return fmt.Errorf("%w: failed to count active bookings: %w", ErrInternal, err)
			}
			if active > 0 {
				return ErrActiveBookingExists
			}
		}

		// 6. Вместимость слота
		cfg, err := uc.slotRepo.Get(txCtx, slot)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotConfigured) {
				return ErrSlotNotConfigured
			}
			return fmt.Errorf("%w: failed to get slot config: %w", ErrInternal, err)
		}

		taken, err := uc.bookingRepo.CountConfirmedBySlot(txCtx, slot)
		if err != nil {
			return fmt.Errorf("%w: failed to count slot bookings: %w", ErrInternal, err)
		}
		if taken >= cfg.Capacity {
			uc.logger.Warn("SubmitBooking: slot %s %s %s is full, %d/%d",
				req.Type, req.Date, req.Time, taken, cfg.Capacity)
			return ErrSlotFull
		}

		// 7. Новая бронь; время первой брони не меняется при переносе
		initialAt := now
		if initial != nil {
			initialAt = *initial
		}

		booking := &domain.Booking{
			UserID:           req.Identity.ID,
			Type:             slot.Type,
			Date:             slot.Date,
			Time:             slot.Time,
			Status:           domain.StatusConfirmed,
			Name:             req.Name,
			Email:            req.Identity.Email,
			Mobile:           req.Mobile,
			Package:          req.Package,
			Addons:           req.Addons,
			Makeup:           req.Makeup,
			Remarks:          req.Remarks,
			Synced:           false,
			InitialBookingAt: initialAt,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrActiveBookingExists) {
				return ErrActiveBookingExists
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		uc.metrics.ObserveAdmission(action, admissionResult(err))
		if isKnown(err) {
			uc.logger.Warn("SubmitBooking: user=%s rejected: %v", req.Identity.ID, err)
			return nil, err
		}
		uc.logger.Error("SubmitBooking: user=%s: %v", req.Identity.ID, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.ObserveAdmission(action, "ok")
	uc.logger.Info("SubmitBooking: created booking id=%s for user=%s", created.ID, created.UserID)

	// 8. Фон: выгрузка отмененной при переносе брони, новой брони
	// и хвоста несинхронизированных строк
	if cancelled != nil {
		uc.syncQueue.Enqueue(cancelled)
	}
	uc.syncQueue.Enqueue(created)

	// 9. Фон: письмо, не зависит от выгрузки
	kind := notifications.KindBooked
	if cancelled != nil {
		kind = notifications.KindRescheduled
	}
	uc.notifier.Notify(created, kind)

	resp := &Response{
		ID:               created.ID,
		Type:             created.Type,
		Date:             created.Date,
		Time:             created.Time,
		Status:           created.Status,
		InitialBookingAt: created.InitialBookingAt,
		Rescheduled:      cancelled != nil,
	}
	if cancelled != nil {
		resp.CancelledID = ptr.Ptr(cancelled.ID)
	}
	return resp, nil
}

// cancelActive отменяет текущую бронь при переносе.
// Если активной брони нет, перенос работает как обычное бронирование.
func (uc *UseCase) cancelActive(ctx context.Context, userID string, initial *time.Time, now time.Time) (*domain.Booking, error) {
	existing, err := uc.bookingRepo.GetActiveByUser(ctx, userID)
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get active booking: %w", ErrInternal, err)
	}

	windowStart := existing.InitialBookingAt
	if initial != nil {
		windowStart = *initial
	}
	if w := domain.ComputeWindow(windowStart, now, uc.window); !w.Allowed {
		return nil, ErrWindowExpired
	}

	if err := uc.bookingRepo.Cancel(ctx, existing.ID, now); err != nil {
		return nil, fmt.Errorf("%w: failed to cancel booking id=%s: %w", ErrInternal, existing.ID, err)
	}

	existing.Status = domain.StatusCancelled
	existing.Synced = false
	existing.CancelledAt = &now
	existing.UpdatedAt = now
	existing.Version++
	return existing, nil
}

var knownErrors = []struct {
	err    error
	result string
}{
	{ErrActiveBookingExists, "active_booking_exists"},
	{ErrSlotNotConfigured, "slot_not_configured"},
	{ErrSlotFull, "slot_full"},
	{ErrWindowExpired, "window_expired"},
}

func isKnown(err error) bool {
	return admissionResult(err) != "internal"
}

// admissionResult метка для метрики решения
func admissionResult(err error) string {
	for _, k := range knownErrors {
		if errors.Is(err, k.err) {
			return k.result
		}
	}
	return "internal"
}
