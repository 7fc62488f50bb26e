package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GradShootBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/bookings/models"
)

// Service чтение броней: своя бронь, окно переноса, список для администратора
type Service struct {
	bookingRepo  BookingRepository
	adminRepo    AdminRepository
	window       time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	adminRepo AdminRepository,
	window time.Duration,
	logger Logger,
) *Service {
	if window <= 0 {
		window = domain.DefaultRescheduleWindow
	}
	return &Service{
		bookingRepo:  bookingRepo,
		adminRepo:    adminRepo,
		window:       window,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetMyBooking подтвержденная бронь пользователя и время его первой брони
func (s *Service) GetMyBooking(ctx context.Context, userID string) (*models.MyBookingResponse, error) {
	initial, err := s.bookingRepo.GetInitialBookingAt(ctx, userID)
	if err != nil {
		s.logger.Error("GetMyBooking: failed to get initial booking for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetMyBooking - repository error: %v", ErrInternal, err)
	}

	resp := &models.MyBookingResponse{InitialBookingAt: initial}
	if initial == nil {
		return resp, nil
	}

	active, err := s.bookingRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return resp, nil
		}
		s.logger.Error("GetMyBooking: failed to get active booking for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetMyBooking - repository error: %v", ErrInternal, err)
	}

	resp.Booking = models.FromDomainBooking(active)
	return resp, nil
}

// CheckWindow окно отмены/переноса от самой первой брони пользователя
func (s *Service) CheckWindow(ctx context.Context, userID string) (*models.WindowResponse, error) {
	initial, err := s.bookingRepo.GetInitialBookingAt(ctx, userID)
	if err != nil {
		s.logger.Error("CheckWindow: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: CheckWindow - repository error: %v", ErrInternal, err)
	}
	if initial == nil {
		return nil, ErrBookingNotFound
	}

	w := domain.ComputeWindow(*initial, s.timeProvider.Now(), s.window)
	return models.FromDomainWindow(w), nil
}

// ListConfirmed все подтвержденные брони по дате и времени, только для администраторов
func (s *Service) ListConfirmed(ctx context.Context, email string) (*models.BookingListResponse, error) {
	isAdmin, err := s.adminRepo.IsAdmin(ctx, email)
	if err != nil {
		s.logger.Error("ListConfirmed: admin check failed for %s: %v", email, err)
		return nil, fmt.Errorf("%w: ListConfirmed - admin check: %v", ErrInternal, err)
	}
	if !isAdmin {
		s.logger.Warn("ListConfirmed: access denied for %s", email)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.ListByStatus(ctx, domain.StatusConfirmed)
	if err != nil {
		s.logger.Error("ListConfirmed: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListConfirmed - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListConfirmed: %d confirmed bookings for admin %s", len(bookings), email)
	return models.FromDomainBookingList(bookings), nil
}
