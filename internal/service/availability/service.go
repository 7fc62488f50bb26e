package availability

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/availability/models"
)

// Service свободные места по дням и слотам
type Service struct {
	slotRepo  SlotConfigRepository
	adminRepo AdminRepository
	logger    Logger
}

func NewService(slotRepo SlotConfigRepository, adminRepo AdminRepository, logger Logger) *Service {
	return &Service{
		slotRepo:  slotRepo,
		adminRepo: adminRepo,
		logger:    logger,
	}
}

// ByDate свободные места по дням для типа съемки, по возрастанию даты.
// Переполненный слот дает 0, а не отрицательное число.
func (s *Service) ByDate(ctx context.Context, rawType string) ([]models.DateAvailability, error) {
	shootType, err := parseType(rawType)
	if err != nil {
		return nil, err
	}

	usage, err := s.slotRepo.ListUsage(ctx, shootType, nil)
	if err != nil {
		s.logger.Error("ByDate: repository error for type=%s: %v", shootType, err)
		return nil, fmt.Errorf("%w: ByDate - repository error: %v", ErrInternal, err)
	}

	perDate := make(map[string]int)
	for _, u := range usage {
		perDate[u.Date.Format(domain.DateFormat)] += u.Remaining()
	}

	result := make([]models.DateAvailability, 0, len(perDate))
	for date, remaining := range perDate {
		result = append(result, models.DateAvailability{Date: date, Remaining: remaining})
	}
	// формат YYYY-MM-DD сортируется лексикографически
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })

	return result, nil
}

// ByTime свободные места в слотах одного дня, по времени суток
func (s *Service) ByTime(ctx context.Context, rawType, rawDate string) ([]models.TimeAvailability, error) {
	shootType, err := parseType(rawType)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return nil, err
	}

	usage, err := s.slotRepo.ListUsage(ctx, shootType, &date)
	if err != nil {
		s.logger.Error("ByTime: repository error for type=%s date=%s: %v", shootType, rawDate, err)
		return nil, fmt.Errorf("%w: ByTime - repository error: %v", ErrInternal, err)
	}

	slots := make([]domain.TimeAvailability, 0, len(usage))
	for _, u := range usage {
		slots = append(slots, domain.TimeAvailability{Time: u.Time, Remaining: u.Remaining()})
	}
	domain.SortTimeAvailability(slots)

	result := make([]models.TimeAvailability, 0, len(slots))
	for _, sl := range slots {
		result = append(result, models.TimeAvailability{Time: sl.Time, Remaining: sl.Remaining})
	}
	return result, nil
}

// SetCapacity задает вместимость слота; доступно только администраторам
func (s *Service) SetCapacity(ctx context.Context, email string, req *models.SetCapacityRequest) error {
	isAdmin, err := s.adminRepo.IsAdmin(ctx, email)
	if err != nil {
		s.logger.Error("SetCapacity: admin check failed for %s: %v", email, err)
		return fmt.Errorf("%w: SetCapacity - admin check: %v", ErrInternal, err)
	}
	if !isAdmin {
		s.logger.Warn("SetCapacity: access denied for %s", email)
		return ErrAccessDenied
	}

	shootType, err := parseType(req.Type)
	if err != nil {
		return err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}
	slotTime := strings.TrimSpace(req.Time)
	if _, ok := domain.ParseTimeLabel(slotTime); !ok {
		return fmt.Errorf("%w: time %q", ErrInvalidInput, req.Time)
	}
	if req.Capacity < 0 {
		return fmt.Errorf("%w: capacity must be >= 0", ErrInvalidInput)
	}

	cfg := domain.SlotConfig{
		SlotKey:  domain.SlotKey{Type: shootType, Date: date, Time: slotTime},
		Capacity: req.Capacity,
	}
	if err := s.slotRepo.Upsert(ctx, cfg); err != nil {
		s.logger.Error("SetCapacity: repository error: %v", err)
		return fmt.Errorf("%w: SetCapacity - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetCapacity: %s set %s %s %s capacity=%d", email, shootType, req.Date, slotTime, req.Capacity)
	return nil
}

func parseType(raw string) (domain.ShootType, error) {
	t := domain.ShootType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: type must be studio or campus", ErrInvalidInput)
	}
	return t, nil
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse(domain.DateFormat, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return d, nil
}
