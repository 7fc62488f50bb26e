package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-GradShootBooking/pkg/logger"
)

type mockSlotRepo struct {
	listUsageFn func(ctx context.Context, t domain.ShootType, date *time.Time) ([]domain.SlotUsage, error)
	upserted    []domain.SlotConfig
}

func (m *mockSlotRepo) ListUsage(ctx context.Context, t domain.ShootType, date *time.Time) ([]domain.SlotUsage, error) {
	return m.listUsageFn(ctx, t, date)
}

func (m *mockSlotRepo) Upsert(_ context.Context, cfg domain.SlotConfig) error {
	m.upserted = append(m.upserted, cfg)
	return nil
}

type mockAdminRepo struct {
	admins map[string]bool
}

func (m *mockAdminRepo) IsAdmin(_ context.Context, email string) (bool, error) {
	return m.admins[email], nil
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestByDate_SumsAndClamps(t *testing.T) {
	repo := &mockSlotRepo{listUsageFn: func(_ context.Context, st domain.ShootType, date *time.Time) ([]domain.SlotUsage, error) {
		assert.Equal(t, domain.ShootTypeStudio, st)
		assert.Nil(t, date)
		return []domain.SlotUsage{
			{Date: day(13), Time: "09:00", Capacity: 2, Confirmed: 0},
			{Date: day(12), Time: "09:00", Capacity: 3, Confirmed: 1},
			{Date: day(12), Time: "10:00", Capacity: 1, Confirmed: 4},
		}, nil
	}}

	got, err := NewService(repo, &mockAdminRepo{}, logger.NewNop()).ByDate(context.Background(), "Studio")
	require.NoError(t, err)
	assert.Equal(t, []models.DateAvailability{
		{Date: "2026-03-12", Remaining: 2},
		{Date: "2026-03-13", Remaining: 2},
	}, got)
}

func TestByDate_InvalidType(t *testing.T) {
	_, err := NewService(&mockSlotRepo{}, &mockAdminRepo{}, logger.NewNop()).ByDate(context.Background(), "beach")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestByTime_SortedChronologically(t *testing.T) {
	repo := &mockSlotRepo{listUsageFn: func(_ context.Context, _ domain.ShootType, date *time.Time) ([]domain.SlotUsage, error) {
		require.NotNil(t, date)
		assert.Equal(t, day(12), *date)
		return []domain.SlotUsage{
			{Time: "1:00 PM", Capacity: 2, Confirmed: 1},
			{Time: "10:00 AM", Capacity: 1, Confirmed: 1},
			{Time: "9:00 AM", Capacity: 3, Confirmed: 5},
		}, nil
	}}

	got, err := NewService(repo, &mockAdminRepo{}, logger.NewNop()).ByTime(context.Background(), "campus", "2026-03-12")
	require.NoError(t, err)
	assert.Equal(t, []models.TimeAvailability{
		{Time: "9:00 AM", Remaining: 0},
		{Time: "10:00 AM", Remaining: 0},
		{Time: "1:00 PM", Remaining: 1},
	}, got)
}

func TestByTime_Errors(t *testing.T) {
	repo := &mockSlotRepo{listUsageFn: func(context.Context, domain.ShootType, *time.Time) ([]domain.SlotUsage, error) {
		return nil, errors.New("db down")
	}}
	svc := NewService(repo, &mockAdminRepo{}, logger.NewNop())

	_, err := svc.ByTime(context.Background(), "studio", "12/03/2026")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ByTime(context.Background(), "studio", "2026-03-12")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestSetCapacity(t *testing.T) {
	repo := &mockSlotRepo{}
	svc := NewService(repo, &mockAdminRepo{admins: map[string]bool{"boss@up.edu.ph": true}}, logger.NewNop())

	req := &models.SetCapacityRequest{Type: "studio", Date: "2026-03-12", Time: "09:00", Capacity: 4}

	assert.ErrorIs(t, svc.SetCapacity(context.Background(), "juan@up.edu.ph", req), ErrAccessDenied)

	require.NoError(t, svc.SetCapacity(context.Background(), "boss@up.edu.ph", req))
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, 4, repo.upserted[0].Capacity)
	assert.Equal(t, day(12), repo.upserted[0].Date)

	bad := &models.SetCapacityRequest{Type: "studio", Date: "2026-03-12", Time: "09:00", Capacity: -1}
	assert.ErrorIs(t, svc.SetCapacity(context.Background(), "boss@up.edu.ph", bad), ErrInvalidInput)
}
