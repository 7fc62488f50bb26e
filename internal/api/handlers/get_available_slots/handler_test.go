package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-GradShootBooking/internal/service/availability"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-GradShootBooking/pkg/logger"
)

type serviceFunc func(ctx context.Context, shootType, date string) ([]models.TimeAvailability, error)

func (f serviceFunc) ByTime(ctx context.Context, shootType, date string) ([]models.TimeAvailability, error) {
	return f(ctx, shootType, date)
}

func serve(svc AvailabilityService, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve(serviceFunc(func(_ context.Context, shootType, date string) ([]models.TimeAvailability, error) {
		assert.Equal(t, "campus", shootType)
		assert.Equal(t, "2026-03-13", date)
		return []models.TimeAvailability{{Time: "9:00 AM", Remaining: 1}, {Time: "2:00 PM", Remaining: 2}}, nil
	}), "/api/v1/slots?type=campus&date=2026-03-13")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"time":"9:00 AM","remaining":1},{"time":"2:00 PM","remaining":2}]`, rec.Body.String())
}

func TestHandle_InvalidQuery(t *testing.T) {
	rec := serve(serviceFunc(func(context.Context, string, string) ([]models.TimeAvailability, error) {
		return nil, fmt.Errorf("%w: bad date", availability.ErrInvalidInput)
	}), "/api/v1/slots?type=studio")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidQuery)
}

func TestHandle_Failure(t *testing.T) {
	rec := serve(serviceFunc(func(context.Context, string, string) ([]models.TimeAvailability, error) {
		return nil, errors.New("timeout")
	}), "/api/v1/slots?type=studio&date=2026-03-13")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
