package cancel_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-GradShootBooking/internal/api/middleware"
	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
	cancelBooking "github.com/m04kA/SMC-GradShootBooking/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-GradShootBooking/pkg/logger"
)

type useCaseFunc func(ctx context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error)

func (f useCaseFunc) Execute(ctx context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error) {
	return f(ctx, req)
}

func serve(uc CancelBookingUseCase) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodDelete, "/api/v1/booking", nil)
	r = r.WithContext(middleware.WithIdentity(r.Context(), domain.Identity{ID: "u1", Email: "juan@up.edu.ph"}))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, r)
	return rec
}

func TestHandle_Success(t *testing.T) {
	rec := serve(useCaseFunc(func(_ context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error) {
		assert.Equal(t, "u1", req.Identity.ID)
		return &cancelBooking.Response{
			ID:          "b1",
			Status:      domain.StatusCancelled,
			CancelledAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			HoursLeft:   22,
		}, nil
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Booking cancelled.","bookingId":"b1","status":"Cancelled",
		"cancelledAt":"2026-03-01T10:00:00Z","hoursLeft":22}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{cancelBooking.ErrNoBookingHistory, http.StatusNotFound, msgNoHistory},
		{cancelBooking.ErrBookingNotFound, http.StatusNotFound, msgNotFound},
		{cancelBooking.ErrWindowExpired, http.StatusForbidden, msgWindowExpired},
		{errors.New("boom"), http.StatusInternalServerError, msgUpdateFailed},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			rec := serve(useCaseFunc(func(context.Context, *cancelBooking.Request) (*cancelBooking.Response, error) {
				return nil, tt.err
			}))
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.msg)
		})
	}
}
