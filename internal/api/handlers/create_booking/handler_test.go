package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GradShootBooking/internal/api/middleware"
	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
	submitBooking "github.com/m04kA/SMC-GradShootBooking/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-GradShootBooking/pkg/logger"
)

type fakeUseCase struct {
	got  *submitBooking.Request
	resp *submitBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *submitBooking.Request) (*submitBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

const body = `{"type":"studio","date":"2026-03-12","time":"09:00","name":"Juan","mobile":"09171234567",
"package":"Package A","makeup":"Yes","email":"spoof@gmail.com","action":"reschedule"}`

func serve(uc *fakeUseCase, payload string, withIdentity bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/book", strings.NewReader(payload))
	if withIdentity {
		r = r.WithContext(middleware.WithIdentity(r.Context(), domain.Identity{ID: "u1", Email: "juan@up.edu.ph"}))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, r)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &submitBooking.Response{
		ID:               "b2",
		Type:             domain.ShootTypeStudio,
		Date:             time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Time:             "09:00",
		Status:           domain.StatusConfirmed,
		InitialBookingAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		Rescheduled:      true,
	}}

	rec := serve(uc, body, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SubmitBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, msgRescheduled, resp.Message)
	assert.Equal(t, "b2", resp.BookingID)
	assert.Equal(t, "2026-03-12", resp.Date)
	assert.Equal(t, "2026-03-01T08:00:00Z", resp.InitialBookingAt)

	require.NotNil(t, uc.got)
	assert.Equal(t, "juan@up.edu.ph", uc.got.Identity.Email)
	assert.Equal(t, submitBooking.ActionReschedule, uc.got.Action)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{submitBooking.ErrEmailDomainNotAllowed, http.StatusForbidden, msgDomainNotAllowed},
		{submitBooking.ErrInvalidMobile, http.StatusBadRequest, msgInvalidMobile},
		{submitBooking.ErrInvalidInput, http.StatusBadRequest, msgInvalidInput},
		{submitBooking.ErrWindowExpired, http.StatusForbidden, msgWindowExpired},
		{submitBooking.ErrActiveBookingExists, http.StatusConflict, msgAlreadyBooked},
		{submitBooking.ErrSlotNotConfigured, http.StatusConflict, msgSlotNotConfigured},
		{submitBooking.ErrSlotFull, http.StatusConflict, msgSlotFull},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, msgSaveFailed},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, body, true)

			assert.Equal(t, tt.status, rec.Code)
			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, tt.message, resp["message"])
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}

func TestHandle_BadBody(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "{", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_NoIdentity(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, body, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}
