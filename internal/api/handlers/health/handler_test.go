package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-GradShootBooking/pkg/logger"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHandle(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(pingFunc(func(context.Context) error { return nil }), logger.NewNop()).
		Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","database":"up"}`, rec.Body.String())
}

func TestHandle_DatabaseDown(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(pingFunc(func(context.Context) error { return errors.New("refused") }), logger.NewNop()).
		Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","database":"down"}`, rec.Body.String())
}
