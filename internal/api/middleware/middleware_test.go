package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
	"github.com/m04kA/SMC-GradShootBooking/internal/integrations/identity"
	"github.com/m04kA/SMC-GradShootBooking/pkg/logger"
	"github.com/m04kA/SMC-GradShootBooking/pkg/metrics"
)

type verifierFunc func(ctx context.Context, token string) (*domain.Identity, error)

func (f verifierFunc) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	return f(ctx, token)
}

func echoIdentity() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = fmt.Fprint(w, id.ID+"|"+id.Email)
	})
}

func TestAuth(t *testing.T) {
	verifier := verifierFunc(func(_ context.Context, token string) (*domain.Identity, error) {
		switch token {
		case "good":
			return &domain.Identity{ID: "u1", Email: "juan@up.edu.ph"}, nil
		case "down":
			return nil, identity.ErrUnavailable
		default:
			return nil, identity.ErrInvalidToken
		}
	})
	h := Auth(verifier, logger.NewNop())(echoIdentity())

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid token", "Bearer good", http.StatusOK, "u1|juan@up.edu.ph"},
		{"lowercase scheme", "bearer good", http.StatusOK, "u1|juan@up.edu.ph"},
		{"missing header", "", http.StatusUnauthorized, `"Unauthorized"`},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, `"Unauthorized"`},
		{"rejected token", "Bearer bad", http.StatusUnauthorized, `"Unauthorized"`},
		{"provider down", "Bearer down", http.StatusServiceUnavailable, "unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/booking", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestCronSecret(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	call := func(secret, header string) int {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/sync-sheet", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		CronSecret(secret, logger.NewNop())(ok).ServeHTTP(rec, r)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("s3cret", "Bearer s3cret"))
	assert.Equal(t, http.StatusUnauthorized, call("s3cret", "Bearer nope"))
	assert.Equal(t, http.StatusUnauthorized, call("s3cret", ""))
	assert.Equal(t, http.StatusUnauthorized, call("", "Bearer "))
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(0.0001, 2)
	h := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(ip string) int {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/book", nil)
		r.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.get("10.0.0.1")
	now = now.Add(visitorTTL + time.Second)
	limiter.get("10.0.0.2")
	limiter.Cleanup()

	assert.Len(t, limiter.visitors, 1)
	assert.Contains(t, limiter.visitors, "10.0.0.2")
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.168.1.5:4000"
	assert.Equal(t, "192.168.1.5", clientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIP(r))
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.New("test")
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/api/v1/slots", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots?type=studio", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	out := httptest.NewRecorder()
	m.Handler().ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, out.Body.String(), `route="/api/v1/slots",status="400"`)
}
