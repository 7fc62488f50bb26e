package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GradShootBooking/pkg/logger"
)

func TestClient_Verify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		switch r.Header.Get("Authorization") {
		case "Bearer good":
			_, _ = w.Write([]byte(`{"id":"user-1","email":"juan@up.edu.ph"}`))
		case "Bearer broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "anon-key", time.Second, logger.NewNop())

	id, err := c.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.ID)
	assert.Equal(t, "juan@up.edu.ph", id.Email)

	_, err = c.Verify(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = c.Verify(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = c.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClient_Verify_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, "", 200*time.Millisecond, logger.NewNop())
	_, err := c.Verify(context.Background(), "good")
	assert.ErrorIs(t, err, ErrUnavailable)
}
