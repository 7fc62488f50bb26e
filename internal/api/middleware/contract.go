package middleware

import (
	"context"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
)

// TokenVerifier проверяет bearer токен у identity provider
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
