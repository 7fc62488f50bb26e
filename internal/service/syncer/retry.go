package syncer

import (
	"context"
	"time"
)

// RetryPolicy сколько раз пытаться и сколько ждать между попытками
type RetryPolicy struct {
	MaxAttempts int
	// Backoff пауза после неудачной попытки attempt (с 1)
	Backoff func(attempt int) time.Duration
}

// FixedBackoff одинаковая пауза между попытками
func FixedBackoff(d time.Duration) func(int) time.Duration {
	return func(int) time.Duration { return d }
}

// DefaultRetryPolicy 3 попытки с паузой 500ms
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Backoff: FixedBackoff(500 * time.Millisecond)}
}

// Sleeper ждет d или отмены ctx
type Sleeper func(ctx context.Context, d time.Duration) error

// RealSleeper ожидание на таймере
func RealSleeper(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.Backoff == nil {
		p.Backoff = FixedBackoff(0)
	}
	return p
}
