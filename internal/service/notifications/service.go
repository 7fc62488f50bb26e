package notifications

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
	"github.com/m04kA/SMC-GradShootBooking/internal/worker"
	"github.com/m04kA/SMC-GradShootBooking/pkg/metrics"
)

// Service письма о бронях; отправка всегда в фоне и без влияния на ответ
type Service struct {
	sender    Sender
	submitter JobSubmitter
	window    time.Duration
	logger    Logger
	metrics   *metrics.Metrics
}

func NewService(sender Sender, submitter JobSubmitter, window time.Duration, logger Logger, m *metrics.Metrics) *Service {
	if window <= 0 {
		window = domain.DefaultRescheduleWindow
	}
	return &Service{
		sender:    sender,
		submitter: submitter,
		window:    window,
		logger:    logger,
		metrics:   m,
	}
}

// Notify ставит письмо в очередь
func (s *Service) Notify(b *domain.Booking, kind Kind) {
	snapshot := *b
	s.submitter.Submit(worker.Job{
		Name: fmt.Sprintf("mail:%s:%s", kind, snapshot.ID),
		Run: func(ctx context.Context) {
			_ = s.Send(ctx, &snapshot, kind)
		},
	})
}

// Send рендерит и отправляет письмо; ошибка только логируется и считается
func (s *Service) Send(ctx context.Context, b *domain.Booking, kind Kind) error {
	subject, html, err := Render(b, kind, s.window)
	if err != nil {
		s.metrics.ObserveNotification(string(kind), "render_failed")
		s.logger.Error("Notify: failed to render %s mail for booking %s: %v", kind, b.ID, err)
		return err
	}

	if err := s.sender.Send(ctx, b.Email, subject, html); err != nil {
		s.metrics.ObserveNotification(string(kind), "failed")
		s.logger.Warn("Notify: failed to send %s mail for booking %s: %v", kind, b.ID, err)
		return err
	}

	s.metrics.ObserveNotification(string(kind), "sent")
	return nil
}

// Render тема и HTML письма
func Render(b *domain.Booking, kind Kind, window time.Duration) (string, string, error) {
	subject, ok := subjects[kind]
	if !ok {
		return "", "", fmt.Errorf("notifications: unknown kind %q", kind)
	}

	data := mailData{
		Kind:       string(kind),
		Name:       b.Name,
		Type:       string(b.Type),
		Date:       b.Date.Format("Monday, January 2, 2006"),
		Time:       b.Time,
		Package:    b.Package,
		Addons:     b.Addons,
		Makeup:     b.Makeup,
		Remarks:    b.Remarks,
		WindowEnds: b.InitialBookingAt.Add(window).UTC().Format("Jan 2, 2006 15:04 MST"),
	}

	var buf bytes.Buffer
	if err := mailTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("notifications: execute template: %w", err)
	}
	return subject, buf.String(), nil
}
