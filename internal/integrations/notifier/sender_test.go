package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GradShootBooking/pkg/logger"
)

type fakePublisher struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (f *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func TestMQSender_Send(t *testing.T) {
	pub := &fakePublisher{}
	s := &MQSender{ch: pub, exchange: "mail", routingKey: "mail.send", from: "noreply@gradshoot"}

	require.NoError(t, s.Send(context.Background(), "juan@up.edu.ph", "Booking confirmed", "<p>hi</p>"))

	assert.Equal(t, "mail", pub.exchange)
	assert.Equal(t, "mail.send", pub.key)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)

	var mail Mail
	require.NoError(t, json.Unmarshal(pub.msg.Body, &mail))
	assert.Equal(t, Mail{From: "noreply@gradshoot", To: "juan@up.edu.ph", Subject: "Booking confirmed", HTML: "<p>hi</p>"}, mail)
}

func TestMQSender_PublishError(t *testing.T) {
	s := &MQSender{ch: &fakePublisher{err: errors.New("channel closed")}}
	err := s.Send(context.Background(), "a@up.edu.ph", "s", "b")
	assert.ErrorIs(t, err, ErrPublish)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(logger.NewWriter(&buf, logger.LevelInfo))

	require.NoError(t, s.Send(context.Background(), "juan@up.edu.ph", "Booking cancelled", "<p>x</p>"))
	assert.Contains(t, buf.String(), "juan@up.edu.ph")
	assert.Contains(t, buf.String(), "Booking cancelled")
}
