package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// publisher часть *amqp.Channel, которая нужна отправителю
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// MQSender публикует письма в exchange RabbitMQ
type MQSender struct {
	mu         sync.Mutex
	conn       *amqp.Connection
	ch         publisher
	closeCh    func() error
	exchange   string
	routingKey string
	from       string
}

// NewMQSender подключается к брокеру и объявляет durable topic exchange
func NewMQSender(url, exchange, routingKey, from string) (*MQSender, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial rabbitmq: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange: %v", ErrConnect, err)
	}

	return &MQSender{
		conn:       conn,
		ch:         ch,
		closeCh:    ch.Close,
		exchange:   exchange,
		routingKey: routingKey,
		from:       from,
	}, nil
}

// Send публикует письмо как JSON сообщение
func (s *MQSender) Send(ctx context.Context, to, subject, html string) error {
	body, err := json.Marshal(Mail{From: s.from, To: to, Subject: subject, HTML: html})
	if err != nil {
		return fmt.Errorf("%w: marshal mail: %v", ErrPublish, err)
	}

	// канал amqp нельзя использовать из нескольких горутин одновременно
	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.ch.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

func (s *MQSender) Close() error {
	if s.closeCh != nil {
		_ = s.closeCh()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// LogSender пишет письма в лог, когда брокер выключен
type LogSender struct {
	log Logger
}

func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, to, subject, html string) error {
	s.log.Info("Notifier: mail to=%s subject=%q (%d bytes, delivery disabled)", to, subject, len(html))
	return nil
}

func (s *LogSender) Close() error { return nil }
