package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) error
	Close() error
}

// RabbitMQSender publishes persistent JSON messages to a durable queue
// through the default exchange.
type RabbitMQSender struct {
	conn    *amqp091.Connection
	channel publisher
	queue   string
	logger  *zap.Logger
}

func NewRabbitMQSender(url string, queue string, logger *zap.Logger) (*RabbitMQSender, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	sender := newRabbitMQSender(ch, queue, logger)
	sender.conn = conn
	return sender, nil
}

func newRabbitMQSender(ch publisher, queue string, logger *zap.Logger) *RabbitMQSender {
	return &RabbitMQSender{
		channel: ch,
		queue:   queue,
		logger:  logger.With(zap.String("component", "rabbitmq_sender")),
	}
}

func (s *RabbitMQSender) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	err = s.channel.PublishWithContext(ctx, "", s.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    msg.CreatedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

func (s *RabbitMQSender) Close() error {
	err := s.channel.Close()
	if s.conn != nil {
		err = errors.Join(err, s.conn.Close())
	}
	return err
}
