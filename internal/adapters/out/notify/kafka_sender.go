package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSender publishes notifications keyed by recipient so that messages of
// one user stay ordered within a partition.
type KafkaSender struct {
	writer  messageWriter
	timeout time.Duration
	logger  *zap.Logger
}

func NewKafkaSender(brokers []string, topic string, logger *zap.Logger) *KafkaSender {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error(fmt.Sprintf(msg, args...))
		}),
	}
	return newKafkaSender(writer, writer.WriteTimeout, logger)
}

func newKafkaSender(writer messageWriter, timeout time.Duration, logger *zap.Logger) *KafkaSender {
	return &KafkaSender{
		writer:  writer,
		timeout: timeout,
		logger:  logger.With(zap.String("component", "kafka_sender")),
	}
}

func (s *KafkaSender) Send(ctx context.Context, msg Message) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err = s.writer.WriteMessages(writeCtx, kafka.Message{Key: []byte(msg.Recipient), Value: value}); err != nil {
		return fmt.Errorf("failed to produce notification to Kafka: %w", err)
	}

	s.logger.Debug("notification produced", zap.String("recipient", msg.Recipient))
	return nil
}

func (s *KafkaSender) Close() error {
	if err := s.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}
	s.logger.Info("Kafka writer closed")
	return nil
}
