// Package notify delivers user notifications in the background. Callers
// enqueue through AsyncSink and never wait for the transport.
package notify

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const DefaultQueueSize = 256

// Message is the payload handed to a Sender. Its JSON form is what Kafka and
// RabbitMQ consumers receive.
type Message struct {
	Recipient string    `json:"recipient"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
	Close() error
}

// AsyncSink queues notifications and hands them to a Sender from a single
// worker started with Run. When the queue is full the message is dropped.
type AsyncSink struct {
	queue   chan Message
	sender  Sender
	logger  *zap.Logger
	dropped prometheus.Counter
	failed  prometheus.Counter
	now     func() time.Time
}

func NewAsyncSink(
	sender Sender,
	queueSize int,
	dropped prometheus.Counter,
	failed prometheus.Counter,
	logger *zap.Logger,
) *AsyncSink {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &AsyncSink{
		queue:   make(chan Message, queueSize),
		sender:  sender,
		logger:  logger.With(zap.String("component", "notification_sink")),
		dropped: dropped,
		failed:  failed,
		now:     time.Now,
	}
}

func (s *AsyncSink) Notify(_ context.Context, recipient kernel.UUID, message string) {
	msg := Message{Recipient: recipient.String(), Text: message, CreatedAt: s.now().UTC()}

	select {
	case s.queue <- msg:
	default:
		s.dropped.Inc()
		s.logger.Warn("notification queue is full, message dropped",
			zap.String("recipient", msg.Recipient),
		)
	}
}

// Run sends queued messages until ctx is cancelled, then flushes whatever is
// still queued and closes the sender.
func (s *AsyncSink) Run(ctx context.Context) error {
	for {
		select {
		case msg := <-s.queue:
			s.send(ctx, msg)
		case <-ctx.Done():
			s.flush()
			return s.sender.Close()
		}
	}
}

func (s *AsyncSink) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for {
		select {
		case msg := <-s.queue:
			s.send(ctx, msg)
		default:
			return
		}
	}
}

func (s *AsyncSink) send(ctx context.Context, msg Message) {
	if err := s.sender.Send(ctx, msg); err != nil {
		s.failed.Inc()
		s.logger.Error("failed to deliver notification",
			zap.String("recipient", msg.Recipient),
			zap.Error(err),
		)
	}
}
