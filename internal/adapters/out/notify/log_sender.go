package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes notifications to the log. It is the default backend.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger.With(zap.String("component", "log_sender"))}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("notification",
		zap.String("recipient", msg.Recipient),
		zap.String("text", msg.Text),
		zap.Time("created_at", msg.CreatedAt),
	)
	return nil
}

func (s *LogSender) Close() error {
	return nil
}
