package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockMessageWriter struct {
	mock.Mock
}

func (m *MockMessageWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockMessageWriter) Close() error {
	return m.Called().Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp091.Publishing,
) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

func sampleMessage() Message {
	return Message{
		Recipient: "5f1c3a4e-8a57-4a55-9d8e-2f7c0b4a1e11",
		Text:      "Your delivery request was accepted",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestKafkaSender_Send_KeysByRecipient(t *testing.T) {
	writer := new(MockMessageWriter)
	msg := sampleMessage()
	writer.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 || string(msgs[0].Key) != msg.Recipient {
			return false
		}
		var decoded Message
		return json.Unmarshal(msgs[0].Value, &decoded) == nil && decoded == msg
	})).Return(nil).Once()

	sender := newKafkaSender(writer, time.Second, zap.NewNop())

	require.NoError(t, sender.Send(context.Background(), msg))
	writer.AssertExpectations(t)
}

func TestKafkaSender_Send_WrapsWriterError(t *testing.T) {
	writer := new(MockMessageWriter)
	boom := errors.New("leader not available")
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(boom)
	writer.On("Close").Return(nil)

	sender := newKafkaSender(writer, time.Second, zap.NewNop())

	err := sender.Send(context.Background(), sampleMessage())
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, sender.Close())
}

func TestRabbitMQSender_Send_PublishesPersistentJSON(t *testing.T) {
	ch := new(MockPublisher)
	msg := sampleMessage()
	ch.On("PublishWithContext", mock.Anything, "", "notifications", false, false,
		mock.MatchedBy(func(p amqp091.Publishing) bool {
			var decoded Message
			return p.ContentType == "application/json" &&
				p.DeliveryMode == amqp091.Persistent &&
				json.Unmarshal(p.Body, &decoded) == nil &&
				decoded.Text == msg.Text
		}),
	).Return(nil).Once()
	ch.On("Close").Return(nil).Once()

	sender := newRabbitMQSender(ch, "notifications", zap.NewNop())

	require.NoError(t, sender.Send(context.Background(), msg))
	require.NoError(t, sender.Close())
	ch.AssertExpectations(t)
}

func TestLogSender_NeverFails(t *testing.T) {
	sender := NewLogSender(zap.NewNop())
	assert.NoError(t, sender.Send(context.Background(), sampleMessage()))
	assert.NoError(t, sender.Close())
}
