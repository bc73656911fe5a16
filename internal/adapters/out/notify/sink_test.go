package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingSender struct {
	mu     sync.Mutex
	sent   []Message
	err    error
	closed bool
}

func (s *recordingSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *recordingSender) messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.sent...)
}

func newCounter(name string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Name: name})
}

func TestAsyncSink_NotifyNeverBlocksAndDropsOverflow(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	dropped := newCounter("dropped")
	sink := NewAsyncSink(&recordingSender{}, 2, dropped, newCounter("failed"), zap.New(core))

	recipient := kernel.NewUUID()
	for range 5 {
		sink.Notify(context.Background(), recipient, "hello")
	}

	assert.InDelta(t, 3, testutil.ToFloat64(dropped), 1e-9)
	assert.Equal(t, 3, logs.FilterMessage("notification queue is full, message dropped").Len())
}

func TestAsyncSink_RunDeliversInOrderAndFlushesOnShutdown(t *testing.T) {
	sender := &recordingSender{}
	sink := NewAsyncSink(sender, 8, newCounter("dropped"), newCounter("failed"), zap.NewNop())
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sink.now = func() time.Time { return fixed }

	recipient := kernel.NewUUID()
	sink.Notify(context.Background(), recipient, "first")
	sink.Notify(context.Background(), recipient, "second")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sink.Run(ctx) }()

	require.Eventually(t, func() bool { return len(sender.messages()) == 2 }, time.Second, 5*time.Millisecond)

	sink.Notify(context.Background(), recipient, "third")
	cancel()
	require.NoError(t, <-done)

	got := sender.messages()
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, "third", got[2].Text)
	assert.Equal(t, recipient.String(), got[0].Recipient)
	assert.Equal(t, fixed, got[0].CreatedAt)
	assert.True(t, sender.closed)
}

func TestAsyncSink_SenderFailureIsCountedAndSwallowed(t *testing.T) {
	failed := newCounter("failed")
	sender := &recordingSender{err: errors.New("broker down")}
	sink := NewAsyncSink(sender, 4, newCounter("dropped"), failed, zap.NewNop())

	sink.Notify(context.Background(), kernel.NewUUID(), "lost")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, sink.Run(ctx))

	assert.InDelta(t, 1, testutil.ToFloat64(failed), 1e-9)
}
