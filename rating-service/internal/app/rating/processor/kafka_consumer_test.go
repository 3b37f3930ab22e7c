package processor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ridehail/rating-service/internal/app/rating/entity"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	mu        sync.Mutex
	messages  []kafka.Message
	committed []int64
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.messages) > 0 {
		msg := r.messages[0]
		r.messages = r.messages[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()

	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeReader) committedOffsets() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

type fakeHandler struct {
	mu       sync.Mutex
	failures int
	handled  []string
	calls    int
}

func (h *fakeHandler) HandleRideCompleted(ctx context.Context, event *entity.RideCompletedEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	if h.failures != 0 {
		if h.failures > 0 {
			h.failures--
		}
		return errors.New("store unavailable")
	}
	h.handled = append(h.handled, event.RideID)
	return nil
}

func (h *fakeHandler) snapshot() (int, []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls, append([]string(nil), h.handled...)
}

func newTestConsumer(reader *fakeReader, handler *fakeHandler) *KafkaConsumer {
	c := newConsumer(reader, handler, "ride_completed", "rating-service")
	c.newBackOff = func() backoff.BackOff {
		return backoff.NewConstantBackOff(time.Millisecond)
	}
	return c
}

func message(offset int64, value string) kafka.Message {
	return kafka.Message{Topic: "ride_completed", Offset: offset, Value: []byte(value)}
}

const validEvent = `{"ride_id":"r-1","passenger_id":"p-1","driver_id":"d-1","completed_at":"2024-03-01T10:00:00Z"}`

func TestKafkaConsumer_CommitsHandledAndUnprocessableMessages(t *testing.T) {
	reader := &fakeReader{messages: []kafka.Message{
		message(1, ""),
		message(2, `{"ride_id":`),
		message(3, `{"ride_id":"r-9"}`),
		message(4, validEvent),
	}}
	handler := &fakeHandler{}
	consumer := newTestConsumer(reader, handler)

	consumer.Start(context.Background())
	defer consumer.Stop()

	assert.Eventually(t, func() bool {
		return len(reader.committedOffsets()) == 4
	}, time.Second, 5*time.Millisecond)

	calls, handled := handler.snapshot()
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"r-1"}, handled)
	assert.Equal(t, []int64{1, 2, 3, 4}, reader.committedOffsets())
}

func TestKafkaConsumer_RetriesHandlerFailureBeforeCommitting(t *testing.T) {
	reader := &fakeReader{messages: []kafka.Message{message(7, validEvent)}}
	handler := &fakeHandler{failures: 2}
	consumer := newTestConsumer(reader, handler)

	consumer.Start(context.Background())
	defer consumer.Stop()

	assert.Eventually(t, func() bool {
		return len(reader.committedOffsets()) == 1
	}, time.Second, 5*time.Millisecond)

	calls, handled := handler.snapshot()
	assert.Equal(t, 3, calls)
	assert.Equal(t, []string{"r-1"}, handled)
}

func TestKafkaConsumer_StopLeavesFailingMessageUncommitted(t *testing.T) {
	reader := &fakeReader{messages: []kafka.Message{
		message(1, validEvent),
		message(2, validEvent),
	}}
	handler := &fakeHandler{failures: -1}
	consumer := newTestConsumer(reader, handler)

	consumer.Start(context.Background())

	assert.Eventually(t, func() bool {
		calls, _ := handler.snapshot()
		return calls >= 3
	}, time.Second, 5*time.Millisecond)

	consumer.Stop()

	assert.Empty(t, reader.committedOffsets())
	require.True(t, reader.closed)

	reader.mu.Lock()
	defer reader.mu.Unlock()
	assert.Len(t, reader.messages, 1)
}

func TestKafkaConsumer_StopIsIdempotent(t *testing.T) {
	reader := &fakeReader{}
	consumer := newTestConsumer(reader, &fakeHandler{})

	consumer.Start(context.Background())
	consumer.Stop()
	consumer.Stop()

	assert.True(t, reader.closed)
}

func TestNewKafkaConsumer(t *testing.T) {
	consumer := NewKafkaConsumer(ConsumerConfig{
		Brokers:  []string{"localhost:9092"},
		Topic:    "ride_completed",
		GroupID:  "rating-service",
		MinBytes: 1,
		MaxBytes: 10e6,
	}, &fakeHandler{})

	require.NotNil(t, consumer)
	assert.Equal(t, "ride_completed", consumer.topic)
	assert.Equal(t, "ride_completed", consumer.Stats().Topic)

	consumer.Stop()
}
