package processor

import (
	"context"
	"errors"
	"sync"
	"time"

	"ridehail/pkg/logger"
	"ridehail/pkg/metrics"
	"ridehail/rating-service/internal/app/rating/entity"
	"ridehail/rating-service/internal/app/rating/service"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
)

const serviceName = "rating-service"

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type ConsumerConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

// KafkaConsumer turns ride completed events into rating windows. A message is
// committed once it is handled or found to be unprocessable; a failing handler
// is retried in place so later offsets are never committed past it.
type KafkaConsumer struct {
	reader     messageReader
	handler    service.RideEventHandler
	topic      string
	groupID    string
	newBackOff func() backoff.BackOff

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewKafkaConsumer(cfg ConsumerConfig, handler service.RideEventHandler) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.GroupID,
		MinBytes:       cfg.MinBytes,
		MaxBytes:       cfg.MaxBytes,
		StartOffset:    kafka.FirstOffset,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: time.Second,
		ErrorLogger:    kafka.LoggerFunc(logger.ErrorPrintf),
	})

	return newConsumer(reader, handler, cfg.Topic, cfg.GroupID)
}

func newConsumer(reader messageReader, handler service.RideEventHandler, topic, groupID string) *KafkaConsumer {
	return &KafkaConsumer{
		reader:  reader,
		handler: handler,
		topic:   topic,
		groupID: groupID,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 30 * time.Second
			b.MaxElapsedTime = 0
			return b
		},
		done: make(chan struct{}),
	}
}

func (c *KafkaConsumer) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)

	logger.Info().
		Str("topic", c.topic).
		Str("group_id", c.groupID).
		Msg("Starting Kafka consumer")

	go c.consume(ctx)
}

// Stop interrupts fetching and any pending retry, then closes the reader.
// The message being retried stays uncommitted.
func (c *KafkaConsumer) Stop() {
	c.once.Do(func() {
		logger.Info().Msg("Stopping Kafka consumer")
		if c.cancel != nil {
			c.cancel()
			<-c.done
		}
		if err := c.reader.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close Kafka reader")
		}
		logger.Info().Msg("Kafka consumer stopped")
	})
}

func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.done)

	for {
		message, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			metrics.RecordKafkaError(serviceName, c.topic, "fetch")
			logger.Error().Err(err).Str("topic", c.topic).Msg("Error fetching message")

			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		start := time.Now()
		if err := c.processMessage(ctx, message); err != nil {
			logger.Warn().
				Err(err).
				Int("partition", message.Partition).
				Int64("offset", message.Offset).
				Msg("Message left uncommitted")
			return
		}

		if err := c.reader.CommitMessages(ctx, message); err != nil {
			metrics.RecordKafkaError(serviceName, c.topic, "commit")
			logger.Error().Err(err).Int64("offset", message.Offset).Msg("Error committing message")
			continue
		}

		metrics.RecordKafkaMessageConsumed(serviceName, c.topic, c.groupID, time.Since(start))
	}
}

// processMessage returns an error only when the consumer is stopping with
// the message still unhandled.
func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	event, err := entity.DecodeRideCompletedEvent(message.Value)
	if err != nil {
		var decodeErr *entity.DecodeError
		if errors.As(err, &decodeErr) {
			metrics.RecordKafkaDiscard(serviceName, c.topic, "malformed")
			logger.Warn().
				Err(err).
				Int("partition", message.Partition).
				Int64("offset", message.Offset).
				Str("payload", string(decodeErr.Payload)).
				Msg("Discarding malformed ride completed event")
			return nil
		}
		return err
	}
	if event == nil {
		metrics.RecordKafkaDiscard(serviceName, c.topic, "empty")
		logger.Debug().Int64("offset", message.Offset).Msg("Skipping empty message")
		return nil
	}

	logger.Debug().
		Str("ride_id", event.RideID).
		Int("partition", message.Partition).
		Int64("offset", message.Offset).
		Msg("Received ride completed event")

	operation := func() error {
		return c.handler.HandleRideCompleted(ctx, event)
	}
	notify := func(err error, wait time.Duration) {
		metrics.RecordKafkaError(serviceName, c.topic, "handle")
		logger.Error().
			Err(err).
			Str("ride_id", event.RideID).
			Dur("retry_in", wait).
			Msg("Failed to handle ride completed event, retrying")
	}

	return backoff.RetryNotify(operation, backoff.WithContext(c.newBackOff(), ctx), notify)
}

func (c *KafkaConsumer) Stats() kafka.ReaderStats {
	if r, ok := c.reader.(*kafka.Reader); ok {
		return r.Stats()
	}
	return kafka.ReaderStats{}
}
