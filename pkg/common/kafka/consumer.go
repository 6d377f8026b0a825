package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dizzycheck/platform/pkg/common/logger"
	"github.com/dizzycheck/platform/pkg/common/models"
	"github.com/segmentio/kafka-go"
)

const (
	initialRetryDelay = 100 * time.Millisecond
	maxRetryDelay     = 10 * time.Second
)

// messageReader is the part of *kafka.Reader the consume loop needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	reader   messageReader
	minDelay time.Duration
	maxDelay time.Duration
	wait     func(ctx context.Context, d time.Duration) error
}

type EventHandler func(ctx context.Context, event models.Event) error

func NewConsumer(brokers []string, topic string, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})

	return newConsumer(reader)
}

func newConsumer(reader messageReader) *Consumer {
	return &Consumer{
		reader:   reader,
		minDelay: initialRetryDelay,
		maxDelay: maxRetryDelay,
		wait:     sleep,
	}
}

// Consume blocks until ctx is cancelled. A message whose handler fails is
// retried with exponential backoff and only committed once the handler
// succeeds, so later messages never move the offset past it. Malformed
// payloads are committed and skipped.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		message, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			logger.Log.WithError(err).Error("Failed to fetch message")
			continue
		}

		var event models.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			logger.Log.WithError(err).Error("Failed to unmarshal event")
			c.commit(ctx, message)
			continue
		}

		if err := c.handleWithRetry(ctx, handler, event); err != nil {
			return err
		}
		c.commit(ctx, message)
	}
}

// handleWithRetry returns only nil or the context error.
func (c *Consumer) handleWithRetry(ctx context.Context, handler EventHandler, event models.Event) error {
	delay := c.minDelay
	for attempt := 1; ; attempt++ {
		err := handler(ctx, event)
		if err == nil {
			return nil
		}
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"event_id": event.ID,
			"attempt":  attempt,
			"retry_in": delay.String(),
		}).Error("Failed to process event")

		if err := c.wait(ctx, delay); err != nil {
			return err
		}
		delay *= 2
		if delay > c.maxDelay {
			delay = c.maxDelay
		}
	}
}

func (c *Consumer) commit(ctx context.Context, message kafka.Message) {
	if err := c.reader.CommitMessages(ctx, message); err != nil {
		logger.Log.WithError(err).Error("Failed to commit message")
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
