package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
)

const (
	fetchWait  = 5 * time.Second
	fetchPause = 5 * time.Second
)

// ackable is the part of *nats.Msg a handler outcome is reported to
type ackable interface {
	Ack(opts ...nats.AckOpt) error
	Nak(opts ...nats.AckOpt) error
}

// PullConsumer fetches review events in batches from a durable JetStream consumer
type PullConsumer struct {
	sub       *nats.Subscription
	batchSize int
	logger    *logger.Logger
}

// NewPullConsumer binds to the durable consumer on subject
func NewPullConsumer(js nats.JetStreamContext, subject, durable string, batchSize int, log *logger.Logger) (*PullConsumer, error) {
	sub, err := js.PullSubscribe(subject, durable, nats.ManualAck(), nats.Bind(StreamName, durable))
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to JetStream consumer: %w", err)
	}

	if batchSize <= 0 {
		batchSize = 1
	}

	log.WithFields(map[string]any{
		"stream":   StreamName,
		"consumer": durable,
	}).Info("Subscribed to JetStream consumer")

	return &PullConsumer{
		sub:       sub,
		batchSize: batchSize,
		logger:    log,
	}, nil
}

// Run fetches and handles messages until ctx is cancelled. A message is acked when
// handle succeeds and nacked otherwise so that JetStream redelivers it.
func (c *PullConsumer) Run(ctx context.Context, handle func(data []byte) error) {
	for {
		if ctx.Err() != nil {
			return
		}

		msgs, err := c.sub.Fetch(c.batchSize, nats.MaxWait(fetchWait))
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			c.logger.Error("Failed to fetch messages from JetStream", err)

			select {
			case <-time.After(fetchPause):
			case <-ctx.Done():
				return
			}
			continue
		}

		for _, msg := range msgs {
			c.process(msg, msg.Data, handle)
		}
	}
}

func (c *PullConsumer) process(msg ackable, data []byte, handle func(data []byte) error) {
	if err := handle(data); err != nil {
		c.logger.Error("Failed to handle event", err)
		if nakErr := msg.Nak(); nakErr != nil {
			c.logger.Error("Failed to NACK message", nakErr)
		}
		return
	}

	if ackErr := msg.Ack(); ackErr != nil {
		c.logger.Error("Failed to ACK message", ackErr)
	}
}

// Close unsubscribes from the consumer; the durable consumer itself is kept
func (c *PullConsumer) Close() {
	if err := c.sub.Unsubscribe(); err != nil {
		c.logger.Warnf("Failed to unsubscribe from JetStream: %v", err)
	}
}
