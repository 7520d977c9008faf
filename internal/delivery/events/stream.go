package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
)

const (
	// StreamName is the JetStream stream for review events
	StreamName = "REVIEWS"

	// RatingConsumer is the durable consumer of the rating worker
	RatingConsumer = "rating-worker"

	// MaxDeliveryAttempts is the max number of delivery attempts before a message is dropped.
	// Recalculation reads the database, so the next event for the product repairs a dropped one.
	MaxDeliveryAttempts = 3

	// AckWait is how long to wait for acknowledgment before redelivery
	AckWait = 30 * time.Second
)

// StreamConfig declares the review events stream and its consumers
type StreamConfig struct {
	js      nats.JetStreamContext
	subject string
	logger  *logger.Logger
}

// NewStreamConfig creates a new stream configuration helper for subject
func NewStreamConfig(js nats.JetStreamContext, subject string, log *logger.Logger) *StreamConfig {
	return &StreamConfig{
		js:      js,
		subject: subject,
		logger:  log,
	}
}

// generateExponentialBackoff creates a backoff schedule for NATS redeliveries: 1s, 2s, 4s, ...
// MaxDeliver N requires N-1 backoff durations (first delivery is immediate)
func generateExponentialBackoff(maxDeliveryAttempts int) []time.Duration {
	if maxDeliveryAttempts <= 1 {
		return nil
	}

	backoff := make([]time.Duration, maxDeliveryAttempts-1)
	for i := range backoff {
		backoff[i] = time.Duration(1<<i) * time.Second
	}
	return backoff
}

func (s *StreamConfig) streamConfig() *nats.StreamConfig {
	return &nats.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{s.subject},
		Retention:   nats.WorkQueuePolicy,
		Storage:     nats.FileStorage,
		Replicas:    1,
		MaxAge:      24 * time.Hour,
		Discard:     nats.DiscardOld,
		Description: "Review lifecycle events",
	}
}

// EnsureStream creates the review events stream if it does not exist yet.
// Messages are removed once acknowledged and kept at most 24 hours.
func (s *StreamConfig) EnsureStream() error {
	stream, err := s.js.StreamInfo(StreamName)

	if errors.Is(err, nats.ErrStreamNotFound) {
		s.logger.WithFields(map[string]any{
			"stream":  StreamName,
			"subject": s.subject,
		}).Info("Creating JetStream stream")

		if _, err := s.js.AddStream(s.streamConfig()); err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}

		s.logger.Info("JetStream stream created successfully")
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get stream info: %w", err)
	}

	s.logger.WithFields(map[string]any{
		"stream":   stream.Config.Name,
		"messages": stream.State.Msgs,
		"bytes":    stream.State.Bytes,
	}).Info("JetStream stream already exists")

	return nil
}

func (s *StreamConfig) consumerConfig(durable string) *nats.ConsumerConfig {
	return &nats.ConsumerConfig{
		Durable:       durable,
		AckPolicy:     nats.AckExplicitPolicy,
		AckWait:       AckWait,
		MaxDeliver:    MaxDeliveryAttempts,
		FilterSubject: s.subject,
		BackOff:       generateExponentialBackoff(MaxDeliveryAttempts),
		Description:   "Durable pull consumer of review events",
	}
}

// EnsureConsumer creates the durable pull consumer if it does not exist yet.
// Failed messages are redelivered with exponential backoff and dropped after MaxDeliveryAttempts.
func (s *StreamConfig) EnsureConsumer(durable string) error {
	consumerInfo, err := s.js.ConsumerInfo(StreamName, durable)

	if errors.Is(err, nats.ErrConsumerNotFound) {
		s.logger.WithFields(map[string]any{
			"stream":   StreamName,
			"consumer": durable,
		}).Info("Creating JetStream consumer")

		if _, err := s.js.AddConsumer(StreamName, s.consumerConfig(durable)); err != nil {
			return fmt.Errorf("failed to create consumer: %w", err)
		}

		s.logger.Info("JetStream consumer created successfully")
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}

	s.logger.WithFields(map[string]any{
		"consumer":    consumerInfo.Name,
		"pending":     consumerInfo.NumPending,
		"redelivered": consumerInfo.NumRedelivered,
		"ack_pending": consumerInfo.NumAckPending,
	}).Info("JetStream consumer already exists")

	return nil
}
