package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/profile_reviews/internal/domain"
	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
)

// Consumer receives events over a plain NATS subscription
type Consumer struct {
	nc     *nats.Conn
	logger *logger.Logger
	sub    *nats.Subscription
}

// NewConsumer creates a new NATS consumer
func NewConsumer(url, name string, log *logger.Logger) (*Consumer, error) {
	nc, err := Connect(url, name, log)
	if err != nil {
		return nil, err
	}

	log.Infof("Connected to NATS at %s", url)

	return &Consumer{
		nc:     nc,
		logger: log,
	}, nil
}

// Subscribe subscribes to a NATS subject and processes messages
func (c *Consumer) Subscribe(subject string, handler func(data []byte) error) error {
	sub, err := c.nc.Subscribe(subject, func(msg *nats.Msg) {
		c.logger.Debugf("Received message on subject %s", subject)

		if err := handler(msg.Data); err != nil {
			c.logger.Errorf(err, "Failed to handle message on subject %s", subject)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
	}

	c.sub = sub
	c.logger.Infof("Subscribed to NATS subject: %s", subject)
	return nil
}

// Close closes the NATS connection
func (c *Consumer) Close() {
	if c.sub != nil {
		if err := c.sub.Unsubscribe(); err != nil {
			c.logger.Warnf("Failed to unsubscribe from NATS: %v", err)
		}
	}
	if c.nc != nil {
		c.nc.Close()
		c.logger.Info("NATS consumer connection closed")
	}
}

// LoggingHandler creates a handler that logs every review event
func LoggingHandler(log *logger.Logger) func(data []byte) error {
	return func(data []byte) error {
		var event domain.ReviewEvent
		if err := json.Unmarshal(data, &event); err != nil {
			log.Error("Failed to unmarshal review event", err)
			return fmt.Errorf("failed to unmarshal event: %w", err)
		}

		log.WithFields(map[string]interface{}{
			"type":         event.Type,
			"review_id":    event.ReviewID.String(),
			"user_id":      event.UserID.String(),
			"product_slug": event.ProductSlug,
			"rating":       event.Rating,
			"timestamp":    event.Timestamp,
		}).Info("Review event received")
		return nil
	}
}
