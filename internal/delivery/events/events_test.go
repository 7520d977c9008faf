package events

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/profile_reviews/internal/domain"
	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
)

func TestGenerateExponentialBackoff(t *testing.T) {
	assert.Nil(t, generateExponentialBackoff(1))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, generateExponentialBackoff(3))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}, generateExponentialBackoff(5))
}

func TestStreamConfig_UsesConfiguredSubject(t *testing.T) {
	s := NewStreamConfig(nil, "shop.reviews", logger.New("test"))

	stream := s.streamConfig()
	assert.Equal(t, StreamName, stream.Name)
	assert.Equal(t, []string{"shop.reviews"}, stream.Subjects)
	assert.Equal(t, nats.WorkQueuePolicy, stream.Retention)

	consumer := s.consumerConfig(RatingConsumer)
	assert.Equal(t, RatingConsumer, consumer.Durable)
	assert.Equal(t, "shop.reviews", consumer.FilterSubject)
	assert.Equal(t, MaxDeliveryAttempts, consumer.MaxDeliver)
	assert.Len(t, consumer.BackOff, MaxDeliveryAttempts-1)
}

type fakeMsg struct {
	acked  int
	nacked int
}

func (m *fakeMsg) Ack(...nats.AckOpt) error {
	m.acked++
	return nil
}

func (m *fakeMsg) Nak(...nats.AckOpt) error {
	m.nacked++
	return nil
}

func TestPullConsumer_AcksOnSuccessNaksOnFailure(t *testing.T) {
	c := &PullConsumer{batchSize: 1, logger: logger.New("test")}

	ok := &fakeMsg{}
	c.process(ok, []byte(`{}`), func([]byte) error { return nil })
	assert.Equal(t, 1, ok.acked)
	assert.Equal(t, 0, ok.nacked)

	failed := &fakeMsg{}
	c.process(failed, []byte(`{}`), func([]byte) error { return assert.AnError })
	assert.Equal(t, 0, failed.acked)
	assert.Equal(t, 1, failed.nacked)
}

func TestLoggingHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := LoggingHandler(logger.NewWithWriter(&buf, "test"))

	review := &domain.Review{ID: uuid.New(), UserID: uuid.New(), ProductID: uuid.New(), ProductSlug: "blue-mug", Rating: 5}
	data, err := json.Marshal(domain.NewReviewEvent(domain.EventReviewCreated, review))
	require.NoError(t, err)

	require.NoError(t, handler(data))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "review.created", entry["type"])
	assert.Equal(t, "blue-mug", entry["product_slug"])
	assert.Equal(t, review.ID.String(), entry["review_id"])
}

func TestLoggingHandler_InvalidJSON(t *testing.T) {
	handler := LoggingHandler(logger.New("test"))

	err := handler([]byte(`{invalid json}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}
