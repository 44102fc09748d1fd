package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/kafka"
	"github.com/rs/zerolog"
)

// Event is the wire shape published to the notification topic.
type Event struct {
	ID        string            `json:"id"`
	Namespace string            `json:"namespace"`
	Type      string            `json:"type"`
	Payload   map[string]string `json:"payload"`
	Timestamp int64             `json:"timestamp"`
}

// KafkaSink publishes notifications to a Kafka topic. Send errors are
// logged and dropped.
type KafkaSink struct {
	producer *kafka.Producer
	topic    string
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewKafkaSink(producer *kafka.Producer, topic string, logger zerolog.Logger) *KafkaSink {
	return &KafkaSink{
		producer: producer,
		topic:    topic,
		timeout:  5 * time.Second,
		logger:   logger,
	}
}

func (s *KafkaSink) Emit(namespace, eventType string, payload map[string]string) {
	event := Event{
		ID:        uuid.NewString(),
		Namespace: namespace,
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.producer.SendToTopic(ctx, s.topic, namespace, event); err != nil {
		s.logger.Warn().
			Err(err).
			Str("namespace", namespace).
			Str("event", eventType).
			Msg("dropping notification")
	}
}
