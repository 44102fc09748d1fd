package notify

import (
	"github.com/rs/zerolog"
)

// LogSink writes notifications to the service log. It is the default sink
// when no Kafka brokers are configured.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Emit(namespace, eventType string, payload map[string]string) {
	event := s.logger.Info().
		Str("namespace", namespace).
		Str("event", eventType)
	for k, v := range payload {
		event = event.Str(k, v)
	}
	event.Msg("notification")
}
