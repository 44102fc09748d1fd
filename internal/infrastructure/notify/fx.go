package notify

import (
	"context"

	"github.com/okdewit/ytdlp-docker/config"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/kafka"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

var Module = fx.Module(
	"notify",
	fx.Provide(NewSink),
)

// NewSink selects the notification sink implementation. With Kafka brokers
// configured events are published there, otherwise they go to the log.
func NewSink(lc fx.Lifecycle, cfg *config.NotifyConfig, log zerolog.Logger) (Sink, error) {
	if len(cfg.Brokers) == 0 {
		log.Info().Msg("no notification brokers configured, using log sink")
		return NewLogSink(log), nil
	}

	producer, err := kafka.NewProducer(cfg.Brokers, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return producer.Close()
		},
	})

	return NewKafkaSink(producer, cfg.Topic, log), nil
}
