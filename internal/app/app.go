package app

import (
	"github.com/okdewit/ytdlp-docker/config"
	"github.com/okdewit/ytdlp-docker/internal/domain"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/database"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/http"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/logger"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/metrics"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/notify"
	"github.com/okdewit/ytdlp-docker/internal/ytdlp"
	"go.uber.org/fx"
)

func CreateApp() fx.Option {
	return fx.Options(
		fx.Provide(config.Out),

		logger.Module,
		database.Module,
		metrics.Module,
		notify.Module,
		ytdlp.Module,

		domain.Module,

		http.Module,
	)
}
