package video

import (
	"github.com/okdewit/ytdlp-docker/config"
	channeldeps "github.com/okdewit/ytdlp-docker/internal/domain/channel/deps"
	videohttp "github.com/okdewit/ytdlp-docker/internal/domain/video/delivery/http"
	"github.com/okdewit/ytdlp-docker/internal/domain/video/deps"
	"github.com/okdewit/ytdlp-docker/internal/domain/video/repository/postgres"
	"github.com/okdewit/ytdlp-docker/internal/domain/video/usecase/business"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/http/server"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/metrics"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/notify"
	"github.com/okdewit/ytdlp-docker/internal/mediafs"
	"github.com/okdewit/ytdlp-docker/internal/ytdlp"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module(
	"video",
	fx.Provide(
		NewRepository,
		NewScanner,
		NewChannelRegistry,
		NewMetadataResolver,
		NewUseCase,
		videohttp.NewHandler,
	),
	fx.Invoke(registerRoutes),
)

func NewRepository(db *gorm.DB) deps.VideoRepository {
	return postgres.NewRepository(db)
}

func NewScanner(cfg *config.YtdlpConfig) deps.MediaScanner {
	return mediafs.NewScanner(cfg.DataDir)
}

func NewChannelRegistry(channels channeldeps.ChannelUseCase) deps.ChannelRegistry {
	return channels
}

func NewMetadataResolver(resolver *ytdlp.Resolver) deps.MetadataResolver {
	return resolver
}

func NewUseCase(
	repo deps.VideoRepository,
	channels deps.ChannelRegistry,
	scanner deps.MediaScanner,
	resolver deps.MetadataResolver,
	sink notify.Sink,
	m *metrics.Metrics,
	cfg *config.YtdlpConfig,
	logger zerolog.Logger,
) deps.VideoUseCase {
	return business.NewUseCase(repo, channels, scanner, resolver, sink, m, cfg.DiscoveryLimit, logger)
}

func registerRoutes(handler *videohttp.Handler, srv *server.Server) {
	handler.RegisterRoutes(srv.Router)
}
