package subscription

import (
	"context"

	"github.com/okdewit/ytdlp-docker/config"
	channeldeps "github.com/okdewit/ytdlp-docker/internal/domain/channel/deps"
	settingsdeps "github.com/okdewit/ytdlp-docker/internal/domain/settings/deps"
	subscriptionhttp "github.com/okdewit/ytdlp-docker/internal/domain/subscription/delivery/http"
	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/deps"
	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/repository/postgres"
	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/usecase/business"
	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/workers"
	videodeps "github.com/okdewit/ytdlp-docker/internal/domain/video/deps"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/http/server"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/metrics"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/notify"
	"github.com/okdewit/ytdlp-docker/internal/ytdlp"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module(
	"subscription",
	fx.Provide(
		NewRepository,
		NewChannelRegistry,
		NewVideoRegistry,
		NewMetadataResolver,
		NewDownloader,
		NewParameterStore,
		NewUseCase,
		NewUseCaseInterface,
		NewEnrichPool,
		NewSyncWorker,
		subscriptionhttp.NewHandler,
	),
	fx.Invoke(
		attachEnqueuer,
		registerRoutes,
		runWorkers,
	),
)

func NewRepository(db *gorm.DB) deps.SubscriptionRepository {
	return postgres.NewRepository(db)
}

func NewChannelRegistry(channels channeldeps.ChannelUseCase) deps.ChannelRegistry {
	return channels
}

func NewVideoRegistry(videos videodeps.VideoUseCase) deps.VideoRegistry {
	return videos
}

func NewMetadataResolver(resolver *ytdlp.Resolver) deps.MetadataResolver {
	return resolver
}

func NewDownloader(downloader *ytdlp.Downloader) deps.Downloader {
	return downloader
}

func NewParameterStore(settings settingsdeps.SettingsUseCase) deps.ParameterStore {
	return settings
}

func NewUseCase(
	repo deps.SubscriptionRepository,
	channels deps.ChannelRegistry,
	videos deps.VideoRegistry,
	resolver deps.MetadataResolver,
	downloader deps.Downloader,
	params deps.ParameterStore,
	sink notify.Sink,
	m *metrics.Metrics,
	cfg *config.SyncConfig,
	logger zerolog.Logger,
) *business.UseCase {
	return business.NewUseCase(repo, channels, videos, resolver, downloader, params, sink, m, cfg.RetryUnknown, logger)
}

func NewUseCaseInterface(useCase *business.UseCase) deps.SubscriptionUseCase {
	return useCase
}

func NewEnrichPool(useCase deps.SubscriptionUseCase, cfg *config.EnrichConfig, logger zerolog.Logger) *workers.EnrichPool {
	return workers.NewEnrichPool(useCase, cfg.Workers, cfg.QueueSize, logger)
}

func NewSyncWorker(useCase deps.SubscriptionUseCase, cfg *config.SyncConfig, logger zerolog.Logger) *workers.SyncWorker {
	return workers.NewSyncWorker(useCase, cfg.Interval, logger)
}

// attachEnqueuer closes the construction cycle: the pool's workers call
// back into the use case, so the queue is attached after both exist.
func attachEnqueuer(useCase *business.UseCase, pool *workers.EnrichPool) {
	useCase.SetEnqueuer(pool)
}

func registerRoutes(handler *subscriptionhttp.Handler, srv *server.Server) {
	handler.RegisterRoutes(srv.Router)
}

func runWorkers(lc fx.Lifecycle, pool *workers.EnrichPool, syncWorker *workers.SyncWorker) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			pool.Start()
			syncWorker.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			syncWorker.Stop()
			pool.Stop()
			return nil
		},
	})
}
