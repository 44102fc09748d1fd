package settings

import (
	settingshttp "github.com/okdewit/ytdlp-docker/internal/domain/settings/delivery/http"
	"github.com/okdewit/ytdlp-docker/internal/domain/settings/deps"
	"github.com/okdewit/ytdlp-docker/internal/domain/settings/repository/postgres"
	"github.com/okdewit/ytdlp-docker/internal/domain/settings/usecase/business"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/http/server"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module(
	"settings",
	fx.Provide(
		NewRepository,
		NewUseCase,
		settingshttp.NewHandler,
	),
	fx.Invoke(registerRoutes),
)

func NewRepository(db *gorm.DB) deps.SettingsRepository {
	return postgres.NewRepository(db)
}

func NewUseCase(repo deps.SettingsRepository, logger zerolog.Logger) deps.SettingsUseCase {
	return business.NewUseCase(repo, logger)
}

func registerRoutes(handler *settingshttp.Handler, srv *server.Server) {
	handler.RegisterRoutes(srv.Router)
}
