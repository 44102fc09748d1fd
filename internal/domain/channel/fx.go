package channel

import (
	"github.com/okdewit/ytdlp-docker/internal/domain/channel/deps"
	"github.com/okdewit/ytdlp-docker/internal/domain/channel/repository/postgres"
	"github.com/okdewit/ytdlp-docker/internal/domain/channel/usecase/business"
	"github.com/okdewit/ytdlp-docker/internal/ytdlp"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module(
	"channel",
	fx.Provide(
		NewRepository,
		NewAvatarResolver,
		NewUseCase,
	),
)

func NewRepository(db *gorm.DB) deps.ChannelRepository {
	return postgres.NewRepository(db)
}

func NewAvatarResolver(resolver *ytdlp.AvatarResolver) deps.AvatarResolver {
	return resolver
}

func NewUseCase(
	repo deps.ChannelRepository,
	avatars deps.AvatarResolver,
	logger zerolog.Logger,
) deps.ChannelUseCase {
	return business.NewUseCase(repo, avatars, logger)
}
