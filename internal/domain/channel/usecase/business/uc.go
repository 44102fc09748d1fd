package business

import (
	"context"
	"errors"

	"github.com/okdewit/ytdlp-docker/internal/domain/channel/deps"
	"github.com/okdewit/ytdlp-docker/internal/domain/channel/entities"
	cherrors "github.com/okdewit/ytdlp-docker/internal/domain/channel/errors"
	"github.com/rs/zerolog"
)

type UseCase struct {
	repo    deps.ChannelRepository
	avatars deps.AvatarResolver
	logger  zerolog.Logger
}

func NewUseCase(
	repo deps.ChannelRepository,
	avatars deps.AvatarResolver,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		repo:    repo,
		avatars: avatars,
		logger:  logger,
	}
}

// Upsert registers the channel identity. First write wins: when the
// channel already exists the stored name is kept and the argument ignored.
// A racing insert that loses on the unique index resolves to the winner's
// row.
func (u *UseCase) Upsert(ctx context.Context, channelID, name string) (*entities.Channel, error) {
	if channelID == "" {
		return nil, cherrors.ErrInvalidChannelID
	}

	existing, err := u.repo.GetByChannelID(ctx, channelID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, cherrors.ErrChannelNotFound) {
		u.logger.Error().Err(err).
			Str("channel_id", channelID).
			Msg("failed to look up channel")
		return nil, err
	}

	channel := &entities.Channel{
		ChannelID: channelID,
		Name:      name,
	}

	if err := u.repo.Create(ctx, channel); err != nil {
		if errors.Is(err, cherrors.ErrChannelAlreadyExists) {
			return u.repo.GetByChannelID(ctx, channelID)
		}
		u.logger.Error().Err(err).
			Str("channel_id", channelID).
			Msg("failed to create channel")
		return nil, err
	}

	u.logger.Info().
		Str("channel_id", channelID).
		Str("name", name).
		Msg("channel registered")

	return channel, nil
}

func (u *UseCase) Get(ctx context.Context, channelID string) (*entities.Channel, error) {
	if channelID == "" {
		return nil, cherrors.ErrInvalidChannelID
	}
	return u.repo.GetByChannelID(ctx, channelID)
}

func (u *UseCase) List(ctx context.Context) ([]entities.Channel, error) {
	return u.repo.List(ctx)
}

// EnsureAvatar resolves the channel avatar. The resolver short-circuits
// when a poster already exists on disk, so calling this on every
// enrichment is cheap.
func (u *UseCase) EnsureAvatar(ctx context.Context, channelID, name string) {
	if channelID == "" || name == "" {
		return
	}

	if _, err := u.avatars.Resolve(ctx, channelID, name); err != nil {
		u.logger.Warn().Err(err).
			Str("channel_id", channelID).
			Msg("avatar resolution failed")
	}
}
