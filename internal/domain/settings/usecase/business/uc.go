package business

import (
	"context"
	"errors"

	"github.com/okdewit/ytdlp-docker/internal/domain/settings/deps"
	"github.com/okdewit/ytdlp-docker/internal/domain/settings/entities"
	seterrors "github.com/okdewit/ytdlp-docker/internal/domain/settings/errors"
	"github.com/rs/zerolog"
)

type UseCase struct {
	repo   deps.SettingsRepository
	logger zerolog.Logger
}

func NewUseCase(repo deps.SettingsRepository, logger zerolog.Logger) *UseCase {
	return &UseCase{
		repo:   repo,
		logger: logger,
	}
}

func (u *UseCase) Parameters(ctx context.Context) (string, error) {
	setting, err := u.repo.Get(ctx, entities.ParametersKey)
	if err != nil {
		if errors.Is(err, seterrors.ErrSettingNotFound) {
			return "", nil
		}
		u.logger.Error().Err(err).Msg("failed to load parameters")
		return "", err
	}
	return setting.Value, nil
}

func (u *UseCase) SetParameters(ctx context.Context, value string) error {
	if err := u.repo.Set(ctx, entities.ParametersKey, value); err != nil {
		u.logger.Error().Err(err).Msg("failed to store parameters")
		return err
	}

	u.logger.Info().Msg("parameters updated")
	return nil
}
