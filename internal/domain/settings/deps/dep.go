package deps

import (
	"context"

	"github.com/okdewit/ytdlp-docker/internal/domain/settings/entities"
)

type SettingsRepository interface {
	Get(ctx context.Context, key string) (*entities.Setting, error)
	Set(ctx context.Context, key, value string) error
}

type SettingsUseCase interface {
	// Parameters returns the user-editable yt-dlp parameter string.
	Parameters(ctx context.Context) (string, error)

	// SetParameters replaces the parameter string.
	SetParameters(ctx context.Context, value string) error
}
