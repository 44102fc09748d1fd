package deps

import (
	"context"

	"github.com/okdewit/ytdlp-docker/internal/domain/channel/entities"
)

type ChannelRepository interface {
	Create(ctx context.Context, channel *entities.Channel) error
	GetByChannelID(ctx context.Context, channelID string) (*entities.Channel, error)
	List(ctx context.Context) ([]entities.Channel, error)
}

// AvatarResolver fetches a channel's avatar image into the data root.
type AvatarResolver interface {
	Resolve(ctx context.Context, channelID, name string) (string, error)
}

type ChannelUseCase interface {
	// Upsert registers a channel identity. An existing row wins: the name
	// argument is ignored when the channel is already known.
	Upsert(ctx context.Context, channelID, name string) (*entities.Channel, error)

	// Get looks up a channel by external ID.
	Get(ctx context.Context, channelID string) (*entities.Channel, error)

	// List returns all known channels.
	List(ctx context.Context) ([]entities.Channel, error)

	// EnsureAvatar resolves the channel avatar best-effort. Failures are
	// logged, never returned.
	EnsureAvatar(ctx context.Context, channelID, name string)
}
