package deps

import (
	"context"

	channelentities "github.com/okdewit/ytdlp-docker/internal/domain/channel/entities"
	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/dto"
	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/entities"
	videodto "github.com/okdewit/ytdlp-docker/internal/domain/video/dto"
	videoentities "github.com/okdewit/ytdlp-docker/internal/domain/video/entities"
	"github.com/okdewit/ytdlp-docker/internal/ytdlp"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entities.Subscription) error
	GetByURL(ctx context.Context, url string) (*entities.Subscription, error)
	List(ctx context.Context) ([]entities.Subscription, error)
	Delete(ctx context.Context, url string) error
	UpdateTypeAndChannel(ctx context.Context, url, subType string, channelRef *uint) error
	Count(ctx context.Context) (int, error)
}

// ChannelRegistry is the slice of the channel domain enrichment needs.
type ChannelRegistry interface {
	Upsert(ctx context.Context, channelID, name string) (*channelentities.Channel, error)
	EnsureAvatar(ctx context.Context, channelID, name string)
}

// VideoRegistry is the slice of the video domain enrichment needs.
type VideoRegistry interface {
	Register(ctx context.Context, videoID, title string, filesize *int64, channelRef *uint) (*videoentities.Video, error)
	Discover(ctx context.Context, channelID string) (*videodto.DiscoveryResult, error)
	StatsForChannel(ctx context.Context, channelID string) (*videodto.Stats, error)
}

// MetadataResolver fetches flat metadata for arbitrary URLs.
type MetadataResolver interface {
	Fetch(ctx context.Context, url string) (*ytdlp.Metadata, error)
}

// Downloader runs the external tool's fetch/update step.
type Downloader interface {
	Download(ctx context.Context, parameters, url string) error
}

// ParameterStore exposes the user-editable download parameter string.
type ParameterStore interface {
	Parameters(ctx context.Context) (string, error)
}

// Enqueuer hands a URL to the background enrichment pool. ok is false
// when the queue is full; the caller falls back to inline enrichment.
type Enqueuer interface {
	Enqueue(url string) bool
}

type SubscriptionUseCase interface {
	// Add registers a URL. Re-adding an existing URL is a no-op. New rows
	// are provisional; enrichment runs off the request path.
	Add(ctx context.Context, url string) (*dto.AddResult, error)

	// Remove deletes a subscription. The owning channel and its videos
	// stay in the registry.
	Remove(ctx context.Context, url string) error

	// List returns all subscriptions with derived stats where available.
	List(ctx context.Context) ([]dto.SubscriptionView, error)

	// Enrich runs the classification pipeline for one subscription URL.
	Enrich(ctx context.Context, url string) error

	// Sync runs the download step for one subscription immediately.
	Sync(ctx context.Context, url string) error

	// SyncAll sweeps every syncable subscription sequentially.
	SyncAll(ctx context.Context) (*dto.SyncReport, error)
}
