package deps

import (
	"context"

	channelentities "github.com/okdewit/ytdlp-docker/internal/domain/channel/entities"
	"github.com/okdewit/ytdlp-docker/internal/domain/video/dto"
	"github.com/okdewit/ytdlp-docker/internal/domain/video/entities"
	"github.com/okdewit/ytdlp-docker/internal/ytdlp"
)

type VideoRepository interface {
	Create(ctx context.Context, video *entities.Video) error
	GetByVideoID(ctx context.Context, videoID string) (*entities.Video, error)
	ListByChannel(ctx context.Context, channelID uint) ([]entities.Video, error)
	ExistsByVideoID(ctx context.Context, videoID string) (bool, error)
}

// ChannelRegistry is the slice of the channel domain discovery needs.
type ChannelRegistry interface {
	Get(ctx context.Context, channelID string) (*channelentities.Channel, error)
}

// MediaScanner answers downloaded-state questions from the filesystem.
type MediaScanner interface {
	FindByVideoID(videoID string) (string, bool)
	IsDownloaded(videoID string) bool
}

// MetadataResolver is the slice of the yt-dlp wrapper discovery needs.
type MetadataResolver interface {
	FetchVideo(ctx context.Context, videoID string) (*ytdlp.Metadata, error)
	FetchChannelEntries(ctx context.Context, channelID string) ([]ytdlp.Entry, error)
}

type VideoUseCase interface {
	// Register records a video. Registering a known video ID is a no-op
	// returning the existing row.
	Register(ctx context.Context, videoID, title string, filesize *int64, channelRef *uint) (*entities.Video, error)

	// IsDownloaded reports whether the video's media file exists on disk.
	IsDownloaded(videoID string) bool

	// FindPath returns the on-disk media path for a video, if any.
	FindPath(videoID string) (string, bool)

	// ListByChannel returns a channel's registered videos with their
	// downloaded state.
	ListByChannel(ctx context.Context, channelID string) ([]dto.VideoView, error)

	// StatsForChannel aggregates registry counts and byte totals for a
	// channel. Videos with unknown filesize count toward totals but not
	// toward byte sums.
	StatsForChannel(ctx context.Context, channelID string) (*dto.Stats, error)

	// Discover lists the channel's videos tab and registers every entry
	// not yet known. The channel must already be registered.
	Discover(ctx context.Context, channelID string) (*dto.DiscoveryResult, error)
}
