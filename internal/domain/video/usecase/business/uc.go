package business

import (
	"context"
	"errors"

	channelerrors "github.com/okdewit/ytdlp-docker/internal/domain/channel/errors"
	"github.com/okdewit/ytdlp-docker/internal/domain/video/deps"
	"github.com/okdewit/ytdlp-docker/internal/domain/video/dto"
	"github.com/okdewit/ytdlp-docker/internal/domain/video/entities"
	verrors "github.com/okdewit/ytdlp-docker/internal/domain/video/errors"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/metrics"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/notify"
	"github.com/rs/zerolog"
)

type UseCase struct {
	repo           deps.VideoRepository
	channels       deps.ChannelRegistry
	scanner        deps.MediaScanner
	resolver       deps.MetadataResolver
	sink           notify.Sink
	metrics        *metrics.Metrics
	discoveryLimit int
	logger         zerolog.Logger
}

func NewUseCase(
	repo deps.VideoRepository,
	channels deps.ChannelRegistry,
	scanner deps.MediaScanner,
	resolver deps.MetadataResolver,
	sink notify.Sink,
	m *metrics.Metrics,
	discoveryLimit int,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		repo:           repo,
		channels:       channels,
		scanner:        scanner,
		resolver:       resolver,
		sink:           sink,
		metrics:        m,
		discoveryLimit: discoveryLimit,
		logger:         logger,
	}
}

// Register records a video in the registry. Registering an already known
// video ID resolves to the existing row, including when a concurrent
// insert wins the unique index.
func (u *UseCase) Register(ctx context.Context, videoID, title string, filesize *int64, channelRef *uint) (*entities.Video, error) {
	if videoID == "" {
		return nil, verrors.ErrInvalidVideoID
	}

	existing, err := u.repo.GetByVideoID(ctx, videoID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, verrors.ErrVideoNotFound) {
		return nil, err
	}

	if title == "" {
		title = videoID
	}

	video := &entities.Video{
		VideoID:   videoID,
		Title:     title,
		Filesize:  filesize,
		ChannelID: channelRef,
	}

	if err := u.repo.Create(ctx, video); err != nil {
		if errors.Is(err, verrors.ErrVideoExists) {
			return u.repo.GetByVideoID(ctx, videoID)
		}
		u.logger.Error().Err(err).
			Str("video_id", videoID).
			Msg("failed to register video")
		return nil, err
	}

	return video, nil
}

func (u *UseCase) IsDownloaded(videoID string) bool {
	return u.scanner.IsDownloaded(videoID)
}

func (u *UseCase) FindPath(videoID string) (string, bool) {
	return u.scanner.FindByVideoID(videoID)
}

func (u *UseCase) ListByChannel(ctx context.Context, channelID string) ([]dto.VideoView, error) {
	channel, err := u.channels.Get(ctx, channelID)
	if err != nil {
		if errors.Is(err, channelerrors.ErrChannelNotFound) {
			return nil, verrors.ErrChannelNotFound
		}
		return nil, err
	}

	videos, err := u.repo.ListByChannel(ctx, channel.ID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.VideoView, 0, len(videos))
	for _, v := range videos {
		views = append(views, dto.VideoView{
			VideoID:    v.VideoID,
			Title:      v.Title,
			Filesize:   v.Filesize,
			Downloaded: u.scanner.IsDownloaded(v.VideoID),
		})
	}

	return views, nil
}

// StatsForChannel aggregates registry counts against on-disk state.
// Videos without a reported filesize still count in Total and Downloaded
// but contribute nothing to the byte sums.
func (u *UseCase) StatsForChannel(ctx context.Context, channelID string) (*dto.Stats, error) {
	channel, err := u.channels.Get(ctx, channelID)
	if err != nil {
		if errors.Is(err, channelerrors.ErrChannelNotFound) {
			return nil, verrors.ErrChannelNotFound
		}
		return nil, err
	}

	videos, err := u.repo.ListByChannel(ctx, channel.ID)
	if err != nil {
		return nil, err
	}

	stats := &dto.Stats{Total: len(videos)}
	for _, v := range videos {
		downloaded := u.scanner.IsDownloaded(v.VideoID)
		if downloaded {
			stats.Downloaded++
		}
		if v.Filesize == nil {
			continue
		}
		stats.TotalBytes += *v.Filesize
		if downloaded {
			stats.DownloadedBytes += *v.Filesize
		}
	}
	stats.Pending = stats.Total - stats.Downloaded
	stats.DownloadedHuman = dto.HumanSize(stats.DownloadedBytes)
	stats.TotalHuman = dto.HumanSize(stats.TotalBytes)

	return stats, nil
}
