package business

import (
	"context"
	"errors"
	"strconv"
	"time"

	channelerrors "github.com/okdewit/ytdlp-docker/internal/domain/channel/errors"
	"github.com/okdewit/ytdlp-docker/internal/domain/video/dto"
	verrors "github.com/okdewit/ytdlp-docker/internal/domain/video/errors"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/notify"
	"github.com/okdewit/ytdlp-docker/internal/ytdlp"
)

// Discover lists the channel's videos tab and registers every entry not
// yet in the registry. Already-registered entries are skipped without any
// network call. A failed per-entry detail fetch degrades to the flat
// listing data instead of failing the run; only a failed listing aborts.
func (u *UseCase) Discover(ctx context.Context, channelID string) (*dto.DiscoveryResult, error) {
	started := time.Now()

	channel, err := u.channels.Get(ctx, channelID)
	if err != nil {
		if errors.Is(err, channelerrors.ErrChannelNotFound) {
			return nil, verrors.ErrChannelNotFound
		}
		return nil, err
	}

	entries, err := u.resolver.FetchChannelEntries(ctx, channelID)
	if err != nil {
		u.logger.Error().Err(err).
			Str("channel_id", channelID).
			Msg("channel listing failed")
		u.emitDiscovery(channelID, "listing_failed", nil)
		return nil, verrors.ErrListingFailed
	}

	result := &dto.DiscoveryResult{ChannelID: channelID, Listed: len(entries)}
	if len(entries) > u.discoveryLimit {
		entries = entries[:u.discoveryLimit]
	}

	u.emitDiscovery(channelID, "started", map[string]string{
		"listed": strconv.Itoa(result.Listed),
	})

	for _, entry := range entries {
		if entry.ID == "" {
			continue
		}

		known, err := u.repo.ExistsByVideoID(ctx, entry.ID)
		if err != nil {
			result.Failed++
			continue
		}
		if known {
			result.Skipped++
			continue
		}

		if err := u.registerEntry(ctx, entry, channel.ID); err != nil {
			u.logger.Warn().Err(err).
				Str("video_id", entry.ID).
				Str("channel_id", channelID).
				Msg("failed to register discovered video")
			result.Failed++
			continue
		}
		result.Registered++
	}

	u.metrics.RecordDiscovery(result.Registered, time.Since(started).Seconds())
	u.emitDiscovery(channelID, "finished", map[string]string{
		"registered": strconv.Itoa(result.Registered),
		"skipped":    strconv.Itoa(result.Skipped),
		"failed":     strconv.Itoa(result.Failed),
	})

	u.logger.Info().
		Str("channel_id", channelID).
		Int("listed", result.Listed).
		Int("registered", result.Registered).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("discovery run finished")

	return result, nil
}

// registerEntry fetches per-video detail for the filesize and falls back
// to the flat listing fields when the detail call fails.
func (u *UseCase) registerEntry(ctx context.Context, entry ytdlp.Entry, channelRef uint) error {
	title := entry.Title
	var filesize *int64

	if md, err := u.resolver.FetchVideo(ctx, entry.ID); err == nil {
		if md.Title != "" {
			title = md.Title
		}
		filesize = md.BestFilesize()
	} else {
		u.logger.Debug().Err(err).
			Str("video_id", entry.ID).
			Msg("detail fetch failed, registering from flat entry")
	}

	_, err := u.Register(ctx, entry.ID, title, filesize, &channelRef)
	return err
}

func (u *UseCase) emitDiscovery(channelID, eventType string, extra map[string]string) {
	payload := map[string]string{"channel_id": channelID}
	for k, v := range extra {
		payload[k] = v
	}
	u.sink.Emit(notify.NamespaceDiscovery, eventType, payload)
}
