package business

import (
	"context"
	"fmt"
	"time"

	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/dto"
	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/entities"
	serrors "github.com/okdewit/ytdlp-docker/internal/domain/subscription/errors"
	"github.com/okdewit/ytdlp-docker/internal/ytdlp"
)

// Enrich runs the one-time classification pipeline for a subscription:
// resolve metadata, classify, resolve the owning channel, register the
// content the URL implies, then persist the resolved type. Every stage
// emits a progress notification; any stage failure parks the
// subscription in the terminal unknown state and never propagates past
// this method's return value.
func (u *UseCase) Enrich(ctx context.Context, url string) error {
	started := time.Now()

	if _, err := u.repo.GetByURL(ctx, url); err != nil {
		return err
	}

	md, err := u.resolver.Fetch(ctx, url)
	if err != nil {
		return u.fail(ctx, url, "resolution_failure", fmt.Errorf("metadata resolution failed: %w", err))
	}
	u.emit(url, dto.StageMetadataFetched, nil)

	kind := ytdlp.Classify(md)
	if kind == ytdlp.KindUnknown {
		return u.fail(ctx, url, "classification_failure", serrors.ErrClassificationFailed)
	}
	u.emit(url, dto.StageTyped, map[string]string{"type": string(kind)})

	identity := ytdlp.ChannelInfo(md)
	var channelRef *uint
	if identity.ID != "" {
		channel, err := u.channels.Upsert(ctx, identity.ID, identity.Name)
		if err != nil {
			return u.fail(ctx, url, "registry_failure", fmt.Errorf("channel upsert failed: %w", err))
		}
		channelRef = &channel.ID

		u.channels.EnsureAvatar(ctx, identity.ID, identity.Name)
		u.emit(url, dto.StageChannelResolved, map[string]string{
			"channel_id":   identity.ID,
			"channel_name": identity.Name,
		})
	}

	switch kind {
	case ytdlp.KindVideo:
		if _, err := u.videos.Register(ctx, md.ID, md.Title, md.BestFilesize(), channelRef); err != nil {
			return u.fail(ctx, url, "registry_failure", fmt.Errorf("video registration failed: %w", err))
		}

	case ytdlp.KindChannel:
		if identity.ID != "" {
			if _, err := u.videos.Discover(ctx, identity.ID); err != nil {
				return u.fail(ctx, url, "resolution_failure", fmt.Errorf("discovery failed: %w", err))
			}
		}

	case ytdlp.KindPlaylist:
		// Classified only; member registration is deferred to sync.
	}
	u.emit(url, dto.StageContentRegistered, nil)

	if err := u.repo.UpdateTypeAndChannel(ctx, url, string(kind), channelRef); err != nil {
		return u.fail(ctx, url, "registry_failure", fmt.Errorf("subscription update failed: %w", err))
	}

	u.metrics.RecordEnrichment(time.Since(started).Seconds())
	u.emit(url, dto.StageComplete, map[string]string{"type": string(kind)})
	u.logger.Info().
		Str("url", url).
		Str("type", string(kind)).
		Msg("enrichment complete")

	return nil
}

// fail parks the subscription in the terminal unknown state and reports
// the error to the user through the notification sink.
func (u *UseCase) fail(ctx context.Context, url, errorType string, cause error) error {
	u.metrics.RecordEnrichmentError(errorType)
	u.logger.Error().Err(cause).
		Str("url", url).
		Str("error_type", errorType).
		Msg("enrichment failed")

	if err := u.repo.UpdateTypeAndChannel(ctx, url, entities.TypeUnknown, nil); err != nil {
		u.logger.Error().Err(err).Str("url", url).Msg("failed to mark subscription unknown")
	}

	u.emit(url, dto.StageFailed, map[string]string{
		"error_type": errorType,
		"message":    cause.Error(),
	})

	return cause
}
