package business

import (
	"context"
	"errors"
	"strings"

	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/deps"
	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/dto"
	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/entities"
	serrors "github.com/okdewit/ytdlp-docker/internal/domain/subscription/errors"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/metrics"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/notify"
	"github.com/rs/zerolog"
)

type UseCase struct {
	repo       deps.SubscriptionRepository
	channels   deps.ChannelRegistry
	videos     deps.VideoRegistry
	resolver   deps.MetadataResolver
	downloader deps.Downloader
	params     deps.ParameterStore
	sink       notify.Sink
	metrics    *metrics.Metrics
	logger     zerolog.Logger

	// retryUnknown controls whether timer sweeps still pass
	// unknown-typed subscriptions to the external tool.
	retryUnknown bool

	// enqueuer is wired after construction; a nil enqueuer means adds
	// enrich inline.
	enqueuer deps.Enqueuer
}

func NewUseCase(
	repo deps.SubscriptionRepository,
	channels deps.ChannelRegistry,
	videos deps.VideoRegistry,
	resolver deps.MetadataResolver,
	downloader deps.Downloader,
	params deps.ParameterStore,
	sink notify.Sink,
	m *metrics.Metrics,
	retryUnknown bool,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		repo:         repo,
		channels:     channels,
		videos:       videos,
		resolver:     resolver,
		downloader:   downloader,
		params:       params,
		sink:         sink,
		metrics:      m,
		retryUnknown: retryUnknown,
		logger:       logger,
	}
}

// SetEnqueuer attaches the background enrichment queue. Constructed
// separately because the queue's workers call back into this use case.
func (u *UseCase) SetEnqueuer(e deps.Enqueuer) {
	u.enqueuer = e
}

// Add registers a subscription URL. The row is written synchronously in
// a provisional unclassified state, so a duplicate add racing the
// asynchronous enrichment resolves on the unique index.
func (u *UseCase) Add(ctx context.Context, url string) (*dto.AddResult, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, serrors.ErrInvalidURL
	}

	if _, err := u.repo.GetByURL(ctx, url); err == nil {
		return &dto.AddResult{URL: url, Existing: true}, nil
	} else if !errors.Is(err, serrors.ErrSubscriptionNotFound) {
		return nil, err
	}

	sub := &entities.Subscription{URL: url, Type: entities.TypeUnclassified}
	if err := u.repo.Create(ctx, sub); err != nil {
		if errors.Is(err, serrors.ErrSubscriptionExists) {
			return &dto.AddResult{URL: url, Existing: true}, nil
		}
		u.logger.Error().Err(err).Str("url", url).Msg("failed to create subscription")
		return nil, err
	}

	u.updateSubscriptionGauge(ctx)
	u.emit(url, dto.StageCreated, nil)

	if u.enqueuer != nil && u.enqueuer.Enqueue(url) {
		return &dto.AddResult{URL: url}, nil
	}

	// Queue full or absent: enrich on the caller's thread rather than
	// spawning an unbounded goroutine.
	u.logger.Warn().Str("url", url).Msg("enrichment queue unavailable, enriching inline")
	if err := u.Enrich(ctx, url); err != nil {
		u.logger.Warn().Err(err).Str("url", url).Msg("inline enrichment failed")
	}

	return &dto.AddResult{URL: url}, nil
}

// Remove deletes the subscription row. Channels and videos it referenced
// stay in the registry.
func (u *UseCase) Remove(ctx context.Context, url string) error {
	if err := u.repo.Delete(ctx, url); err != nil {
		return err
	}

	u.updateSubscriptionGauge(ctx)
	u.logger.Info().Str("url", url).Msg("subscription removed")
	return nil
}

// List returns every subscription with its channel identity and, where a
// channel is resolved, the channel's registry stats.
func (u *UseCase) List(ctx context.Context) ([]dto.SubscriptionView, error) {
	subs, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.SubscriptionView, 0, len(subs))
	for _, sub := range subs {
		view := dto.SubscriptionView{
			URL:       sub.URL,
			Type:      sub.Type,
			CreatedAt: sub.CreatedAt,
		}
		if sub.Channel != nil {
			view.ChannelID = sub.Channel.ChannelID
			view.ChannelName = sub.Channel.Name

			stats, err := u.videos.StatsForChannel(ctx, sub.Channel.ChannelID)
			if err != nil {
				u.logger.Warn().Err(err).
					Str("channel_id", sub.Channel.ChannelID).
					Msg("failed to derive channel stats")
			} else {
				view.Stats = stats
			}
		}
		views = append(views, view)
	}

	return views, nil
}

func (u *UseCase) updateSubscriptionGauge(ctx context.Context) {
	count, err := u.repo.Count(ctx)
	if err != nil {
		return
	}
	u.metrics.UpdateSubscriptions(count)
}

func (u *UseCase) emit(url, eventType string, extra map[string]string) {
	payload := map[string]string{"url": url}
	for k, v := range extra {
		payload[k] = v
	}
	u.sink.Emit(notify.NamespaceEnrichment, eventType, payload)
}
