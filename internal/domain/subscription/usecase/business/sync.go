package business

import (
	"context"
	"strconv"
	"time"

	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/dto"
	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/entities"
	serrors "github.com/okdewit/ytdlp-docker/internal/domain/subscription/errors"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/notify"
)

// Sync runs the download step for one subscription immediately. Manual
// syncs accept any classified subscription, including unknown ones the
// timer would skip; only provisional unclassified rows are refused.
func (u *UseCase) Sync(ctx context.Context, url string) error {
	sub, err := u.repo.GetByURL(ctx, url)
	if err != nil {
		return err
	}
	if sub.Type == entities.TypeUnclassified {
		return serrors.ErrNotSyncable
	}

	parameters, err := u.params.Parameters(ctx)
	if err != nil {
		u.logger.Warn().Err(err).Msg("failed to load download parameters, using none")
		parameters = ""
	}

	return u.syncOne(ctx, parameters, sub.URL)
}

// SyncAll sweeps all subscriptions sequentially. Unclassified rows are
// always skipped; unknown-typed rows are skipped unless retry is
// enabled. A single failure is recorded and never stops the sweep.
func (u *UseCase) SyncAll(ctx context.Context) (*dto.SyncReport, error) {
	started := time.Now()

	subs, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	u.metrics.UpdateSubscriptions(len(subs))

	parameters, err := u.params.Parameters(ctx)
	if err != nil {
		u.logger.Warn().Err(err).Msg("failed to load download parameters, using none")
		parameters = ""
	}

	report := &dto.SyncReport{Failures: make(map[string]string)}
	u.sink.Emit(notify.NamespaceSync, "sweep_started", map[string]string{
		"subscriptions": strconv.Itoa(len(subs)),
	})

	for _, sub := range subs {
		if !u.sweepable(sub.Type) {
			report.Skipped++
			continue
		}

		report.Attempted++
		if err := u.syncOne(ctx, parameters, sub.URL); err != nil {
			report.Failures[sub.URL] = err.Error()
			continue
		}
		report.Succeeded++
	}

	u.metrics.RecordSyncSweep(time.Since(started).Seconds())
	u.sink.Emit(notify.NamespaceSync, "sweep_finished", map[string]string{
		"attempted": strconv.Itoa(report.Attempted),
		"succeeded": strconv.Itoa(report.Succeeded),
		"skipped":   strconv.Itoa(report.Skipped),
		"failed":    strconv.Itoa(len(report.Failures)),
	})
	u.logger.Info().
		Int("attempted", report.Attempted).
		Int("succeeded", report.Succeeded).
		Int("skipped", report.Skipped).
		Int("failed", len(report.Failures)).
		Msg("sync sweep finished")

	return report, nil
}

func (u *UseCase) sweepable(subType string) bool {
	switch subType {
	case entities.TypeUnclassified:
		return false
	case entities.TypeUnknown:
		return u.retryUnknown
	}
	return true
}

func (u *UseCase) syncOne(ctx context.Context, parameters, url string) error {
	u.sink.Emit(notify.NamespaceSync, "started", map[string]string{"url": url})

	if err := u.downloader.Download(ctx, parameters, url); err != nil {
		u.metrics.RecordSyncFailure("sync_failure")
		u.logger.Error().Err(err).Str("url", url).Msg("sync failed")
		u.sink.Emit(notify.NamespaceSync, "failed", map[string]string{
			"url":     url,
			"message": err.Error(),
		})
		return err
	}

	u.sink.Emit(notify.NamespaceSync, "finished", map[string]string{"url": url})
	return nil
}
