package workers

import (
	"context"
	"sync"
	"time"

	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/deps"
	"github.com/rs/zerolog"
)

// SyncWorker triggers a full sequential sweep of all subscriptions on a
// fixed interval.
type SyncWorker struct {
	useCase  deps.SubscriptionUseCase
	interval time.Duration
	logger   zerolog.Logger

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func NewSyncWorker(useCase deps.SubscriptionUseCase, interval time.Duration, logger zerolog.Logger) *SyncWorker {
	return &SyncWorker{
		useCase:  useCase,
		interval: interval,
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// Start launches the sweep loop.
func (w *SyncWorker) Start() {
	w.logger.Info().
		Dur("interval", w.interval).
		Msg("starting sync worker")

	w.wg.Add(1)
	go w.run()
}

// Stop signals the loop and waits for a running sweep to finish.
func (w *SyncWorker) Stop() {
	w.once.Do(func() {
		close(w.done)
	})
	w.wg.Wait()
	w.logger.Info().Msg("sync worker stopped")
}

func (w *SyncWorker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			if _, err := w.useCase.SyncAll(context.Background()); err != nil {
				w.logger.Error().Err(err).Msg("sync sweep failed")
			}
		}
	}
}
