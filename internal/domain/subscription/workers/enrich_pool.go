package workers

import (
	"context"
	"sync"

	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/deps"
	"github.com/rs/zerolog"
)

// EnrichPool is the bounded worker pool that runs enrichment off the
// request path. A fixed number of workers drain a buffered queue; a full
// queue rejects the enqueue so the caller can fall back to inline work
// instead of the process growing goroutines without bound.
type EnrichPool struct {
	useCase deps.SubscriptionUseCase
	queue   chan string
	workers int
	logger  zerolog.Logger

	wg   sync.WaitGroup
	once sync.Once
}

func NewEnrichPool(useCase deps.SubscriptionUseCase, workers, queueSize int, logger zerolog.Logger) *EnrichPool {
	return &EnrichPool{
		useCase: useCase,
		queue:   make(chan string, queueSize),
		workers: workers,
		logger:  logger,
	}
}

// Enqueue hands a URL to the pool. Returns false when the queue is full.
func (p *EnrichPool) Enqueue(url string) bool {
	select {
	case p.queue <- url:
		return true
	default:
		return false
	}
}

// Start launches the workers.
func (p *EnrichPool) Start() {
	p.logger.Info().
		Int("workers", p.workers).
		Int("queue_size", cap(p.queue)).
		Msg("starting enrichment pool")

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop closes the queue and waits for in-flight enrichments to finish.
func (p *EnrichPool) Stop() {
	p.once.Do(func() {
		close(p.queue)
	})
	p.wg.Wait()
	p.logger.Info().Msg("enrichment pool stopped")
}

func (p *EnrichPool) worker(id int) {
	defer p.wg.Done()

	for url := range p.queue {
		// Enrichment reports its own failures; the pool only has to
		// keep draining.
		if err := p.useCase.Enrich(context.Background(), url); err != nil {
			p.logger.Debug().Err(err).
				Int("worker", id).
				Str("url", url).
				Msg("enrichment returned error")
		}
	}
}
