package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/ecoleta/internal/metrics"
	"github.com/UnknownOlympus/ecoleta/internal/models"
	"github.com/UnknownOlympus/ecoleta/internal/repository"
	"github.com/UnknownOlympus/ecoleta/internal/upstream"
)

const outboxBatchLimit = 100

// OutboxService redelivers queued submissions to the points API.
type OutboxService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Outbox storage
	points       PointCreator         // Points API client
	metrics      *metrics.Metrics     // Metrics for tracking redeliveries
	numWorkers   int                  // Number of concurrent redelivery workers
	pollInterval time.Duration        // Interval between redelivery rounds
}

// NewOutboxService creates a new instance of OutboxService.
func NewOutboxService(
	log *slog.Logger,
	repo repository.Interface,
	points PointCreator,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
) *OutboxService {
	return &OutboxService{
		log:          log,
		repo:         repo,
		points:       points,
		metrics:      metrics,
		numWorkers:   numWorkers,
		pollInterval: pollInterval,
	}
}

// Run periodically redelivers pending submissions until ctx is canceled.
func (os *OutboxService) Run(ctx context.Context) {
	ticker := time.NewTicker(os.pollInterval)
	defer ticker.Stop()

	os.log.InfoContext(ctx, "Outbox service started...")

	for {
		select {
		case <-ctx.Done():
			os.log.InfoContext(ctx, "Outbox service stopped.")
			return
		case <-ticker.C:
			os.log.DebugContext(ctx, "Polling outbox for pending submissions...")
			os.processBatch(ctx)
		}
	}
}

// processBatch fetches pending submissions and redelivers them with a worker pool.
func (os *OutboxService) processBatch(ctx context.Context) {
	entries, err := os.repo.FetchPending(ctx, outboxBatchLimit)
	if err != nil {
		os.log.ErrorContext(ctx, "Failed to fetch pending submissions", "error", err)
		return
	}
	if len(entries) == 0 {
		os.log.DebugContext(ctx, "No pending submissions.")
		return
	}

	os.log.InfoContext(ctx, "Found pending submissions. Starting worker pool.",
		"jobs", len(entries), "num_workers", os.numWorkers)

	jobs := make(chan models.OutboxEntry, len(entries))
	var wgr sync.WaitGroup

	for i := 1; i <= os.numWorkers; i++ {
		wgr.Add(1)
		go os.worker(ctx, i, &wgr, jobs)
	}

	for _, entry := range entries {
		jobs <- entry
	}
	close(jobs)

	wgr.Wait()
	os.log.InfoContext(ctx, "Redelivery batch finished")
}

func (os *OutboxService) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.OutboxEntry) {
	defer wg.Done()
	for entry := range jobs {
		os.metrics.ActiveWorkers.Inc()
		os.redeliver(ctx, idx, entry)
		os.metrics.ActiveWorkers.Dec()
	}
}

func (os *OutboxService) redeliver(ctx context.Context, idx int, entry models.OutboxEntry) {
	os.log.DebugContext(ctx, "Redelivering submission", "worker", idx, "entry", entry.ID, "attempts", entry.Attempts)

	start := time.Now()
	pointID, err := os.points.Create(ctx, entry.Submission)
	os.metrics.UpstreamSeconds.WithLabelValues(metrics.UpstreamPoints).Observe(time.Since(start).Seconds())

	if err != nil {
		os.log.ErrorContext(ctx, "Failed to redeliver submission", "worker", idx, "entry", entry.ID, "error", err)
		os.metrics.UpstreamErrors.WithLabelValues(metrics.UpstreamPoints).Inc()

		// The point may exist already when the failure came after the request was sent.
		if !upstream.IsRetryable(err) {
			if err = os.repo.Abandon(ctx, entry.ID, err.Error()); err != nil {
				os.log.ErrorContext(ctx, "Could not abandon submission",
					"worker", idx, "entry", entry.ID, "error", err)
			}
			return
		}

		if err = os.repo.IncrementFailureCount(ctx, entry.ID, err.Error()); err != nil {
			os.log.ErrorContext(ctx, "Could not update failure count for submission",
				"worker", idx, "entry", entry.ID, "error", err)
		}
		return
	}

	os.metrics.Submissions.WithLabelValues(statusRedelivered).Inc()

	if err = os.repo.MarkDelivered(ctx, entry.ID, pointID); err != nil {
		os.log.ErrorContext(ctx, "Failed to mark submission as delivered",
			"worker", idx, "entry", entry.ID, "error", err)
		return
	}

	os.log.InfoContext(ctx, "Queued submission delivered", "worker", idx, "entry", entry.ID, "point", pointID)
}
