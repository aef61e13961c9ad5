package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/nhfg-leads/internal/entity"
)

const StaleReason = "no terminal status recorded"

// StaleIngestionWorker fails audit rows left pending, which happens when the
// process dies between the audit write and the lead insert.
type StaleIngestionWorker struct {
	repo         entity.IntegrationLogRepositoryInterface
	staleAfter   time.Duration
	tickInterval time.Duration
	logger       *zap.Logger
}

func NewStaleIngestionWorker(repo entity.IntegrationLogRepositoryInterface, staleAfter, tickInterval time.Duration, logger *zap.Logger) *StaleIngestionWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaleIngestionWorker{
		repo:         repo,
		staleAfter:   staleAfter,
		tickInterval: tickInterval,
		logger:       logger,
	}
}

// Start sweeps once immediately and then on every tick until ctx is done.
func (w *StaleIngestionWorker) Start(ctx context.Context) {
	w.logger.Info("stale ingestion worker started",
		zap.Duration("stale_after", w.staleAfter),
		zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stale ingestion worker stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep returns the ids it marked failed.
func (w *StaleIngestionWorker) Sweep(ctx context.Context) []string {
	ids, err := w.repo.FailStalePending(ctx, w.staleAfter, StaleReason)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("stale ingestion sweep failed", zap.Error(err))
		}
		return nil
	}

	if len(ids) > 0 {
		w.logger.Warn("marked stale ingestions as failed",
			zap.Int("count", len(ids)),
			zap.Strings("integration_log_ids", ids))
	}
	return ids
}
