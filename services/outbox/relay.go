package outbox

import (
	"context"
	"time"

	outboxRepo "furcare/database/repository/outbox"
	"furcare/utils"

	"go.uber.org/zap"
)

// Relay drains the outbox: it leases pending events, dispatches them and records the outcome.
// Failures stay in the outbox, parked for a growing backoff, and are retried on later polls
// until MaxAttempts.
type Relay struct {
	Repo        outboxRepo.OutboxRepository
	Dispatcher  Dispatcher
	PollEvery   time.Duration
	BatchSize   int
	MaxAttempts int
	Lease       time.Duration
	MaxBackoff  time.Duration
	Now         func() time.Time
}

func NewRelay(repo outboxRepo.OutboxRepository, dispatcher Dispatcher, pollEvery time.Duration, batchSize, maxAttempts int) *Relay {
	return &Relay{
		Repo:        repo,
		Dispatcher:  dispatcher,
		PollEvery:   pollEvery,
		BatchSize:   batchSize,
		MaxAttempts: maxAttempts,
		Lease:       30 * time.Second,
		MaxBackoff:  5 * time.Minute,
	}
}

func (r *Relay) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// retryAt parks an event that failed its attempt-th dispatch for attempt poll intervals.
func (r *Relay) retryAt(attempt int) time.Time {
	wait := time.Duration(attempt) * r.PollEvery
	if r.MaxBackoff > 0 && wait > r.MaxBackoff {
		wait = r.MaxBackoff
	}
	return r.now().Add(wait)
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	logger := utils.GetLogger()
	logger.Info("Outbox relay started",
		zap.Duration("pollEvery", r.PollEvery), zap.Int("batchSize", r.BatchSize))

	ticker := time.NewTicker(r.PollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Outbox relay stopped")
			return
		case <-ticker.C:
			// Keep draining while full, clean batches come back. A failing dispatcher waits
			// for the next tick.
			for {
				n, failed, err := r.processBatch(ctx)
				if err != nil {
					logger.Error("Outbox poll failed", zap.Error(err))
					break
				}
				if n < r.BatchSize || failed > 0 || ctx.Err() != nil {
					break
				}
			}
		}
	}
}

// ProcessBatch handles at most one batch and returns how many events it claimed.
func (r *Relay) ProcessBatch(ctx context.Context) (int, error) {
	n, _, err := r.processBatch(ctx)
	return n, err
}

func (r *Relay) processBatch(ctx context.Context) (claimed, failed int, err error) {
	logger := utils.GetLogger()

	events, err := r.Repo.ClaimPending(ctx, r.BatchSize, r.Lease)
	if err != nil && len(events) == 0 {
		return 0, 0, err
	}

	for _, ev := range events {
		if dispatchErr := r.Dispatcher.Dispatch(ctx, ev); dispatchErr != nil {
			logger.Warn("Outbox dispatch failed",
				zap.String("eventID", ev.ID),
				zap.String("eventType", ev.EventType),
				zap.Int("attempt", ev.Attempts+1),
				zap.Error(dispatchErr))
			failed++
			if err := r.Repo.MarkAttemptFailed(ctx, ev.ID, dispatchErr, r.MaxAttempts, r.retryAt(ev.Attempts+1)); err != nil {
				logger.Error("Failed to record outbox failure", zap.String("eventID", ev.ID), zap.Error(err))
			}
			if ev.Attempts+1 >= r.MaxAttempts {
				logger.Error("Outbox event given up",
					zap.String("eventID", ev.ID), zap.String("aggregateID", ev.AggregateID))
			}
			continue
		}
		if err := r.Repo.MarkDispatched(ctx, ev.ID); err != nil {
			logger.Error("Failed to mark outbox event dispatched", zap.String("eventID", ev.ID), zap.Error(err))
		}
	}
	return len(events), failed, err
}
