package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/agent-onboarding/internal/service"
)

// BatchWorker finalizes executing batches off the request path. It implements
// service.CompletionScheduler: Execute enqueues, the worker waits out the
// configured delay and then runs the fan-out.
type BatchWorker struct {
	batches *service.BatchService
	delay   time.Duration
	queue   chan string
	logger  *zap.Logger
}

// NewBatchWorker constructs the worker.
func NewBatchWorker(batches *service.BatchService, delay time.Duration, queueSize int, logger *zap.Logger) *BatchWorker {
	if queueSize <= 0 {
		queueSize = 64
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchWorker{
		batches: batches,
		delay:   delay,
		queue:   make(chan string, queueSize),
		logger:  logger,
	}
}

// Schedule enqueues a batch for deferred completion.
func (w *BatchWorker) Schedule(batchID string) {
	select {
	case w.queue <- batchID:
	default:
		w.logger.Warn("batch queue full", zap.String("batch_id", batchID))
	}
}

// Start launches the worker loop. It stops when ctx is cancelled; batches
// left in processing are not rolled back.
func (w *BatchWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *BatchWorker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case batchID := <-w.queue:
			if !w.wait(ctx) {
				return
			}
			if err := w.batches.CompleteBatch(ctx, batchID); err != nil {
				w.logger.Warn("batch completion failed", zap.String("batch_id", batchID), zap.Error(err))
			}
		}
	}
}

func (w *BatchWorker) wait(ctx context.Context) bool {
	if w.delay <= 0 {
		return true
	}
	timer := time.NewTimer(w.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
