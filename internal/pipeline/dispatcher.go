package pipeline

import (
	"context"
	"errors"
	"sync"

	"dealdesk-backend/internal/queue"
	"dealdesk-backend/internal/shared/telemetry"
)

// Dispatcher pulls queued deals and runs the pipeline with a bounded number
// of concurrent workers.
type Dispatcher struct {
	Queue   queue.Receiver
	Runner  *Runner
	Workers int

	wg sync.WaitGroup
}

// Start launches the worker pool. Workers exit when ctx is canceled; Wait
// blocks until they have drained.
func (d *Dispatcher) Start(ctx context.Context) {
	workers := d.Workers
	if workers <= 0 {
		workers = 2
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(worker int) {
			defer d.wg.Done()
			d.loop(ctx, worker)
		}(i)
	}
}

// Wait blocks until all workers have exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) loop(ctx context.Context, worker int) {
	for {
		msg, err := d.Queue.Receive(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			telemetry.Error("dispatcher.receive", map[string]any{
				"worker": worker,
				"error":  err.Error(),
			})
			continue
		}

		telemetry.Info("dispatcher.dequeue", map[string]any{
			"worker":     worker,
			"deal_id":    msg.DealID,
			"request_id": msg.RequestID,
		})

		if err := d.Runner.Run(ctx, msg.DealID); err != nil {
			// Run already persisted the failure; nothing to retry here.
			telemetry.Error("dispatcher.run", map[string]any{
				"worker":  worker,
				"deal_id": msg.DealID,
				"error":   err.Error(),
			})
		}
	}
}
