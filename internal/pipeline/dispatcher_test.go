package pipeline

import (
	"context"
	"testing"
	"time"

	"dealdesk-backend/internal/deals"
	"dealdesk-backend/internal/queue"
)

func TestDispatcherProcessesQueuedDeal(t *testing.T) {
	fx := newRunnerFixture(t, happyOutputs())
	q := queue.NewMemoryQueue(8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := &Dispatcher{Queue: q, Runner: fx.runner, Workers: 2}
	d.Start(ctx)

	if err := q.Send(ctx, queue.Message{DealID: "deal-1", Version: 1}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		deal, err := fx.repo.GetByID(context.Background(), "deal-1")
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if deal.Status == deals.StatusReady {
			break
		}
		if deal.Status == deals.StatusError {
			t.Fatalf("deal errored: %v", deal.ErrorMessage)
		}
		select {
		case <-deadline:
			t.Fatalf("deal never became ready, status=%q stage=%q", deal.Status, deal.Stage)
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	done := make(chan struct{})
	go func() {
		d.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("workers did not stop after cancel")
	}
}

func TestDispatcherStopsOnCancelWhenIdle(t *testing.T) {
	fx := newRunnerFixture(t, happyOutputs())
	q := queue.NewMemoryQueue(1)

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{Queue: q, Runner: fx.runner, Workers: 3}
	d.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		d.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("idle workers did not stop after cancel")
	}
}
