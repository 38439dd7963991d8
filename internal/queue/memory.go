package queue

import "context"

// MemoryQueue is a channel-backed queue for single-process deployments. The
// HTTP handler sends into it and the in-process dispatcher receives from it.
type MemoryQueue struct {
	ch chan Message
}

// NewMemoryQueue constructs a MemoryQueue with the given buffer size.
func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 64
	}
	return &MemoryQueue{ch: make(chan Message, size)}
}

// Send enqueues the message, blocking if the buffer is full.
func (q *MemoryQueue) Send(ctx context.Context, msg Message) error {
	select {
	case q.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive blocks until a message is available or the context is done.
func (q *MemoryQueue) Receive(ctx context.Context) (Message, error) {
	select {
	case msg := <-q.ch:
		return msg, nil
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

var (
	_ Client   = (*MemoryQueue)(nil)
	_ Receiver = (*MemoryQueue)(nil)
)
