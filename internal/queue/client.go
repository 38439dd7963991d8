package queue

import "context"

// Client sends messages to a queue backend.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// Receiver pulls messages from a queue backend. Receive blocks until a
// message is available or the context is done.
type Receiver interface {
	Receive(ctx context.Context) (Message, error)
}
