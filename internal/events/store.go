package events

import "context"

// Store defines the append-only progress log for deals.
type Store interface {
	// Append records the event for the deal and returns its assigned id.
	Append(ctx context.Context, dealID string, event Event) (int, error)
	// Read returns the deal's events with id greater than sinceEventID,
	// in ascending id order. sinceEventID 0 returns the full log.
	Read(ctx context.Context, dealID string, sinceEventID int) ([]Event, error)
}
