package events

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps progress logs in memory and is safe for concurrent use.
// Logs do not survive a process restart; polling clients observe a reset log
// on redeploy.
type MemoryStore struct {
	mu     sync.RWMutex
	byDeal map[string][]Event
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byDeal: make(map[string][]Event)}
}

// Append records the event for the deal and returns its assigned id.
func (s *MemoryStore) Append(ctx context.Context, dealID string, event Event) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = len(s.byDeal[dealID]) + 1
	event.DealID = dealID
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	event.Payload = clonePayload(event.Payload)
	s.byDeal[dealID] = append(s.byDeal[dealID], event)
	return event.ID, nil
}

// Read returns the deal's events with id greater than sinceEventID.
func (s *MemoryStore) Read(ctx context.Context, dealID string, sinceEventID int) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.byDeal[dealID]
	out := make([]Event, 0, len(log))
	for _, e := range log {
		if e.ID > sinceEventID {
			e.Payload = clonePayload(e.Payload)
			out = append(out, e)
		}
	}
	return out, nil
}

// clonePayload copies the payload so callers holding a returned event can
// never mutate the stored log entry.
func clonePayload(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return clonePayload(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
