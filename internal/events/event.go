package events

import "time"

// Event types recorded in a deal's progress log.
const (
	TypeInfo   = "info"
	TypeResult = "result"
	TypeError  = "error"
)

// Event is a single progress-log entry for a deal. IDs are assigned by the
// store, start at 1, and increase without gaps within a deal.
type Event struct {
	ID        int            `json:"id"`
	DealID    string         `json:"dealId"`
	Type      string         `json:"type"`
	Stage     string         `json:"stage"`
	Message   string         `json:"message"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}
