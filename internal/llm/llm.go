package llm

import (
	"context"
	"errors"
)

// Client abstracts chat-completion providers for the deal pipeline. Complete
// returns the model's raw text output; callers parse and validate it.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is a single system+user prompt pair. Stage labels the pipeline
// stage for usage logging.
type Request struct {
	Stage  string
	System string
	User   string
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm client not configured")

// PlaceholderClient stands in when no provider credentials are set, so a dev
// server can boot; any pipeline run fails its deal at the first LLM call.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}
