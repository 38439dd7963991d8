package llm

import (
	"context"
	"errors"
	"log"
	"net"
	"strings"
	"time"
)

const retryBaseDelay = 300 * time.Millisecond

// RetryingClient wraps a Client with a single retry on transient provider
// failures. Schema and validation failures are never retried here; the
// caller decides what a bad payload means.
type RetryingClient struct {
	Base Client
}

// NewRetryingClient wraps base. A nil base yields a nil client.
func NewRetryingClient(base Client) Client {
	if base == nil {
		return nil
	}
	return RetryingClient{Base: base}
}

// Complete forwards to the base client, retrying once after a short delay
// when the failure looks transient.
func (r RetryingClient) Complete(ctx context.Context, req Request) (string, error) {
	out, err := r.Base.Complete(ctx, req)
	if err == nil || !shouldRetry(err) {
		return out, err
	}

	log.Printf("llm retry attempt=1 stage=%s error=%s", req.Stage, sanitizeError(err))
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return r.Base.Complete(ctx, req)
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "openai") || strings.Contains(msg, "llm") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}

func sanitizeError(err error) string {
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
