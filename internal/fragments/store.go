package fragments

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("fragment not found")

// Embedder computes one vector per input text, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Store holds a deal's fragments and answers similarity queries over them.
type Store interface {
	// StoreFragments embeds and indexes the given fragments.
	StoreFragments(ctx context.Context, frs []Fragment) error
	// Search returns up to topK fragments of the deal most similar to the
	// query, best first.
	Search(ctx context.Context, dealID, query string, topK int) ([]Fragment, error)
	// GetByID returns a fragment by its ID.
	GetByID(ctx context.Context, fragmentID string) (Fragment, error)
}
