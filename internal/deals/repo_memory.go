package deals

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo stores deals in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Deal
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Deal)}
}

// Create stores the deal. The id must not already be in use.
func (r *MemoryRepo) Create(ctx context.Context, deal Deal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[deal.ID]; ok {
		return ErrConflict
	}
	r.byID[deal.ID] = deal
	return nil
}

// GetByID returns a deal by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, dealID string) (Deal, error) {
	if err := ctx.Err(); err != nil {
		return Deal{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	deal, ok := r.byID[dealID]
	if !ok {
		return Deal{}, ErrNotFound
	}
	return deal, nil
}

// Update replaces the stored deal and bumps its UpdatedAt.
func (r *MemoryRepo) Update(ctx context.Context, deal Deal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[deal.ID]; !ok {
		return ErrNotFound
	}
	deal.UpdatedAt = time.Now().UTC()
	r.byID[deal.ID] = deal
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
