package fragments

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

type indexedFragment struct {
	fragment Fragment
	vector   []float32
}

// MemoryStore keeps fragments and their embeddings in memory and answers
// similarity queries by brute-force cosine scan. Suitable for single-digit
// thousands of fragments per deal.
type MemoryStore struct {
	embedder Embedder

	mu     sync.RWMutex
	byID   map[string]Fragment
	byDeal map[string][]indexedFragment
}

// NewMemoryStore constructs a MemoryStore backed by the given embedder.
func NewMemoryStore(embedder Embedder) *MemoryStore {
	return &MemoryStore{
		embedder: embedder,
		byID:     make(map[string]Fragment),
		byDeal:   make(map[string][]indexedFragment),
	}
}

// StoreFragments embeds and indexes the given fragments.
func (s *MemoryStore) StoreFragments(ctx context.Context, frs []Fragment) error {
	if len(frs) == 0 {
		return nil
	}

	texts := make([]string, 0, len(frs))
	for _, f := range frs {
		texts = append(texts, f.Text)
	}
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed fragments: %w", err)
	}
	if len(vectors) != len(frs) {
		return fmt.Errorf("embed fragments: got %d vectors for %d fragments", len(vectors), len(frs))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range frs {
		s.byID[f.ID] = f
		s.byDeal[f.DealID] = append(s.byDeal[f.DealID], indexedFragment{
			fragment: f,
			vector:   vectors[i],
		})
	}
	return nil
}

// Search returns up to topK fragments of the deal most similar to the query.
func (s *MemoryStore) Search(ctx context.Context, dealID, query string, topK int) ([]Fragment, error) {
	if topK <= 0 {
		return nil, nil
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embed query: got %d vectors", len(vectors))
	}
	queryVec := vectors[0]

	s.mu.RLock()
	indexed := s.byDeal[dealID]
	scored := make([]struct {
		fragment Fragment
		score    float64
	}, 0, len(indexed))
	for _, entry := range indexed {
		scored = append(scored, struct {
			fragment Fragment
			score    float64
		}{entry.fragment, cosine(queryVec, entry.vector)})
	}
	s.mu.RUnlock()

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if topK > len(scored) {
		topK = len(scored)
	}
	out := make([]Fragment, 0, topK)
	for _, sc := range scored[:topK] {
		out = append(out, sc.fragment)
	}
	return out, nil
}

// GetByID returns a fragment by its ID.
func (s *MemoryStore) GetByID(ctx context.Context, fragmentID string) (Fragment, error) {
	if err := ctx.Err(); err != nil {
		return Fragment{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.byID[fragmentID]
	if !ok {
		return Fragment{}, ErrNotFound
	}
	return f, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

var _ Store = (*MemoryStore)(nil)
