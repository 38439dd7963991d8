package ingest

import (
	"context"
	"fmt"
	"io"

	"dealdesk-backend/internal/fragments"
	"dealdesk-backend/internal/shared/storage/object"
)

// Ingester turns a stored upload into indexed, citable fragments.
type Ingester struct {
	Store        object.ObjectStore
	Fragments    fragments.Store
	ChunkSize    int
	ChunkOverlap int
}

// Run extracts text from the deal's stored document, chunks it, and indexes
// the fragments. It returns the fragments and the full extracted text.
func (ing *Ingester) Run(ctx context.Context, dealID, storageKey, fileName string) ([]fragments.Fragment, string, error) {
	body, err := ing.Store.Open(ctx, storageKey)
	if err != nil {
		return nil, "", fmt.Errorf("open upload: %w", err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}

	text, err := ExtractText(raw, fileName)
	if err != nil {
		return nil, "", fmt.Errorf("extract text: %w", err)
	}

	size := ing.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	overlap := ing.ChunkOverlap
	if overlap <= 0 {
		overlap = DefaultChunkOverlap
	}

	pieces := Chunk(text, size, overlap)
	if len(pieces) == 0 {
		return nil, "", fmt.Errorf("document produced no text")
	}

	frs := make([]fragments.Fragment, 0, len(pieces))
	for i, piece := range pieces {
		frs = append(frs, fragments.Fragment{
			ID:     fmt.Sprintf("%s:f-%d", dealID, i+1),
			DealID: dealID,
			Index:  i,
			Text:   piece,
		})
	}

	if err := ing.Fragments.StoreFragments(ctx, frs); err != nil {
		return nil, "", fmt.Errorf("index fragments: %w", err)
	}
	return frs, text, nil
}
