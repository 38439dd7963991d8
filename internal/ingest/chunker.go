package ingest

import "strings"

// Chunking defaults tuned for RfX documents: chunks small enough to embed
// and cite precisely, with overlap so claims spanning a boundary are not
// lost.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

var separators = []string{"\n\n", "\n", ". ", " "}

// Chunk splits text into pieces of at most size runes, overlapping by
// roughly overlap runes. It prefers splitting at paragraph, line, sentence,
// and word boundaries, in that order.
func Chunk(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
		if overlap >= size {
			overlap = size / 5
		}
	}

	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= size {
		return []string{string(runes)}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = splitPoint(runes, start, end)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}

		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}

// splitPoint finds the latest separator boundary in (start, limit], falling
// back to a hard cut at limit.
func splitPoint(runes []rune, start, limit int) int {
	window := string(runes[start:limit])
	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx > 0 {
			return start + len([]rune(window[:idx+len(sep)]))
		}
	}
	return limit
}
