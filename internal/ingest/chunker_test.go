package ingest

import (
	"strings"
	"testing"
)

func TestChunkShortTextSinglePiece(t *testing.T) {
	got := Chunk("short document", 1000, 200)
	if len(got) != 1 || got[0] != "short document" {
		t.Fatalf("chunks = %v", got)
	}
}

func TestChunkEmptyText(t *testing.T) {
	if got := Chunk("   \n ", 1000, 200); got != nil {
		t.Fatalf("chunks = %v, want nil", got)
	}
}

func TestChunkRespectsSizeAndOverlap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 120; i++ {
		b.WriteString("sentence number goes right here. ")
	}
	text := b.String()

	chunks := Chunk(text, 500, 100)
	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want several", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > 500 {
			t.Fatalf("chunk %d has %d runes, limit 500", i, len([]rune(c)))
		}
	}

	// Overlap means consecutive chunks share text.
	tail := chunks[0][len(chunks[0])-40:]
	if !strings.Contains(chunks[1], tail[:20]) {
		t.Fatalf("no overlap between chunk 0 and 1")
	}
}

func TestChunkPrefersParagraphBoundaries(t *testing.T) {
	para := strings.Repeat("word ", 50)
	text := strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para)

	chunks := Chunk(text, 300, 50)
	for i, c := range chunks {
		if strings.HasPrefix(c, " ") || strings.HasSuffix(c, " ") {
			t.Fatalf("chunk %d not trimmed: %q", i, c)
		}
	}
}

func TestChunkCoversAllText(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta. ", 100)
	chunks := Chunk(text, 400, 80)

	joined := strings.Join(chunks, " ")
	if !strings.Contains(joined, "alpha beta gamma delta.") {
		t.Fatalf("content lost in chunking")
	}
	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(strings.TrimSpace(text), strings.TrimSpace(last[len(last)-20:])) {
		t.Fatalf("tail of text missing from final chunk")
	}
}
