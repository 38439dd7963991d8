package deals

import (
	"context"
	"errors"
	"strings"
	"testing"

	"dealdesk-backend/internal/events"
	"dealdesk-backend/internal/queue"
	"dealdesk-backend/internal/shared/storage/object/local"
)

func newTestService(t *testing.T) (*Service, *queue.MemoryQueue) {
	t.Helper()
	q := queue.NewMemoryQueue(8)
	svc := &Service{
		Repo:   NewMemoryRepo(),
		Events: events.NewMemoryStore(),
		Store:  local.New(t.TempDir()),
		Queue:  q,
	}
	return svc, q
}

func TestSubmitRejectsInvalidUploads(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		dealID   string
		fileName string
		content  []byte
	}{
		{"missing deal id", "", "deal.txt", []byte("hello")},
		{"blank deal id", "   ", "deal.txt", []byte("hello")},
		{"oversized deal id", strings.Repeat("x", maxDealIDLen+1), "deal.txt", []byte("hello")},
		{"missing filename", "deal-1", "", []byte("hello")},
		{"unsupported extension", "deal-1", "deal.exe", []byte("hello")},
		{"no extension", "deal-1", "deal", []byte("hello")},
		{"empty content", "deal-1", "deal.txt", nil},
		{"oversized", "deal-1", "deal.txt", make([]byte, MaxUploadSize+1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tc.dealID, tc.fileName, tc.content)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSubmitCreatesDealAndEnqueues(t *testing.T) {
	svc, q := newTestService(t)
	ctx := context.Background()

	deal, err := svc.Submit(ctx, "deal-acme-1", "acme-rfp.txt", []byte("RFP body"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if deal.ID != "deal-acme-1" {
		t.Fatalf("deal id = %q, want the submitted id", deal.ID)
	}
	if deal.Status != StatusProcessing || deal.Stage != StageIngestion {
		t.Fatalf("status/stage = %q/%q", deal.Status, deal.Stage)
	}
	if deal.StorageKey == "" {
		t.Fatalf("storage key not recorded")
	}
	if !strings.HasSuffix(deal.FileName, ".txt") {
		t.Fatalf("file name = %q", deal.FileName)
	}

	stored, err := svc.Repo.GetByID(ctx, deal.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.SizeBytes != int64(len("RFP body")) {
		t.Fatalf("size = %d", stored.SizeBytes)
	}

	msg, err := q.Receive(ctx)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if msg.DealID != deal.ID {
		t.Fatalf("queued deal = %q, want %q", msg.DealID, deal.ID)
	}
}

func TestSubmitRejectsReusedDealID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "deal-acme-1", "acme-rfp.txt", []byte("RFP body")); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	_, err := svc.Submit(ctx, "deal-acme-1", "other.txt", []byte("second upload"))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	// The original record is untouched.
	stored, err := svc.Repo.GetByID(ctx, "deal-acme-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.FileName != "acme-rfp.txt" {
		t.Fatalf("file name = %q, want acme-rfp.txt", stored.FileName)
	}
}

func TestGetReturnsEventsSinceCursor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	deal, err := svc.Submit(ctx, "deal-acme-1", "acme-rfp.txt", []byte("RFP body"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Events.Append(ctx, deal.ID, events.Event{Type: events.TypeInfo, Message: "step"}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	_, log, err := svc.Get(ctx, deal.ID, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(log) != 2 {
		t.Fatalf("events = %d, want 2", len(log))
	}

	if _, _, err := svc.Get(ctx, "missing", 0); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
