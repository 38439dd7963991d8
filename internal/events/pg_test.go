package events

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGStoreAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := &PGStore{DB: db}

	mock.ExpectQuery("INSERT INTO deal_events").
		WithArgs(
			"deal-1",
			TypeResult,
			"context_extraction",
			"Deal context extracted",
			[]byte(`{"requirement_count":3}`),
			sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"event_id"}).AddRow(2))

	id, err := store.Append(context.Background(), "deal-1", Event{
		Type:    TypeResult,
		Stage:   "context_extraction",
		Message: "Deal context extracted",
		Payload: map[string]any{"requirement_count": 3},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if id != 2 {
		t.Fatalf("id = %d, want 2", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := &PGStore{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"event_id", "type", "stage", "message", "payload", "created_at"}).
		AddRow(2, TypeResult, "ingestion", "Document ingested", `{"fragment_count":4}`, now).
		AddRow(3, TypeError, "context_extraction", "context_extraction failed: boom", nil, now)

	mock.ExpectQuery("SELECT event_id, type, stage, message, payload, created_at").
		WithArgs("deal-1", 1).
		WillReturnRows(rows)

	got, err := store.Read(context.Background(), "deal-1", 1)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("events = %d, want 2", len(got))
	}
	if got[0].ID != 2 || got[0].DealID != "deal-1" {
		t.Fatalf("first event = %+v", got[0])
	}
	if got[0].Payload["fragment_count"] != float64(4) {
		t.Fatalf("payload = %v", got[0].Payload)
	}
	if got[1].Type != TypeError || got[1].Payload != nil {
		t.Fatalf("second event = %+v", got[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreAppendCanceledContext(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := &PGStore{DB: db}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Append(ctx, "deal-1", Event{Type: TypeInfo}); err == nil {
		t.Fatalf("expected context error")
	}
}
