package deals

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"dealdesk-backend/internal/events"
	"dealdesk-backend/internal/queue"
	"dealdesk-backend/internal/shared/storage/object"
)

// MaxUploadSize is the ceiling for a submitted document.
const MaxUploadSize = 10 << 20 // 10MB

// maxDealIDLen bounds caller-supplied deal ids; they end up in storage keys
// and log lines.
const maxDealIDLen = 128

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

// Service contains business logic for deal submission and retrieval.
type Service struct {
	Repo   Repo
	Events events.Store
	Store  object.ObjectStore
	Queue  queue.Client
}

// Submit validates the upload, stores it, records the deal under the
// caller-supplied id, and enqueues it for the pipeline. Validation failures
// return before anything is persisted; reusing an id returns ErrConflict.
func (s *Service) Submit(ctx context.Context, dealID, fileName string, content []byte) (Deal, error) {
	dealID = strings.TrimSpace(dealID)
	if dealID == "" {
		return Deal{}, fmt.Errorf("%w: deal_id is required", ErrInvalidInput)
	}
	if len(dealID) > maxDealIDLen {
		return Deal{}, fmt.Errorf("%w: deal_id exceeds %d characters", ErrInvalidInput, maxDealIDLen)
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return Deal{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return Deal{}, fmt.Errorf("%w: unsupported file type %q, expected .pdf, .docx, or .txt", ErrInvalidInput, ext)
	}
	if len(content) == 0 {
		return Deal{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	if len(content) > MaxUploadSize {
		return Deal{}, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidInput, MaxUploadSize)
	}

	if _, err := s.Repo.GetByID(ctx, dealID); err == nil {
		return Deal{}, fmt.Errorf("%w: deal %s", ErrConflict, dealID)
	} else if !errors.Is(err, ErrNotFound) {
		return Deal{}, fmt.Errorf("check deal id: %w", err)
	}

	storageKey, size, _, err := s.Store.Save(ctx, dealID, fileName, bytes.NewReader(content))
	if err != nil {
		return Deal{}, fmt.Errorf("store upload: %w", err)
	}

	now := time.Now().UTC()
	deal := Deal{
		ID:         dealID,
		FileName:   fileName,
		StorageKey: storageKey,
		SizeBytes:  size,
		Status:     StatusProcessing,
		Stage:      StageIngestion,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Create(ctx, deal); err != nil {
		return Deal{}, fmt.Errorf("create deal: %w", err)
	}

	msg := queue.Message{
		DealID:     deal.ID,
		EnqueuedAt: now.Format(time.RFC3339),
		Version:    1,
	}
	if err := s.Queue.Send(ctx, msg); err != nil {
		return Deal{}, fmt.Errorf("enqueue deal: %w", err)
	}

	return deal, nil
}

// Get returns the deal and its progress events newer than sinceEventID.
func (s *Service) Get(ctx context.Context, dealID string, sinceEventID int) (Deal, []events.Event, error) {
	deal, err := s.Repo.GetByID(ctx, dealID)
	if err != nil {
		return Deal{}, nil, err
	}
	log, err := s.Events.Read(ctx, dealID, sinceEventID)
	if err != nil {
		return Deal{}, nil, err
	}
	return deal, log, nil
}
