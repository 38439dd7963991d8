package deals

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"dealdesk-backend/internal/schema"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const dealColumns = `id, file_name, storage_key, size_bytes, status, stage, source_text,
       context_model, evidence_ids, summary_doc, solution_brief, gap_report,
       error_message, failed_stage, created_at, updated_at`

// Create inserts a new deal.
func (r *PGRepo) Create(ctx context.Context, deal Deal) error {
	const query = `
INSERT INTO deals (
	id, file_name, storage_key, size_bytes, status, stage, source_text,
	context_model, evidence_ids, summary_doc, solution_brief, gap_report,
	error_message, failed_stage, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	cols, err := marshalOutputs(deal)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		deal.ID,
		deal.FileName,
		deal.StorageKey,
		deal.SizeBytes,
		deal.Status,
		deal.Stage,
		deal.SourceText,
		cols.contextModel,
		cols.evidenceIDs,
		cols.summary,
		cols.solution,
		cols.gapReport,
		deal.ErrorMessage,
		deal.FailedStage,
		deal.CreatedAt,
		deal.UpdatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return err
}

// GetByID returns a deal by ID.
func (r *PGRepo) GetByID(ctx context.Context, dealID string) (Deal, error) {
	const query = `
SELECT ` + dealColumns + `
FROM deals
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, dealID)
	deal, err := scanDeal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Deal{}, ErrNotFound
		}
		return Deal{}, err
	}
	return deal, nil
}

// Update replaces all mutable columns of an existing deal.
func (r *PGRepo) Update(ctx context.Context, deal Deal) error {
	const query = `
UPDATE deals
SET status = $1,
    stage = $2,
    source_text = $3,
    context_model = $4::jsonb,
    evidence_ids = $5::jsonb,
    summary_doc = $6::jsonb,
    solution_brief = $7::jsonb,
    gap_report = $8::jsonb,
    error_message = $9,
    failed_stage = $10,
    updated_at = now()
WHERE id = $11`

	cols, err := marshalOutputs(deal)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query,
		deal.Status,
		deal.Stage,
		deal.SourceText,
		cols.contextModel,
		cols.evidenceIDs,
		cols.summary,
		cols.solution,
		cols.gapReport,
		deal.ErrorMessage,
		deal.FailedStage,
		deal.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)

type outputColumns struct {
	contextModel any
	evidenceIDs  any
	summary      any
	solution     any
	gapReport    any
}

func marshalOutputs(deal Deal) (outputColumns, error) {
	var cols outputColumns
	var err error
	if deal.Context != nil {
		if cols.contextModel, err = json.Marshal(deal.Context); err != nil {
			return cols, err
		}
	}
	if deal.EvidenceIDs != nil {
		if cols.evidenceIDs, err = json.Marshal(deal.EvidenceIDs); err != nil {
			return cols, err
		}
	}
	if deal.Summary != nil {
		if cols.summary, err = json.Marshal(deal.Summary); err != nil {
			return cols, err
		}
	}
	if deal.Solution != nil {
		if cols.solution, err = json.Marshal(deal.Solution); err != nil {
			return cols, err
		}
	}
	if deal.GapReport != nil {
		if cols.gapReport, err = json.Marshal(deal.GapReport); err != nil {
			return cols, err
		}
	}
	return cols, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeal(row rowScanner) (Deal, error) {
	var d Deal
	var sourceText sql.NullString
	var contextModel sql.NullString
	var evidenceIDs sql.NullString
	var summaryDoc sql.NullString
	var solutionBrief sql.NullString
	var gapReport sql.NullString
	var errorMessage sql.NullString
	var failedStage sql.NullString

	err := row.Scan(
		&d.ID,
		&d.FileName,
		&d.StorageKey,
		&d.SizeBytes,
		&d.Status,
		&d.Stage,
		&sourceText,
		&contextModel,
		&evidenceIDs,
		&summaryDoc,
		&solutionBrief,
		&gapReport,
		&errorMessage,
		&failedStage,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return Deal{}, err
	}

	if sourceText.Valid {
		d.SourceText = sourceText.String
	}
	if contextModel.Valid {
		cm := &schema.ContextModel{}
		if err := json.Unmarshal([]byte(contextModel.String), cm); err != nil {
			return Deal{}, fmt.Errorf("decode context_model for deal %s: %w", d.ID, err)
		}
		d.Context = cm
	}
	if evidenceIDs.Valid {
		if err := json.Unmarshal([]byte(evidenceIDs.String), &d.EvidenceIDs); err != nil {
			return Deal{}, fmt.Errorf("decode evidence_ids for deal %s: %w", d.ID, err)
		}
	}
	if summaryDoc.Valid {
		doc := &schema.SummaryDocument{}
		if err := json.Unmarshal([]byte(summaryDoc.String), doc); err != nil {
			return Deal{}, fmt.Errorf("decode summary_doc for deal %s: %w", d.ID, err)
		}
		d.Summary = doc
	}
	if solutionBrief.Valid {
		brief := &schema.SolutionBrief{}
		if err := json.Unmarshal([]byte(solutionBrief.String), brief); err != nil {
			return Deal{}, fmt.Errorf("decode solution_brief for deal %s: %w", d.ID, err)
		}
		d.Solution = brief
	}
	if gapReport.Valid {
		report := &schema.GapReport{}
		if err := json.Unmarshal([]byte(gapReport.String), report); err != nil {
			return Deal{}, fmt.Errorf("decode gap_report for deal %s: %w", d.ID, err)
		}
		d.GapReport = report
	}
	if errorMessage.Valid {
		d.ErrorMessage = &errorMessage.String
	}
	if failedStage.Valid {
		d.FailedStage = &failedStage.String
	}
	return d, nil
}
