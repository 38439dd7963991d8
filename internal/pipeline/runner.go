package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"dealdesk-backend/internal/deals"
	"dealdesk-backend/internal/events"
	"dealdesk-backend/internal/fragments"
	"dealdesk-backend/internal/ingest"
	"dealdesk-backend/internal/llm"
	"dealdesk-backend/internal/schema"
	"dealdesk-backend/internal/shared/metrics"
	"dealdesk-backend/internal/shared/telemetry"
)

// maxErrorMessage bounds the error text persisted on a failed deal so that a
// huge provider response cannot blow up the record.
const maxErrorMessage = 500

// maxErrorTrace bounds the wrapped-error chain carried on the Error event.
const maxErrorTrace = 2000

// defaultEvidenceTopK caps how many evidence fragments are refetched for the
// design stages.
const defaultEvidenceTopK = 12

// Runner executes the full analysis pipeline for one deal: ingestion,
// context extraction, summarization, solution design, gap analysis. Each
// stage persists its output before its completion event is emitted, so a
// poller never sees an event for state that is not yet readable.
type Runner struct {
	Deals     deals.Repo
	Events    events.Store
	Ingester  *ingest.Ingester
	Fragments fragments.Store
	LLM       llm.Client
	// EvidenceTopK caps evidence fragments passed to the design stages.
	// Zero means defaultEvidenceTopK.
	EvidenceTopK int
}

// Run drives the deal through all stages. The first stage failure marks the
// deal as errored and stops; deals already in a terminal status are left
// untouched.
func (r *Runner) Run(ctx context.Context, dealID string) error {
	deal, err := r.Deals.GetByID(ctx, dealID)
	if err != nil {
		return fmt.Errorf("load deal %s: %w", dealID, err)
	}
	if deal.Status != deals.StatusProcessing {
		telemetry.Info("pipeline.skip", map[string]any{
			"deal_id": deal.ID,
			"status":  deal.Status,
		})
		return nil
	}

	metrics.IncPipelineStarted()
	started := time.Now()

	// Stage 1: ingestion.
	if err := r.beginStage(ctx, &deal, deals.StageIngestion); err != nil {
		return r.fail(ctx, deal, deals.StageIngestion, err)
	}
	frs, text, err := r.Ingester.Run(ctx, deal.ID, deal.StorageKey, deal.FileName)
	if err != nil {
		return r.fail(ctx, deal, deals.StageIngestion, err)
	}
	deal.SourceText = text
	if err := r.Deals.Update(ctx, deal); err != nil {
		return r.fail(ctx, deal, deals.StageIngestion, err)
	}
	r.emit(ctx, deal.ID, events.Event{
		Type:    events.TypeResult,
		Stage:   deals.StageIngestion,
		Message: "Document ingested",
		Payload: map[string]any{"fragment_count": len(frs)},
	})

	// Stage 2: context extraction.
	if err := r.beginStage(ctx, &deal, deals.StageContextExtraction); err != nil {
		return r.fail(ctx, deal, deals.StageContextExtraction, err)
	}
	raw, err := r.LLM.Complete(ctx, llm.ContextExtractionRequest(fragmentBlock(frs)))
	if err != nil {
		return r.fail(ctx, deal, deals.StageContextExtraction, err)
	}
	cm, err := schema.ParseContextModel(raw)
	if err != nil {
		return r.fail(ctx, deal, deals.StageContextExtraction, err)
	}
	deal.Context = cm
	deal.EvidenceIDs = schema.CollectEvidenceIDs(cm)
	if err := r.Deals.Update(ctx, deal); err != nil {
		return r.fail(ctx, deal, deals.StageContextExtraction, err)
	}
	r.emit(ctx, deal.ID, events.Event{
		Type:    events.TypeResult,
		Stage:   deals.StageContextExtraction,
		Message: "Deal context extracted",
		Payload: map[string]any{
			"requirement_count": len(cm.Requirements),
			"customer_name":     cm.Metadata.CustomerName,
			"evidence_count":    len(deal.EvidenceIDs),
		},
	})

	// Stage 3: summarization.
	if err := r.beginStage(ctx, &deal, deals.StageSummarization); err != nil {
		return r.fail(ctx, deal, deals.StageSummarization, err)
	}
	contextJSON, err := json.Marshal(cm)
	if err != nil {
		return r.fail(ctx, deal, deals.StageSummarization, err)
	}
	raw, err = r.LLM.Complete(ctx, llm.SummarizationRequest(string(contextJSON)))
	if err != nil {
		return r.fail(ctx, deal, deals.StageSummarization, err)
	}
	summary, err := schema.ParseSummaryDocument(raw)
	if err != nil {
		return r.fail(ctx, deal, deals.StageSummarization, err)
	}
	deal.Summary = summary
	if err := r.Deals.Update(ctx, deal); err != nil {
		return r.fail(ctx, deal, deals.StageSummarization, err)
	}
	r.emit(ctx, deal.ID, events.Event{
		Type:    events.TypeResult,
		Stage:   deals.StageSummarization,
		Message: "Deal summary ready",
		Payload: map[string]any{"section_count": len(summary.Sections)},
	})

	// Stage 4: solution design, grounded on the collected evidence.
	if err := r.beginStage(ctx, &deal, deals.StageSolutionDesign); err != nil {
		return r.fail(ctx, deal, deals.StageSolutionDesign, err)
	}
	evidence := r.evidenceBlock(ctx, deal.EvidenceIDs)
	raw, err = r.LLM.Complete(ctx, llm.SolutionDesignRequest(string(contextJSON), evidence))
	if err != nil {
		return r.fail(ctx, deal, deals.StageSolutionDesign, err)
	}
	brief, err := schema.ParseSolutionBrief(raw)
	if err != nil {
		return r.fail(ctx, deal, deals.StageSolutionDesign, err)
	}
	deal.Solution = brief
	if err := r.Deals.Update(ctx, deal); err != nil {
		return r.fail(ctx, deal, deals.StageSolutionDesign, err)
	}
	r.emit(ctx, deal.ID, events.Event{
		Type:    events.TypeResult,
		Stage:   deals.StageSolutionDesign,
		Message: "Solution brief ready",
		Payload: map[string]any{"scenario_count": len(brief.Spec.Scenarios)},
	})

	// Stage 5: gap analysis.
	if err := r.beginStage(ctx, &deal, deals.StageGapAnalysis); err != nil {
		return r.fail(ctx, deal, deals.StageGapAnalysis, err)
	}
	briefJSON, err := json.Marshal(brief.Spec)
	if err != nil {
		return r.fail(ctx, deal, deals.StageGapAnalysis, err)
	}
	raw, err = r.LLM.Complete(ctx, llm.GapAnalysisRequest(string(contextJSON), string(briefJSON), evidence))
	if err != nil {
		return r.fail(ctx, deal, deals.StageGapAnalysis, err)
	}
	report, err := schema.ParseGapReport(raw)
	if err != nil {
		return r.fail(ctx, deal, deals.StageGapAnalysis, err)
	}
	deal.GapReport = report
	if err := r.Deals.Update(ctx, deal); err != nil {
		return r.fail(ctx, deal, deals.StageGapAnalysis, err)
	}
	r.emit(ctx, deal.ID, events.Event{
		Type:    events.TypeResult,
		Stage:   deals.StageGapAnalysis,
		Message: "Gap analysis ready",
		Payload: map[string]any{
			"gap_count":           len(report.Spec.Gaps),
			"high_severity_count": countHighSeverity(report),
		},
	})

	deal.Stage = deals.StageCompleted
	deal.Status = deals.StatusReady
	if err := r.Deals.Update(ctx, deal); err != nil {
		return r.fail(ctx, deal, deals.StageGapAnalysis, err)
	}
	r.emit(ctx, deal.ID, events.Event{
		Type:    events.TypeInfo,
		Stage:   deals.StageCompleted,
		Message: "Analysis pipeline completed",
	})

	metrics.IncPipelineCompleted()
	metrics.ObservePipelineDurationMs(float64(time.Since(started).Milliseconds()))
	telemetry.Info("pipeline.completed", map[string]any{
		"deal_id":     deal.ID,
		"duration_ms": time.Since(started).Milliseconds(),
	})
	return nil
}

// beginStage advances the deal to the given stage and persists it before the
// stage's start event, so a poller never sees the event ahead of the state.
func (r *Runner) beginStage(ctx context.Context, deal *deals.Deal, stage string) error {
	deal.Stage = stage
	if err := r.Deals.Update(ctx, *deal); err != nil {
		return err
	}
	r.emit(ctx, deal.ID, events.Event{
		Type:    events.TypeInfo,
		Stage:   stage,
		Message: "Starting " + stage,
	})
	return nil
}

// fail marks the deal errored, persists it, and emits a single Error event.
// Persisting happens before the event so pollers never observe an error
// event for a deal that still reads as processing.
func (r *Runner) fail(ctx context.Context, deal deals.Deal, stage string, cause error) error {
	msg := boundedError(stage, cause)
	deal.Status = deals.StatusError
	deal.ErrorMessage = &msg
	deal.FailedStage = &stage

	if err := r.Deals.Update(ctx, deal); err != nil {
		telemetry.Error("pipeline.fail_update", map[string]any{
			"deal_id": deal.ID,
			"stage":   stage,
			"error":   err.Error(),
		})
	}

	r.emit(ctx, deal.ID, events.Event{
		Type:    events.TypeError,
		Stage:   stage,
		Message: msg,
		Payload: map[string]any{
			"stage": stage,
			"error": msg,
			"trace": boundedTrace(cause),
		},
	})

	metrics.IncPipelineFailed()
	telemetry.Error("pipeline.failed", map[string]any{
		"deal_id": deal.ID,
		"stage":   stage,
		"error":   msg,
	})
	return fmt.Errorf("stage %s: %w", stage, cause)
}

func (r *Runner) emit(ctx context.Context, dealID string, event events.Event) {
	if _, err := r.Events.Append(ctx, dealID, event); err != nil {
		telemetry.Error("pipeline.emit", map[string]any{
			"deal_id": dealID,
			"stage":   event.Stage,
			"error":   err.Error(),
		})
	}
}

// evidenceBlock refetches the fragments named by the evidence collector and
// renders them for prompting. Missing fragments are skipped.
func (r *Runner) evidenceBlock(ctx context.Context, ids []string) string {
	topK := r.EvidenceTopK
	if topK <= 0 {
		topK = defaultEvidenceTopK
	}
	if len(ids) > topK {
		ids = ids[:topK]
	}

	frs := make([]fragments.Fragment, 0, len(ids))
	for _, id := range ids {
		f, err := r.Fragments.GetByID(ctx, id)
		if err != nil {
			continue
		}
		frs = append(frs, f)
	}
	return fragmentBlock(frs)
}

func fragmentBlock(frs []fragments.Fragment) string {
	var b strings.Builder
	for _, f := range frs {
		b.WriteString("FRAGMENT_ID: ")
		b.WriteString(f.ID)
		b.WriteString("\nFRAGMENT: ")
		b.WriteString(f.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

func countHighSeverity(report *schema.GapReport) int {
	n := 0
	for _, g := range report.Spec.Gaps {
		if g.Severity == schema.SeverityHigh {
			n++
		}
	}
	return n
}

// boundedError renders the failure message persisted on the deal: the stage,
// a bounded cause, and nothing else.
func boundedError(stage string, cause error) string {
	msg := fmt.Sprintf("%s failed: %v", stage, cause)
	if len(msg) > maxErrorMessage {
		msg = msg[:maxErrorMessage]
	}
	return msg
}

// boundedTrace renders the full wrapped-error chain for the Error event
// payload, one frame per line, truncated to maxErrorTrace.
func boundedTrace(cause error) string {
	var b strings.Builder
	for err := cause; err != nil; err = errors.Unwrap(err) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(err.Error())
		if b.Len() > maxErrorTrace {
			break
		}
	}
	trace := b.String()
	if len(trace) > maxErrorTrace {
		trace = trace[:maxErrorTrace]
	}
	return trace
}
