package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"dealdesk-backend/internal/deals"
	"dealdesk-backend/internal/events"
	"dealdesk-backend/internal/fragments"
	"dealdesk-backend/internal/ingest"
	"dealdesk-backend/internal/llm"
	"dealdesk-backend/internal/shared/storage/object/local"
)

const testContextJSON = `{
  "model_version": "1.0",
  "extraction_coverage": {"processed": true},
  "document_metadata": {
    "rfx_type": "rfp",
    "customer_name": "Acme Industrial",
    "submission_instructions": {"method": "portal"}
  },
  "customer_context": {},
  "scope": {},
  "requirements": [
    {"id": "R-1", "title": "ERP sync", "description": "d", "type": "integration", "category": "integrations", "priority": "must",
     "evidence_refs": [{"fragment_id": "%s", "quote": "q", "confidence": "high"}]}
  ],
  "evaluation_and_selection": {},
  "integrations_and_data": {},
  "security_compliance": {},
  "commercial_legal": {},
  "delivery_timeline": {},
  "demo_or_poc_requests": {"requested": false}
}`

const testSummaryJSON = `{"summary_markdown": "# Summary", "headline": "Acme wants CPQ", "sections": [{"title": "Snapshot", "content": "c", "confidence": "high"}]}`

const testSolutionJSON = `{
  "solution_brief_markdown": "# Brief",
  "solution_brief_spec": {
    "recommended_engagement": {"engagement_type": "poc", "rationale": ["fits timeline"]},
    "scenarios": [{"id": "S-1", "name": "Quote flow", "persona": "sales_rep", "goal": "g"}],
    "data_and_content_plan": {"data_requirements": []},
    "environment_spec": {"deployment_mode": "standalone"}
  }
}`

const testGapJSON = `{
  "gap_report_markdown": "# Gaps",
  "gap_report_spec": {
    "gaps": [
      {"id": "G-1", "title": "SSO unknown", "type": "missing_info", "severity": "high", "description": "d",
       "recommended_action": {"action_type": "customer_question", "owner_team": "sales_engineering"}},
      {"id": "G-2", "title": "Data format", "type": "data_risk", "severity": "low", "description": "d",
       "recommended_action": {"action_type": "internal_validation", "owner_team": "product"}}
    ],
    "drafts_optional": {
      "clarification_email_outline": {"include": true, "bullets": ["SSO"]},
      "workshop_agenda_outline": {"include": false}
    }
  }
}`

// fakeLLM returns canned JSON per stage and records requests.
type fakeLLM struct {
	outputs  map[string]string
	requests []llm.Request
}

func (f *fakeLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.requests = append(f.requests, req)
	out, ok := f.outputs[req.Stage]
	if !ok {
		return "", fmt.Errorf("no canned output for stage %s", req.Stage)
	}
	return out, nil
}

type fixedEmbedder struct{}

func (fixedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

type runnerFixture struct {
	runner *Runner
	repo   *deals.MemoryRepo
	events *events.MemoryStore
	llm    *fakeLLM
	deal   deals.Deal
}

func newRunnerFixture(t *testing.T, outputs map[string]string) *runnerFixture {
	t.Helper()
	ctx := context.Background()

	store := local.New(t.TempDir())
	dealID := "deal-1"
	key, size, _, err := store.Save(ctx, dealID, "acme-rfp.txt", bytes.NewReader([]byte("The customer requires ERP sync and SSO.")))
	if err != nil {
		t.Fatalf("store save: %v", err)
	}

	repo := deals.NewMemoryRepo()
	deal := deals.Deal{
		ID:         dealID,
		FileName:   "acme-rfp.txt",
		StorageKey: key,
		SizeBytes:  size,
		Status:     deals.StatusProcessing,
		Stage:      deals.StageIngestion,
	}
	if err := repo.Create(ctx, deal); err != nil {
		t.Fatalf("repo create: %v", err)
	}

	frStore := fragments.NewMemoryStore(fixedEmbedder{})
	fake := &fakeLLM{outputs: outputs}
	log := events.NewMemoryStore()

	runner := &Runner{
		Deals:  repo,
		Events: log,
		Ingester: &ingest.Ingester{
			Store:     store,
			Fragments: frStore,
		},
		Fragments: frStore,
		LLM:       fake,
	}
	return &runnerFixture{runner: runner, repo: repo, events: log, llm: fake, deal: deal}
}

func happyOutputs() map[string]string {
	return map[string]string{
		"context_extraction": fmt.Sprintf(testContextJSON, "deal-1:f-1"),
		"summarization":      testSummaryJSON,
		"solution_design":    testSolutionJSON,
		"gap_analysis":       testGapJSON,
	}
}

func TestRunnerHappyPath(t *testing.T) {
	fx := newRunnerFixture(t, happyOutputs())
	ctx := context.Background()

	if err := fx.runner.Run(ctx, "deal-1"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	deal, err := fx.repo.GetByID(ctx, "deal-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if deal.Status != deals.StatusReady {
		t.Fatalf("status = %q, want ready", deal.Status)
	}
	if deal.Stage != deals.StageCompleted {
		t.Fatalf("stage = %q, want completed", deal.Stage)
	}
	if deal.Context == nil || deal.Summary == nil || deal.Solution == nil || deal.GapReport == nil {
		t.Fatalf("missing stage outputs: %+v", deal)
	}
	if len(deal.EvidenceIDs) != 1 || deal.EvidenceIDs[0] != "deal-1:f-1" {
		t.Fatalf("evidence ids = %v", deal.EvidenceIDs)
	}
	if deal.SourceText == "" {
		t.Fatalf("source text not saved")
	}

	log, err := fx.events.Read(ctx, "deal-1", 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	// Per stage: an Info start plus a Result, then the final completed Info.
	if len(log) != 11 {
		t.Fatalf("events = %d, want 11", len(log))
	}
	if log[0].Type != events.TypeInfo || log[0].Stage != deals.StageIngestion {
		t.Fatalf("first event = %+v", log[0])
	}
	last := log[len(log)-1]
	if last.Type != events.TypeInfo || last.Stage != deals.StageCompleted {
		t.Fatalf("last event = %+v", last)
	}
	for i, e := range log {
		if e.Type == events.TypeError {
			t.Fatalf("unexpected error event: %+v", e)
		}
		if e.ID != i+1 {
			t.Fatalf("event id = %d at position %d, want gap-free sequence", e.ID, i)
		}
	}

	// Context extraction result carries the stats payload.
	var ctxEvent *events.Event
	for i := range log {
		if log[i].Stage == deals.StageContextExtraction && log[i].Type == events.TypeResult {
			ctxEvent = &log[i]
		}
	}
	if ctxEvent == nil {
		t.Fatalf("no context extraction result event")
	}
	if ctxEvent.Payload["requirement_count"] != 1 {
		t.Fatalf("requirement_count = %v", ctxEvent.Payload["requirement_count"])
	}
	if ctxEvent.Payload["customer_name"] != "Acme Industrial" {
		t.Fatalf("customer_name = %v", ctxEvent.Payload["customer_name"])
	}

	// Gap analysis result counts gaps and high-severity gaps.
	var gapEvent *events.Event
	for i := range log {
		if log[i].Stage == deals.StageGapAnalysis && log[i].Type == events.TypeResult {
			gapEvent = &log[i]
		}
	}
	if gapEvent == nil {
		t.Fatalf("no gap analysis result event")
	}
	if gapEvent.Payload["gap_count"] != 2 || gapEvent.Payload["high_severity_count"] != 1 {
		t.Fatalf("gap payload = %v", gapEvent.Payload)
	}
}

func TestRunnerEvidenceReachesDesignStages(t *testing.T) {
	fx := newRunnerFixture(t, happyOutputs())
	ctx := context.Background()

	if err := fx.runner.Run(ctx, "deal-1"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var design, gap *llm.Request
	for i := range fx.llm.requests {
		switch fx.llm.requests[i].Stage {
		case "solution_design":
			design = &fx.llm.requests[i]
		case "gap_analysis":
			gap = &fx.llm.requests[i]
		}
	}
	if design == nil || gap == nil {
		t.Fatalf("design/gap requests missing")
	}
	if !strings.Contains(design.User, "deal-1:f-1") {
		t.Fatalf("design prompt lacks evidence fragment:\n%s", design.User)
	}
	if !strings.Contains(gap.User, "SOLUTION_BRIEF_SPEC") {
		t.Fatalf("gap prompt lacks solution brief block")
	}
}

func TestRunnerStageFailureIsTerminal(t *testing.T) {
	outputs := happyOutputs()
	outputs["summarization"] = `{"sections": []}` // missing summary_markdown
	fx := newRunnerFixture(t, outputs)
	ctx := context.Background()

	if err := fx.runner.Run(ctx, "deal-1"); err == nil {
		t.Fatalf("Run should fail")
	}

	deal, err := fx.repo.GetByID(ctx, "deal-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if deal.Status != deals.StatusError {
		t.Fatalf("status = %q, want error", deal.Status)
	}
	if deal.FailedStage == nil || *deal.FailedStage != deals.StageSummarization {
		t.Fatalf("failed stage = %v", deal.FailedStage)
	}
	if deal.Stage != *deal.FailedStage {
		t.Fatalf("stage = %q, failed stage = %q; must agree", deal.Stage, *deal.FailedStage)
	}
	if deal.ErrorMessage == nil || !strings.Contains(*deal.ErrorMessage, deals.StageSummarization) {
		t.Fatalf("error message = %v", deal.ErrorMessage)
	}
	if len(*deal.ErrorMessage) > maxErrorMessage {
		t.Fatalf("error message not bounded: %d", len(*deal.ErrorMessage))
	}
	// Earlier outputs persist, later ones never ran.
	if deal.Context == nil {
		t.Fatalf("context output lost on failure")
	}
	if deal.Summary != nil || deal.Solution != nil || deal.GapReport != nil {
		t.Fatalf("later outputs should be absent")
	}

	log, err := fx.events.Read(ctx, "deal-1", 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	errorCount := 0
	for i, e := range log {
		if e.Type == events.TypeError {
			errorCount++
			if i != len(log)-1 {
				t.Fatalf("error event not last: %+v", log)
			}
			if e.Stage != deals.StageSummarization {
				t.Fatalf("error stage = %q", e.Stage)
			}
			if e.Payload["stage"] != deals.StageSummarization {
				t.Fatalf("error payload stage = %v", e.Payload["stage"])
			}
			trace, ok := e.Payload["trace"].(string)
			if !ok || trace == "" {
				t.Fatalf("error payload trace missing: %v", e.Payload)
			}
			if len(trace) > maxErrorTrace {
				t.Fatalf("trace not bounded: %d", len(trace))
			}
		}
	}
	if errorCount != 1 {
		t.Fatalf("error events = %d, want 1", errorCount)
	}
	for _, e := range log {
		if e.Stage == deals.StageSolutionDesign || e.Stage == deals.StageGapAnalysis {
			t.Fatalf("later stage event after failure: %+v", e)
		}
	}
}

func TestBoundedTraceWalksWrappedChain(t *testing.T) {
	base := errors.New("connection reset by peer")
	mid := fmt.Errorf("call completions api: %w", base)
	top := fmt.Errorf("summarization request: %w", mid)

	trace := boundedTrace(top)
	for _, line := range []string{
		"summarization request: call completions api: connection reset by peer",
		"call completions api: connection reset by peer",
		"connection reset by peer",
	} {
		if !strings.Contains(trace, line) {
			t.Fatalf("trace missing %q:\n%s", line, trace)
		}
	}

	huge := fmt.Errorf("wrap: %w", errors.New(strings.Repeat("x", maxErrorTrace*2)))
	if got := boundedTrace(huge); len(got) > maxErrorTrace {
		t.Fatalf("trace not bounded: %d", len(got))
	}
}

func TestRunnerSkipsTerminalDeals(t *testing.T) {
	fx := newRunnerFixture(t, happyOutputs())
	ctx := context.Background()

	deal, _ := fx.repo.GetByID(ctx, "deal-1")
	deal.Status = deals.StatusReady
	deal.Stage = deals.StageCompleted
	if err := fx.repo.Update(ctx, deal); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := fx.runner.Run(ctx, "deal-1"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(fx.llm.requests) != 0 {
		t.Fatalf("terminal deal should not reach the LLM")
	}
	log, err := fx.events.Read(ctx, "deal-1", 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(log) != 0 {
		t.Fatalf("terminal deal should emit no events, got %d", len(log))
	}
}
