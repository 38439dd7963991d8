package deals

import (
	"time"

	"dealdesk-backend/internal/schema"
)

// Deal statuses.
const (
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusError      = "error"
)

// Pipeline stages, in execution order. StageCompleted marks a deal whose
// pipeline finished.
const (
	StageIngestion         = "ingestion"
	StageContextExtraction = "context_extraction"
	StageSummarization     = "summarization"
	StageSolutionDesign    = "solution_design"
	StageGapAnalysis       = "gap_analysis"
	StageCompleted         = "completed"
)

// StageOrder is the fixed pipeline sequence.
var StageOrder = []string{
	StageIngestion,
	StageContextExtraction,
	StageSummarization,
	StageSolutionDesign,
	StageGapAnalysis,
}

// Deal represents a submitted customer document and the state of its
// analysis pipeline. Stage outputs fill in as each stage completes.
type Deal struct {
	ID           string
	FileName     string
	StorageKey   string
	SizeBytes    int64
	Status       string
	Stage        string
	SourceText   string
	Context      *schema.ContextModel
	EvidenceIDs  []string
	Summary      *schema.SummaryDocument
	Solution     *schema.SolutionBrief
	GapReport    *schema.GapReport
	ErrorMessage *string
	FailedStage  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
