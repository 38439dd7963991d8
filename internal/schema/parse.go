package schema

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Stage labels used in parse diagnostics. They match the pipeline's stage
// identifiers so a FormatError can be traced to the stage that produced it.
const (
	StageContextExtraction = "context_extraction"
	StageSummarization     = "summarization"
	StageSolutionDesign    = "solution_design"
	StageGapAnalysis       = "gap_analysis"
)

// windowRadius bounds the context included in a FormatError to roughly 400
// characters total, so diagnostics stay readable and raw model output never
// floods logs or API responses.
const windowRadius = 200

// ParseContextModel cleans, validates and binds context extraction output.
func ParseContextModel(raw string) (*ContextModel, error) {
	var out ContextModel
	if err := parseStage(StageContextExtraction, raw, contextSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseSummaryDocument cleans, validates and binds summarization output.
func ParseSummaryDocument(raw string) (*SummaryDocument, error) {
	var out SummaryDocument
	if err := parseStage(StageSummarization, raw, summarySchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseSolutionBrief cleans, validates and binds solution design output.
func ParseSolutionBrief(raw string) (*SolutionBrief, error) {
	var out SolutionBrief
	if err := parseStage(StageSolutionDesign, raw, solutionSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseGapReport cleans, validates and binds gap analysis output.
func ParseGapReport(raw string) (*GapReport, error) {
	var out GapReport
	if err := parseStage(StageGapAnalysis, raw, gapSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func parseStage(stage, raw string, sch *jsonschema.Schema, out any) error {
	cleaned := Clean(raw)

	var doc any
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return formatError(stage, cleaned, err)
	}
	if err := sch.Validate(doc); err != nil {
		return validationError(stage, err)
	}
	// Enum drift never fails the typed bind; anything surfacing here is a
	// genuine shape mismatch the structural schema did not pin down.
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return &ValidationError{Stage: stage, Reason: err.Error()}
	}
	return nil
}

func formatError(stage, text string, err error) error {
	var offset int64
	var synErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &synErr):
		offset = synErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}
	return &FormatError{
		Stage:  stage,
		Offset: offset,
		Window: contextWindow(text, offset),
		Msg:    err.Error(),
	}
}

func contextWindow(text string, offset int64) string {
	start := offset - windowRadius
	if start < 0 {
		start = 0
	}
	end := offset + windowRadius
	if end > int64(len(text)) {
		end = int64(len(text))
	}
	return text[start:end]
}

func validationError(stage string, err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Stage: stage, Reason: err.Error()}
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	field := strings.ReplaceAll(strings.TrimPrefix(leaf.InstanceLocation, "/"), "/", ".")
	return &ValidationError{Stage: stage, Field: field, Reason: leaf.Message}
}
