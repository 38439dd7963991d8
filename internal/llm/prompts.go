package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/context_extraction.txt
	contextExtractionPrompt string
	//go:embed prompts/summarization.txt
	summarizationPrompt string
	//go:embed prompts/solution_design.txt
	solutionDesignPrompt string
	//go:embed prompts/gap_analysis.txt
	gapAnalysisPrompt string
)

// ContextExtractionRequest builds the prompt for the context extraction
// stage. fragmentBlock is the numbered FRAGMENT_ID/FRAGMENT listing.
func ContextExtractionRequest(fragmentBlock string) Request {
	return Request{
		Stage:  "context_extraction",
		System: contextExtractionPrompt,
		User:   section("DOCUMENT_FRAGMENTS", fragmentBlock),
	}
}

// SummarizationRequest builds the prompt for the summarization stage.
func SummarizationRequest(contextJSON string) Request {
	return Request{
		Stage:  "summarization",
		System: summarizationPrompt,
		User:   section("DEAL_CONTEXT_MODEL", contextJSON),
	}
}

// SolutionDesignRequest builds the prompt for the solution design stage.
// fragmentBlock carries the evidence fragments selected for this deal and
// may be empty.
func SolutionDesignRequest(contextJSON, fragmentBlock string) Request {
	user := section("DEAL_CONTEXT_MODEL", contextJSON)
	if strings.TrimSpace(fragmentBlock) != "" {
		user += "\n" + section("RELEVANT_FRAGMENTS", fragmentBlock)
	}
	return Request{
		Stage:  "solution_design",
		System: solutionDesignPrompt,
		User:   user,
	}
}

// GapAnalysisRequest builds the prompt for the gap analysis stage.
func GapAnalysisRequest(contextJSON, briefJSON, fragmentBlock string) Request {
	user := section("DEAL_CONTEXT_MODEL", contextJSON) +
		"\n" + section("SOLUTION_BRIEF_SPEC", briefJSON)
	if strings.TrimSpace(fragmentBlock) != "" {
		user += "\n" + section("RELEVANT_FRAGMENTS", fragmentBlock)
	}
	return Request{
		Stage:  "gap_analysis",
		System: gapAnalysisPrompt,
		User:   user,
	}
}

func section(name, body string) string {
	return "[" + name + "]\n" + body + "\n"
}
