package schema

// SummaryDocument is the validated output of the summarization stage: an
// executive summary rendered as markdown plus sectioned highlights.
type SummaryDocument struct {
	Markdown     string           `json:"summary_markdown"`
	Headline     string           `json:"headline,omitempty"`
	Sections     []SummarySection `json:"sections"`
	EvidenceRefs []EvidenceRef    `json:"evidence_refs"`
}

type SummarySection struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Confidence Confidence `json:"confidence"`
}
