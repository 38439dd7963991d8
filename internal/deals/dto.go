package deals

import (
	"time"

	"dealdesk-backend/internal/events"
	"dealdesk-backend/internal/schema"
)

// SubmitResponse is returned when a deal is accepted for processing.
type SubmitResponse struct {
	DealID   string `json:"dealId"`
	FileName string `json:"fileName"`
	Status   string `json:"status"`
	Stage    string `json:"stage"`
}

// DealResponse is the outward-facing representation of a deal, including
// stage outputs once they exist and progress events newer than the caller's
// cursor.
type DealResponse struct {
	DealID       string                  `json:"dealId"`
	FileName     string                  `json:"fileName"`
	Status       string                  `json:"status"`
	Stage        string                  `json:"stage"`
	Context      *schema.ContextModel    `json:"contextModel,omitempty"`
	EvidenceIDs  []string                `json:"evidenceIds,omitempty"`
	Summary      *schema.SummaryDocument `json:"summary,omitempty"`
	Solution     *schema.SolutionBrief   `json:"solutionBrief,omitempty"`
	GapReport    *schema.GapReport       `json:"gapReport,omitempty"`
	ErrorMessage *string                 `json:"errorMessage,omitempty"`
	FailedStage  *string                 `json:"failedStage,omitempty"`
	Events       []events.Event          `json:"events"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
}

func toSubmitResponse(deal Deal) SubmitResponse {
	return SubmitResponse{
		DealID:   deal.ID,
		FileName: deal.FileName,
		Status:   deal.Status,
		Stage:    deal.Stage,
	}
}

func toResponse(deal Deal, log []events.Event) DealResponse {
	if log == nil {
		log = []events.Event{}
	}
	return DealResponse{
		DealID:       deal.ID,
		FileName:     deal.FileName,
		Status:       deal.Status,
		Stage:        deal.Stage,
		Context:      deal.Context,
		EvidenceIDs:  deal.EvidenceIDs,
		Summary:      deal.Summary,
		Solution:     deal.Solution,
		GapReport:    deal.GapReport,
		ErrorMessage: deal.ErrorMessage,
		FailedStage:  deal.FailedStage,
		Events:       log,
		CreatedAt:    deal.CreatedAt,
		UpdatedAt:    deal.UpdatedAt,
	}
}
