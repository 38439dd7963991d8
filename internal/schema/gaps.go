package schema

// GapReport is the validated output of the gap analysis stage: a rendered
// report plus the structured audit of requirement coverage, gaps and
// recommended next steps.
type GapReport struct {
	Markdown string  `json:"gap_report_markdown"`
	Spec     GapSpec `json:"gap_report_spec"`
}

type GapSpec struct {
	CoverageAudit        []CoverageAudit `json:"coverage_audit"`
	Gaps                 []Gap           `json:"gaps"`
	Conflicts            []Conflict      `json:"conflicts"`
	NextStepsInternal    []InternalStep  `json:"next_steps_internal"`
	NextStepsCustomer    []CustomerStep  `json:"next_steps_customer"`
	Drafts               Drafts          `json:"drafts_optional"`
	AssumptionsToConfirm []string        `json:"assumptions_to_confirm"`
	TopRisks             []TopRisk       `json:"top_risks"`
}

type CoverageAudit struct {
	ReqID           string        `json:"req_id"`
	Priority        Priority      `json:"priority"`
	Status          Coverage      `json:"status"`
	WhereInBrief    BriefLocation `json:"where_in_brief"`
	ImpactIfMissing string        `json:"impact_if_missing,omitempty"`
	EvidenceRefs    []EvidenceRef `json:"evidence_refs"`
}

type BriefLocation struct {
	ScenarioIDs []string `json:"scenario_ids"`
	Notes       string   `json:"notes,omitempty"`
}

type RecommendedAction struct {
	ActionType        ActionType `json:"action_type"`
	OwnerTeam         Team       `json:"owner_team"`
	SuggestedNextStep string     `json:"suggested_next_step"`
}

type Gap struct {
	ID                   string            `json:"id"`
	Title                string            `json:"title"`
	Type                 GapType           `json:"type"`
	Severity             Severity          `json:"severity"`
	Priority             ActionPriority    `json:"priority"`
	Description          string            `json:"description"`
	AffectedRequirements []string          `json:"affected_requirements"`
	RecommendedAction    RecommendedAction `json:"recommended_action"`
	Confidence           Confidence        `json:"confidence"`
	EvidenceRefs         []EvidenceRef     `json:"evidence_refs"`
}

type Conflict struct {
	Conflict     string        `json:"conflict"`
	WhyItMatters string        `json:"why_it_matters,omitempty"`
	EvidenceRefs []EvidenceRef `json:"evidence_refs"`
}

type InternalStep struct {
	Priority       ActionPriority `json:"priority"`
	Team           Team           `json:"team"`
	Task           string         `json:"task"`
	ExpectedOutput string         `json:"expected_output,omitempty"`
}

type CustomerStep struct {
	Priority          ActionPriority `json:"priority"`
	QuestionOrRequest string         `json:"question_or_request"`
	Reason            string         `json:"reason,omitempty"`
}

type DraftOutline struct {
	Include bool     `json:"include"`
	Bullets []string `json:"bullets"`
}

type Drafts struct {
	ClarificationEmail DraftOutline `json:"clarification_email_outline"`
	WorkshopAgenda     DraftOutline `json:"workshop_agenda_outline"`
}

type TopRisk struct {
	Risk       string   `json:"risk"`
	Severity   Severity `json:"severity"`
	Mitigation string   `json:"mitigation,omitempty"`
}
