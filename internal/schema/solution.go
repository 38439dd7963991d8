package schema

import "encoding/json"

// StringList tolerates a bare string where a list is expected; models
// occasionally collapse single-element lists.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = StringList{one}
	return nil
}

// SolutionBrief is the validated output of the solution design stage: a
// rendered brief plus the structured spec later stages audit against.
type SolutionBrief struct {
	Markdown string       `json:"solution_brief_markdown"`
	Spec     SolutionSpec `json:"solution_brief_spec"`
}

type SolutionSpec struct {
	RecommendedEngagement RecommendedEngagement `json:"recommended_engagement"`
	Objectives            []string              `json:"demo_objectives"`
	SuccessCriteria       []string              `json:"success_criteria"`
	RequirementCoverage   []RequirementCoverage `json:"requirement_coverage_summary"`
	Scenarios             []Scenario            `json:"scenarios"`
	DataPlan              DataPlan              `json:"data_and_content_plan"`
	Environment           EnvironmentSpec       `json:"environment_spec"`
	Risks                 []SolutionRisk        `json:"risks"`
	OpenQuestions         []string              `json:"open_questions_customer"`
	AlignmentNeeds        []AlignmentNeed       `json:"internal_alignment_needs"`
}

type RecommendedEngagement struct {
	EngagementType EngagementType `json:"engagement_type"`
	Rationale      []string       `json:"rationale"`
}

type RequirementCoverage struct {
	ReqID    string   `json:"req_id"`
	Coverage Coverage `json:"coverage"`
	Notes    string   `json:"notes,omitempty"`
}

type Scenario struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Persona             Persona       `json:"persona"`
	Goal                string        `json:"goal"`
	Steps               []string      `json:"steps"`
	RequirementsCovered []string      `json:"requirements_covered"`
	AssetsNeeded        []string      `json:"demo_assets_needed"`
	AcceptanceCriteria  StringList    `json:"acceptance_criteria"`
	EvidenceRefs        []EvidenceRef `json:"evidence_refs"`
}

type DataPlanItem struct {
	Item    string     `json:"item"`
	Purpose string     `json:"purpose,omitempty"`
	Source  DataSource `json:"source"`
	Status  DataStatus `json:"status"`
	Notes   string     `json:"notes,omitempty"`
}

type DataPlan struct {
	DataRequirements []DataPlanItem `json:"data_requirements"`
	Assumptions      []string       `json:"assumptions"`
}

type EnvironmentSpec struct {
	Mode                      DeploymentMode `json:"deployment_mode"`
	BaseTemplate              string         `json:"base_template,omitempty"`
	MarketsToSimulate         []string       `json:"markets_regions_to_simulate"`
	RolesToSimulate           []string       `json:"roles_to_simulate"`
	Languages                 []string       `json:"languages"`
	NonfunctionalExpectations StringList     `json:"nonfunctional_expectations"`
}

type SolutionRisk struct {
	Risk         string        `json:"risk"`
	Severity     Severity      `json:"severity"`
	Mitigation   string        `json:"mitigation,omitempty"`
	EvidenceRefs []EvidenceRef `json:"evidence_refs"`
}

type AlignmentNeed struct {
	Team     Team     `json:"team"`
	Topic    string   `json:"topic"`
	Priority Severity `json:"priority"`
}
