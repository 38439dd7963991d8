package schema

// EvidenceRef ties an extracted claim back to a stored source fragment.
type EvidenceRef struct {
	FragmentID string     `json:"fragment_id"`
	Section    string     `json:"section,omitempty"`
	Quote      string     `json:"quote,omitempty"`
	Confidence Confidence `json:"confidence,omitempty"`
}

// ContextModel is the validated output of the context extraction stage: a
// structured reading of the RfX document with every claim tied to source
// fragments.
type ContextModel struct {
	ModelVersion       string              `json:"model_version"`
	ExtractionCoverage ExtractionCoverage  `json:"extraction_coverage"`
	Metadata           DocumentMetadata    `json:"document_metadata"`
	CustomerContext    CustomerContext     `json:"customer_context"`
	Scope              Scope               `json:"scope"`
	Requirements       []Requirement       `json:"requirements"`
	Evaluation         Evaluation          `json:"evaluation_and_selection"`
	Integrations       Integrations        `json:"integrations_and_data"`
	SecurityCompliance SecurityCompliance  `json:"security_compliance"`
	CommercialLegal    CommercialLegal     `json:"commercial_legal"`
	DeliveryTimeline   DeliveryTimeline    `json:"delivery_timeline"`
	DemoRequests       DemoRequests        `json:"demo_or_poc_requests"`
	Risks              []RiskItem          `json:"risks_unknowns_ambiguities"`
	Clarifications     []ClarificationItem `json:"clarification_questions"`
	Glossary           Glossary            `json:"entities_glossary"`
}

type ExtractionCoverage struct {
	Processed             bool     `json:"processed"`
	Warnings              []string `json:"warnings"`
	SectionsDetected      []string `json:"sections_detected"`
	SectionsLowConfidence []string `json:"sections_low_confidence"`
}

type Contact struct {
	Name         string        `json:"name,omitempty"`
	Role         string        `json:"role,omitempty"`
	Email        string        `json:"email,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	EvidenceRefs []EvidenceRef `json:"evidence_refs"`
}

type SubmissionInstructions struct {
	Method       string        `json:"method,omitempty"`
	Format       string        `json:"format,omitempty"`
	PortalLink   string        `json:"portal_link,omitempty"`
	QAProcess    string        `json:"qa_process,omitempty"`
	EvidenceRefs []EvidenceRef `json:"evidence_refs"`
}

type DocumentMetadata struct {
	RfxType                string                 `json:"rfx_type"`
	Title                  string                 `json:"title,omitempty"`
	CustomerName           string                 `json:"customer_name,omitempty"`
	IssuingOrg             string                 `json:"issuing_org,omitempty"`
	DocumentDate           string                 `json:"document_date,omitempty"`
	Revision               string                 `json:"revision,omitempty"`
	Confidentiality        string                 `json:"confidentiality,omitempty"`
	SubmissionDeadline     string                 `json:"submission_deadline,omitempty"`
	Contacts               []Contact              `json:"contacts"`
	SubmissionInstructions SubmissionInstructions `json:"submission_instructions"`
}

type CustomerContext struct {
	Industry          string        `json:"industry,omitempty"`
	ProfileSummary    string        `json:"customer_profile_summary,omitempty"`
	RegionsMarkets    []string      `json:"regions_markets"`
	CurrentState      []string      `json:"current_state"`
	BusinessProblems  []string      `json:"business_problems"`
	KeyPainPoints     []string      `json:"key_pain_points"`
	SuccessDefinition []string      `json:"success_definition"`
	EvidenceRefs      []EvidenceRef `json:"evidence_refs"`
}

type Scope struct {
	InScope             []string      `json:"in_scope"`
	OutOfScope          []string      `json:"out_of_scope"`
	CustomerAssumptions []string      `json:"assumptions_stated_by_customer"`
	GlobalConstraints   []string      `json:"constraints_global"`
	EvidenceRefs        []EvidenceRef `json:"evidence_refs"`
}

type Requirement struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Type               RequirementType `json:"type"`
	Category           string          `json:"category"`
	Subcategory        string          `json:"subcategory,omitempty"`
	Priority           Priority        `json:"priority"`
	Dependencies       []string        `json:"dependencies"`
	AcceptanceCriteria string          `json:"acceptance_criteria,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	EvidenceRefs       []EvidenceRef   `json:"evidence_refs"`
}

type EvaluationCriterion struct {
	Criterion    string        `json:"criterion"`
	Weight       string        `json:"weight,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	EvidenceRefs []EvidenceRef `json:"evidence_refs"`
}

type Stakeholder struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
	Team string `json:"team,omitempty"`
}

type DecisionProcess struct {
	Stages       []string      `json:"stages"`
	Stakeholders []Stakeholder `json:"stakeholders"`
	Timeline     string        `json:"timeline,omitempty"`
	EvidenceRefs []EvidenceRef `json:"evidence_refs"`
}

type Evaluation struct {
	Criteria        []EvaluationCriterion `json:"evaluation_criteria"`
	DecisionProcess DecisionProcess       `json:"decision_process"`
}

type SystemIntegration struct {
	SystemName   string        `json:"system_name,omitempty"`
	SystemType   SystemType    `json:"system_type"`
	Constraints  []string      `json:"constraints"`
	Notes        string        `json:"notes,omitempty"`
	EvidenceRefs []EvidenceRef `json:"evidence_refs"`
}

type DataRequirement struct {
	DataItem     string        `json:"data_item"`
	Purpose      string        `json:"purpose,omitempty"`
	Format       string        `json:"format,omitempty"`
	Source       string        `json:"source,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	EvidenceRefs []EvidenceRef `json:"evidence_refs"`
}

type Integrations struct {
	Systems          []SystemIntegration `json:"systems"`
	DataRequirements []DataRequirement   `json:"data_requirements"`
}

type SecurityCompliance struct {
	Requirements  []string      `json:"requirements"`
	Standards     []string      `json:"standards_certifications"`
	Privacy       []string      `json:"privacy"`
	AccessControl []string      `json:"access_control_identity"`
	DataResidency string        `json:"data_residency,omitempty"`
	EvidenceRefs  []EvidenceRef `json:"evidence_refs"`
}

type CommercialLegal struct {
	CommercialRequirements []string      `json:"commercial_requirements"`
	PricingExpectations    []string      `json:"pricing_licensing_expectations"`
	ContractTerms          []string      `json:"contract_terms"`
	SLASupport             []string      `json:"sla_support"`
	ProcurementProcess     []string      `json:"procurement_process"`
	EvidenceRefs           []EvidenceRef `json:"evidence_refs"`
}

type Milestone struct {
	Milestone    string        `json:"milestone"`
	DateOrWindow string        `json:"date_or_window,omitempty"`
	EvidenceRefs []EvidenceRef `json:"evidence_refs"`
}

type DeliveryTimeline struct {
	Milestones                []Milestone   `json:"milestones"`
	ImplementationConstraints []string      `json:"implementation_constraints"`
	EvidenceRefs              []EvidenceRef `json:"evidence_refs"`
}

type DemoRequest struct {
	Title        string        `json:"title,omitempty"`
	Scenario     string        `json:"scenario,omitempty"`
	Artifacts    []string      `json:"artifacts"`
	Constraints  []string      `json:"constraints"`
	Expectations []string      `json:"expectations"`
	EvidenceRefs []EvidenceRef `json:"evidence_refs"`
}

type DemoRequests struct {
	Requested    bool          `json:"requested"`
	Requests     []DemoRequest `json:"requests"`
	EvidenceRefs []EvidenceRef `json:"evidence_refs"`
}

type RiskItem struct {
	Item         string        `json:"item"`
	Severity     Severity      `json:"severity"`
	WhyItMatters string        `json:"why_it_matters,omitempty"`
	EvidenceRefs []EvidenceRef `json:"evidence_refs"`
}

type ClarificationItem struct {
	Question     string        `json:"question"`
	Priority     Severity      `json:"priority"`
	Reason       string        `json:"reason,omitempty"`
	EvidenceRefs []EvidenceRef `json:"evidence_refs"`
}

type KeyTerm struct {
	Term    string `json:"term"`
	Meaning string `json:"meaning,omitempty"`
}

type Glossary struct {
	Products      []string  `json:"products"`
	RolesPersonas []string  `json:"roles_personas"`
	Geographies   []string  `json:"geographies"`
	Currencies    []string  `json:"currencies"`
	KeyTerms      []KeyTerm `json:"key_terms_acronyms"`
}
