package schema

import (
	"encoding/json"
	"strings"
)

// Every enumerated field binds to exactly one member of its declared set.
// Unrecognized values, including compound ones like "high/medium", bind to
// the set's "unknown" member instead of failing the parse.

const Unknown = "unknown"

func normalizeToken(raw string, upper bool) string {
	s := strings.TrimSpace(raw)
	if upper {
		s = strings.ToUpper(s)
	} else {
		s = strings.ToLower(s)
	}
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

func bindEnum(data []byte, members map[string]bool, synonyms map[string]string, upper bool) string {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return Unknown
	}
	s := normalizeToken(raw, upper)
	if mapped, ok := synonyms[s]; ok {
		s = mapped
	}
	if members[s] {
		return s
	}
	return Unknown
}

func memberSet(values ...string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}

// Confidence qualifies how strongly an evidence reference supports a claim.
type Confidence string

const (
	ConfidenceHigh    Confidence = "high"
	ConfidenceMedium  Confidence = "medium"
	ConfidenceLow     Confidence = "low"
	ConfidenceUnknown Confidence = Unknown
)

var confidenceMembers = memberSet("high", "medium", "low", Unknown)

func (c *Confidence) UnmarshalJSON(data []byte) error {
	*c = Confidence(bindEnum(data, confidenceMembers, nil, false))
	return nil
}

// RequirementType classifies an extracted requirement.
type RequirementType string

const (
	RequirementFunctional      RequirementType = "functional"
	RequirementNonfunctional   RequirementType = "nonfunctional"
	RequirementIntegration     RequirementType = "integration"
	RequirementSecurity        RequirementType = "security"
	RequirementCommercial      RequirementType = "commercial"
	RequirementLegal           RequirementType = "legal"
	RequirementDelivery        RequirementType = "delivery"
	RequirementSupportTraining RequirementType = "support_training"
	RequirementUX              RequirementType = "ux"
	RequirementData            RequirementType = "data"
	RequirementUnknown         RequirementType = Unknown
)

var requirementTypeMembers = memberSet(
	"functional", "nonfunctional", "integration", "security", "commercial",
	"legal", "delivery", "support_training", "ux", "data", Unknown,
)

func (t *RequirementType) UnmarshalJSON(data []byte) error {
	*t = RequirementType(bindEnum(data, requirementTypeMembers, nil, false))
	return nil
}

// Priority is the customer-stated MoSCoW priority of a requirement.
type Priority string

const (
	PriorityMust    Priority = "must"
	PriorityShould  Priority = "should"
	PriorityCould   Priority = "could"
	PriorityUnknown Priority = Unknown
)

var priorityMembers = memberSet("must", "should", "could", Unknown)

func (p *Priority) UnmarshalJSON(data []byte) error {
	*p = Priority(bindEnum(data, priorityMembers, nil, false))
	return nil
}

// SystemType classifies a customer system an integration touches.
type SystemType string

const (
	SystemERP      SystemType = "erp"
	SystemCRM      SystemType = "crm"
	SystemPLM      SystemType = "plm"
	SystemCAD      SystemType = "cad"
	SystemPIM      SystemType = "pim"
	SystemPricing  SystemType = "pricing"
	SystemIdentity SystemType = "identity"
	SystemOther    SystemType = "other"
	SystemUnknown  SystemType = Unknown
)

var systemTypeMembers = memberSet(
	"erp", "crm", "plm", "cad", "pim", "pricing", "identity", "other", Unknown,
)

func (s *SystemType) UnmarshalJSON(data []byte) error {
	*s = SystemType(bindEnum(data, systemTypeMembers, nil, false))
	return nil
}

// Severity grades risks, gaps and clarification priorities.
type Severity string

const (
	SeverityHigh    Severity = "high"
	SeverityMedium  Severity = "medium"
	SeverityLow     Severity = "low"
	SeverityUnknown Severity = Unknown
)

var severityMembers = memberSet("high", "medium", "low", Unknown)

func (s *Severity) UnmarshalJSON(data []byte) error {
	*s = Severity(bindEnum(data, severityMembers, nil, false))
	return nil
}

// EngagementType is the kind of engagement the solution brief recommends.
type EngagementType string

const (
	EngagementStandard EngagementType = "standard"
	EngagementCustom   EngagementType = "custom"
	EngagementPoC      EngagementType = "poc"
	EngagementWorkshop EngagementType = "workshop"
	EngagementUnknown  EngagementType = Unknown
)

var engagementTypeMembers = memberSet("standard", "custom", "poc", "workshop", Unknown)

func (e *EngagementType) UnmarshalJSON(data []byte) error {
	*e = EngagementType(bindEnum(data, engagementTypeMembers, nil, false))
	return nil
}

// Coverage states how fully a requirement is addressed.
type Coverage string

const (
	CoverageCovered Coverage = "covered"
	CoveragePartial Coverage = "partially_covered"
	CoverageNot     Coverage = "not_covered"
	CoverageUnknown Coverage = Unknown
)

var coverageMembers = memberSet("covered", "partially_covered", "not_covered", Unknown)

func (c *Coverage) UnmarshalJSON(data []byte) error {
	*c = Coverage(bindEnum(data, coverageMembers, nil, false))
	return nil
}

// Persona identifies the user role a demo scenario targets.
type Persona string

const (
	PersonaSalesRep Persona = "sales_rep"
	PersonaDealer   Persona = "dealer"
	PersonaApprover Persona = "approver"
	PersonaOther    Persona = "other"
	PersonaUnknown  Persona = Unknown
)

var personaMembers = memberSet("sales_rep", "dealer", "approver", "other", Unknown)

func (p *Persona) UnmarshalJSON(data []byte) error {
	*p = Persona(bindEnum(data, personaMembers, nil, false))
	return nil
}

// DataSource states where demo data would come from.
type DataSource string

const (
	DataSourceCustomer DataSource = "customer"
	DataSourceSynth    DataSource = "synthetic"
	DataSourceTemplate DataSource = "internal_template"
	DataSourceUnknown  DataSource = Unknown
)

var dataSourceMembers = memberSet("customer", "synthetic", "internal_template", Unknown)

func (d *DataSource) UnmarshalJSON(data []byte) error {
	*d = DataSource(bindEnum(data, dataSourceMembers, nil, false))
	return nil
}

// DataStatus states whether a demo data item exists yet.
type DataStatus string

const (
	DataMissing    DataStatus = "missing"
	DataAvailable  DataStatus = "available"
	DataToGenerate DataStatus = "to_generate"
	DataUnknown    DataStatus = Unknown
)

var dataStatusMembers = memberSet("missing", "available", "to_generate", Unknown)

func (d *DataStatus) UnmarshalJSON(data []byte) error {
	*d = DataStatus(bindEnum(data, dataStatusMembers, nil, false))
	return nil
}

// DeploymentMode states whether the proposed environment is standalone or
// integrated with customer systems.
type DeploymentMode string

const (
	DeployStandalone DeploymentMode = "standalone"
	DeployIntegrated DeploymentMode = "integrated"
	DeployUnknown    DeploymentMode = Unknown
)

var deploymentModeMembers = memberSet("standalone", "integrated", Unknown)

func (d *DeploymentMode) UnmarshalJSON(data []byte) error {
	*d = DeploymentMode(bindEnum(data, deploymentModeMembers, nil, false))
	return nil
}

// Team is the internal owner of an alignment need or next step.
type Team string

const (
	TeamProduct          Team = "product"
	TeamSecurity         Team = "security"
	TeamLegal            Team = "legal"
	TeamInfra            Team = "infra"
	TeamSalesEngineering Team = "sales_engineering"
	TeamOther            Team = "other"
	TeamUnknown          Team = Unknown
)

var teamMembers = memberSet(
	"product", "security", "legal", "infra", "sales_engineering", "other", Unknown,
)

// Models frequently shorten the sales engineering team name.
var teamSynonyms = map[string]string{
	"sales": "sales_engineering",
	"se":    "sales_engineering",
}

func (t *Team) UnmarshalJSON(data []byte) error {
	*t = Team(bindEnum(data, teamMembers, teamSynonyms, false))
	return nil
}

// GapType classifies a finding of the gap analysis stage.
type GapType string

const (
	GapMissingInfo     GapType = "missing_info"
	GapNotCovered      GapType = "not_covered"
	GapPartialCoverage GapType = "partial_coverage"
	GapConflict        GapType = "conflict"
	GapScopeRisk       GapType = "scope_risk"
	GapFeasibilityRisk GapType = "feasibility_risk"
	GapComplianceRisk  GapType = "compliance_risk"
	GapDataRisk        GapType = "data_risk"
	GapIntegrationRisk GapType = "integration_risk"
	GapSubmissionRisk  GapType = "submission_risk"
	GapAssumption      GapType = "assumption_to_confirm"
	GapUnknown         GapType = Unknown
)

var gapTypeMembers = memberSet(
	"missing_info", "not_covered", "partial_coverage", "conflict", "scope_risk",
	"feasibility_risk", "compliance_risk", "data_risk", "integration_risk",
	"submission_risk", "assumption_to_confirm", Unknown,
)

func (g *GapType) UnmarshalJSON(data []byte) error {
	*g = GapType(bindEnum(data, gapTypeMembers, nil, false))
	return nil
}

// ActionPriority ranks recommended actions P0 (now) to P2 (later).
type ActionPriority string

const (
	ActionP0              ActionPriority = "P0"
	ActionP1              ActionPriority = "P1"
	ActionP2              ActionPriority = "P2"
	ActionPriorityUnknown ActionPriority = Unknown
)

var actionPriorityMembers = memberSet("P0", "P1", "P2")

func (a *ActionPriority) UnmarshalJSON(data []byte) error {
	bound := bindEnum(data, actionPriorityMembers, nil, true)
	if bound == Unknown {
		*a = ActionPriorityUnknown
		return nil
	}
	*a = ActionPriority(bound)
	return nil
}

// ActionType classifies the recommended follow-up for a gap.
type ActionType string

const (
	ActionCustomerQuestion   ActionType = "customer_question"
	ActionInternalValidation ActionType = "internal_validation"
	ActionDemoAdjustment     ActionType = "demo_adjustment"
	ActionConfirmAssumption  ActionType = "assumption_to_confirm"
	ActionUnknown            ActionType = Unknown
)

var actionTypeMembers = memberSet(
	"customer_question", "internal_validation", "demo_adjustment",
	"assumption_to_confirm", Unknown,
)

func (a *ActionType) UnmarshalJSON(data []byte) error {
	*a = ActionType(bindEnum(data, actionTypeMembers, nil, false))
	return nil
}
