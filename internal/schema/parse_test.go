package schema

import (
	"errors"
	"strings"
	"testing"
)

const minimalContextJSON = `{
  "model_version": "1.0",
  "extraction_coverage": {"processed": true},
  "document_metadata": {
    "rfx_type": "rfp",
    "customer_name": "Acme Industrial",
    "submission_instructions": {"method": "portal", "evidence_refs": [{"fragment_id": "f-9"}]}
  },
  "customer_context": {"industry": "manufacturing"},
  "scope": {"in_scope": ["quoting"]},
  "requirements": [
    {
      "id": "R-1",
      "title": "ERP integration",
      "description": "Sync quotes to the ERP",
      "type": "Integration",
      "category": "integrations",
      "priority": "MUST",
      "evidence_refs": [{"fragment_id": "f-1", "confidence": "High"}]
    }
  ],
  "evaluation_and_selection": {"evaluation_criteria": [{"criterion": "fit", "evidence_refs": [{"fragment_id": "f-2"}]}]},
  "integrations_and_data": {"systems": [{"system_type": "ERP"}]},
  "security_compliance": {"requirements": ["SSO"], "evidence_refs": [{"fragment_id": "f-3"}]},
  "commercial_legal": {},
  "delivery_timeline": {"evidence_refs": [{"fragment_id": "f-4"}]},
  "demo_or_poc_requests": {"requested": false}
}`

func TestParseContextModelMinimal(t *testing.T) {
	cm, err := ParseContextModel(minimalContextJSON)
	if err != nil {
		t.Fatalf("ParseContextModel: %v", err)
	}
	if cm.ModelVersion != "1.0" {
		t.Fatalf("model version = %q", cm.ModelVersion)
	}
	if len(cm.Requirements) != 1 {
		t.Fatalf("requirements = %d, want 1", len(cm.Requirements))
	}
	req := cm.Requirements[0]
	if req.Type != RequirementIntegration {
		t.Fatalf("requirement type = %q, want %q", req.Type, RequirementIntegration)
	}
	if req.Priority != PriorityMust {
		t.Fatalf("requirement priority = %q, want %q", req.Priority, PriorityMust)
	}
	if req.EvidenceRefs[0].Confidence != ConfidenceHigh {
		t.Fatalf("evidence confidence = %q", req.EvidenceRefs[0].Confidence)
	}
	if cm.Integrations.Systems[0].SystemType != SystemERP {
		t.Fatalf("system type = %q", cm.Integrations.Systems[0].SystemType)
	}
	// Absent optional collections stay usable, they never fail the parse.
	if cm.Risks == nil && len(cm.Risks) != 0 {
		t.Fatalf("risks not defaulted")
	}
}

func TestParseContextModelFencedWithTrailingComma(t *testing.T) {
	fenced := "```json\n" + strings.Replace(minimalContextJSON, `"requested": false}`, `"requested": false,}`, 1) + "\n```"
	cm, err := ParseContextModel(fenced)
	if err != nil {
		t.Fatalf("ParseContextModel fenced: %v", err)
	}
	if cm.Metadata.CustomerName != "Acme Industrial" {
		t.Fatalf("customer name = %q", cm.Metadata.CustomerName)
	}
}

func TestParseContextModelSyntaxError(t *testing.T) {
	padding := strings.Repeat(" ", 2000)
	broken := `{"model_version": "1.0", ` + padding + `"extraction_coverage": }`
	_, err := ParseContextModel(broken)

	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("want FormatError, got %T: %v", err, err)
	}
	if fe.Offset == 0 {
		t.Fatalf("offset not set")
	}
	if len(fe.Window) > 2*windowRadius {
		t.Fatalf("window too large: %d", len(fe.Window))
	}
	if len(fe.Window) >= len(broken) {
		t.Fatalf("window should not carry the full payload")
	}
}

func TestParseContextModelMissingRequired(t *testing.T) {
	missing := strings.Replace(minimalContextJSON, `"document_metadata"`, `"doc_metadata"`, 1)
	_, err := ParseContextModel(missing)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %T: %v", err, err)
	}
	var fe *FormatError
	if errors.As(err, &fe) {
		t.Fatalf("missing field must not be a FormatError")
	}
}

func TestParseSummaryDocument(t *testing.T) {
	raw := `{"summary_markdown": "# Summary", "sections": [{"title": "Scope", "content": "tight", "confidence": "Medium"}]}`
	doc, err := ParseSummaryDocument(raw)
	if err != nil {
		t.Fatalf("ParseSummaryDocument: %v", err)
	}
	if doc.Sections[0].Confidence != ConfidenceMedium {
		t.Fatalf("confidence = %q", doc.Sections[0].Confidence)
	}

	if _, err := ParseSummaryDocument(`{"sections": []}`); err == nil {
		t.Fatalf("missing summary_markdown accepted")
	}
}

func TestParseSolutionBriefCoercesScalars(t *testing.T) {
	raw := `{
  "solution_brief_markdown": "# Brief",
  "solution_brief_spec": {
    "recommended_engagement": {"engagement_type": "POC", "rationale": ["fast"]},
    "scenarios": [{
      "id": "S-1", "name": "Quote flow", "persona": "Sales Rep", "goal": "end to end",
      "acceptance_criteria": "quote completes"
    }],
    "data_and_content_plan": {"data_requirements": [{"item": "price list", "source": "Customer", "status": "missing"}]},
    "environment_spec": {"deployment_mode": "standalone", "nonfunctional_expectations": "fast"}
  }
}`
	brief, err := ParseSolutionBrief(raw)
	if err != nil {
		t.Fatalf("ParseSolutionBrief: %v", err)
	}
	sc := brief.Spec.Scenarios[0]
	if sc.Persona != PersonaSalesRep {
		t.Fatalf("persona = %q", sc.Persona)
	}
	if len(sc.AcceptanceCriteria) != 1 || sc.AcceptanceCriteria[0] != "quote completes" {
		t.Fatalf("acceptance criteria = %v", sc.AcceptanceCriteria)
	}
	if got := brief.Spec.Environment.NonfunctionalExpectations; len(got) != 1 || got[0] != "fast" {
		t.Fatalf("nonfunctional expectations = %v", got)
	}
	if brief.Spec.DataPlan.DataRequirements[0].Source != DataSourceCustomer {
		t.Fatalf("source = %q", brief.Spec.DataPlan.DataRequirements[0].Source)
	}
}

func TestParseGapReportEnumDrift(t *testing.T) {
	raw := `{
  "gap_report_markdown": "# Gaps",
  "gap_report_spec": {
    "gaps": [{
      "id": "G-1", "title": "No SSO detail", "type": "Missing-Info", "severity": "HIGH",
      "priority": "p0", "description": "SSO provider unspecified",
      "recommended_action": {"action_type": "Customer Question", "owner_team": "Sales", "suggested_next_step": "ask"},
      "confidence": "low"
    }],
    "drafts_optional": {
      "clarification_email_outline": {"include": true, "bullets": ["SSO"]},
      "workshop_agenda_outline": {"include": false}
    }
  }
}`
	report, err := ParseGapReport(raw)
	if err != nil {
		t.Fatalf("ParseGapReport: %v", err)
	}
	gap := report.Spec.Gaps[0]
	if gap.Type != GapMissingInfo {
		t.Fatalf("gap type = %q", gap.Type)
	}
	if gap.Severity != SeverityHigh {
		t.Fatalf("severity = %q", gap.Severity)
	}
	if gap.Priority != ActionP0 {
		t.Fatalf("priority = %q", gap.Priority)
	}
	if gap.RecommendedAction.OwnerTeam != TeamSalesEngineering {
		t.Fatalf("owner team = %q", gap.RecommendedAction.OwnerTeam)
	}
}
