package schema

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Structural schemas checked before typed binding. They only pin down the
// shape a stage output must have; enum drift is handled later by the typed
// bind, not here.

const contextSchemaDoc = `{
  "type": "object",
  "required": [
    "model_version", "extraction_coverage", "document_metadata",
    "customer_context", "scope", "evaluation_and_selection",
    "integrations_and_data", "security_compliance", "commercial_legal",
    "delivery_timeline", "demo_or_poc_requests"
  ],
  "properties": {
    "model_version": {"type": "string"},
    "extraction_coverage": {
      "type": "object",
      "required": ["processed"]
    },
    "document_metadata": {
      "type": "object",
      "required": ["rfx_type", "submission_instructions"]
    },
    "customer_context": {"type": "object"},
    "scope": {"type": "object"},
    "requirements": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "description", "type", "category", "priority"]
      }
    },
    "evaluation_and_selection": {"type": "object"},
    "integrations_and_data": {"type": "object"},
    "security_compliance": {"type": "object"},
    "commercial_legal": {"type": "object"},
    "delivery_timeline": {"type": "object"},
    "demo_or_poc_requests": {
      "type": "object",
      "required": ["requested"]
    },
    "risks_unknowns_ambiguities": {
      "type": "array",
      "items": {"type": "object", "required": ["item", "severity"]}
    },
    "clarification_questions": {
      "type": "array",
      "items": {"type": "object", "required": ["question", "priority"]}
    }
  }
}`

const summarySchemaDoc = `{
  "type": "object",
  "required": ["summary_markdown"],
  "properties": {
    "summary_markdown": {"type": "string", "minLength": 1},
    "sections": {
      "type": "array",
      "items": {"type": "object", "required": ["title", "content"]}
    }
  }
}`

const solutionSchemaDoc = `{
  "type": "object",
  "required": ["solution_brief_markdown", "solution_brief_spec"],
  "properties": {
    "solution_brief_markdown": {"type": "string", "minLength": 1},
    "solution_brief_spec": {
      "type": "object",
      "required": ["recommended_engagement", "data_and_content_plan", "environment_spec"],
      "properties": {
        "scenarios": {
          "type": "array",
          "items": {"type": "object", "required": ["id", "name", "persona", "goal"]}
        },
        "requirement_coverage_summary": {
          "type": "array",
          "items": {"type": "object", "required": ["req_id", "coverage"]}
        }
      }
    }
  }
}`

const gapSchemaDoc = `{
  "type": "object",
  "required": ["gap_report_markdown", "gap_report_spec"],
  "properties": {
    "gap_report_markdown": {"type": "string", "minLength": 1},
    "gap_report_spec": {
      "type": "object",
      "required": ["drafts_optional"],
      "properties": {
        "gaps": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["id", "title", "type", "severity", "description", "recommended_action"]
          }
        },
        "coverage_audit": {
          "type": "array",
          "items": {"type": "object", "required": ["req_id", "status"]}
        }
      }
    }
  }
}`

var (
	contextSchema  = mustCompile("context_model.json", contextSchemaDoc)
	summarySchema  = mustCompile("summary_document.json", summarySchemaDoc)
	solutionSchema = mustCompile("solution_brief.json", solutionSchemaDoc)
	gapSchema      = mustCompile("gap_report.json", gapSchemaDoc)
)

func mustCompile(name, doc string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, strings.NewReader(doc)); err != nil {
		panic(err)
	}
	return c.MustCompile(name)
}
