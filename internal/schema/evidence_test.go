package schema

import (
	"reflect"
	"testing"
)

func refs(ids ...string) []EvidenceRef {
	out := make([]EvidenceRef, 0, len(ids))
	for _, id := range ids {
		out = append(out, EvidenceRef{FragmentID: id})
	}
	return out
}

func TestCollectEvidenceIDsPriorityOrder(t *testing.T) {
	cm := &ContextModel{
		Requirements: []Requirement{
			{ID: "R-1", Priority: PriorityMust, EvidenceRefs: refs("f-must")},
			{ID: "R-2", Priority: PriorityShould, EvidenceRefs: refs("f-should")},
		},
	}
	cm.DemoRequests.EvidenceRefs = refs("f-demo")
	cm.Evaluation.Criteria = []EvaluationCriterion{{Criterion: "fit", EvidenceRefs: refs("f-eval")}}
	cm.SecurityCompliance.EvidenceRefs = refs("f-sec")
	cm.DeliveryTimeline.EvidenceRefs = refs("f-time")
	cm.Metadata.SubmissionInstructions.EvidenceRefs = refs("f-submit")

	got := CollectEvidenceIDs(cm)
	want := []string{"f-demo", "f-eval", "f-must", "f-sec", "f-time", "f-submit"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
}

func TestCollectEvidenceIDsDedupesFirstSeen(t *testing.T) {
	cm := &ContextModel{
		Requirements: []Requirement{
			{ID: "R-1", Priority: PriorityMust, EvidenceRefs: refs("f-7", "f-8")},
		},
	}
	cm.SecurityCompliance.EvidenceRefs = refs("f-7", "f-9")

	got := CollectEvidenceIDs(cm)
	want := []string{"f-7", "f-8", "f-9"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
}

func TestCollectEvidenceIDsSkipsBlankAndNil(t *testing.T) {
	if got := CollectEvidenceIDs(nil); got != nil {
		t.Fatalf("nil model should yield nil, got %v", got)
	}

	cm := &ContextModel{}
	cm.DemoRequests.EvidenceRefs = []EvidenceRef{{FragmentID: ""}, {FragmentID: "f-1"}}
	got := CollectEvidenceIDs(cm)
	if !reflect.DeepEqual(got, []string{"f-1"}) {
		t.Fatalf("ids = %v, want [f-1]", got)
	}
}
