package schema

// CollectEvidenceIDs walks the context model's evidence-bearing sections in a
// fixed priority order and returns each referenced fragment id once, in
// first-seen order. Later stages use this list to refetch only the source
// fragments that ground the extracted context.
//
// Priority: demo/PoC requests, evaluation criteria, must-priority
// requirements, security/compliance, delivery timeline, submission
// instructions.
func CollectEvidenceIDs(cm *ContextModel) []string {
	if cm == nil {
		return nil
	}

	ids := make([]string, 0, 16)
	seen := make(map[string]bool)

	add := func(refs []EvidenceRef) {
		for _, r := range refs {
			if r.FragmentID == "" || seen[r.FragmentID] {
				continue
			}
			seen[r.FragmentID] = true
			ids = append(ids, r.FragmentID)
		}
	}

	add(cm.DemoRequests.EvidenceRefs)
	for _, c := range cm.Evaluation.Criteria {
		add(c.EvidenceRefs)
	}
	for _, req := range cm.Requirements {
		if req.Priority == PriorityMust {
			add(req.EvidenceRefs)
		}
	}
	add(cm.SecurityCompliance.EvidenceRefs)
	add(cm.DeliveryTimeline.EvidenceRefs)
	add(cm.Metadata.SubmissionInstructions.EvidenceRefs)

	return ids
}
