package usage

// Parse extracts a usage record from a complete HTML page.
func Parse(html string) (*Record, error) {
	doc, err := ParseDocument(html)
	if err != nil {
		return nil, err
	}
	return Extract(doc)
}

// Extract runs the classifier and field extractors over a parsed page. The
// first failure aborts the pass; no partial record is returned.
func Extract(doc Node) (*Record, error) {
	kind, err := Classify(doc)
	if err != nil {
		return nil, err
	}
	if kind == PageAuthRequired {
		return nil, &AuthRequiredError{}
	}

	plan, err := extractPlanName(doc)
	if err != nil {
		return nil, err
	}
	vol, err := extractVolume(doc)
	if err != nil {
		return nil, err
	}
	validUntil, err := extractValidUntil(doc)
	if err != nil {
		return nil, err
	}

	rec := NewRecord(vol.remainingGB, vol.totalGB, stringPtr(plan), validUntil, vol.unlimited)
	return &rec, nil
}
