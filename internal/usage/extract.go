package usage

import (
	"strings"
)

const (
	titleSelector     = "title"
	sectionSelector   = "section.data-pass-instance"
	remainingSelector = "div.remaining-volume-value"
	totalSelector     = "div.start-volume"
	infoRowSelector   = "div.info-row"

	// summationSectionID marks the section adding up all active passes.
	summationSectionID = "summationPass"
)

type volume struct {
	remainingGB float64
	totalGB     float64
	unlimited   bool
}

// extractPlanName reads the plan from a title like
// "Data usage - MagentaMobil Prepaid L".
func extractPlanName(doc Node) (string, error) {
	title, ok, err := findFirst(doc, titleSelector)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &NotFoundError{Field: "title"}
	}

	_, after, found := strings.Cut(title.Text(), "-")
	plan := strings.TrimSpace(strings.ReplaceAll(after, "\u00a0", " "))
	if !found || plan == "" {
		return "", &NotFoundError{Field: "plan name", Detail: "could not extract plan name from title"}
	}
	return plan, nil
}

// extractVolume returns the quantities of the first active pass. The
// summation section aggregates several passes and is never used.
func extractVolume(doc Node) (volume, error) {
	sections, err := doc.Find(sectionSelector)
	if err != nil {
		return volume{}, err
	}

	for _, section := range sections {
		if id, ok := section.Attr("id"); ok && id == summationSectionID {
			continue
		}

		remaining, hasRemaining, err := cellText(section, remainingSelector)
		if err != nil {
			return volume{}, err
		}
		total, hasTotal, err := cellText(section, totalSelector)
		if err != nil {
			return volume{}, err
		}

		if hasRemaining && hasTotal {
			remainingGB, err := ParseQuantity(remaining)
			if err != nil {
				return volume{}, err
			}
			totalGB, err := ParseQuantity(total)
			if err != nil {
				return volume{}, err
			}
			return volume{remainingGB: remainingGB, totalGB: totalGB}, nil
		}

		if !hasTotal && containsAnyPhrase(fold(section.Text()), unlimitedPhrases) {
			return volume{unlimited: true}, nil
		}
	}

	return volume{}, &NotFoundError{Field: "data usage", Detail: "could not find data usage information"}
}

// extractValidUntil returns nil when no info row carries an expiry date.
// Only a broken selector is an error.
func extractValidUntil(doc Node) (*string, error) {
	rows, err := doc.Find(infoRowSelector)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		text := row.Text()
		if !containsAnyPhrase(fold(text), validUntilLabels) {
			continue
		}
		_, date, found := strings.Cut(text, ":")
		date = strings.TrimSpace(date)
		if !found || date == "" {
			continue
		}
		return stringPtr(date), nil
	}
	return nil, nil
}

func cellText(section Node, selector string) (string, bool, error) {
	cell, ok, err := findFirst(section, selector)
	if err != nil || !ok {
		return "", false, err
	}
	return strings.TrimSpace(cell.Text()), true, nil
}
