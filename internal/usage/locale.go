package usage

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// phraseRule matches when every term occurs in the folded text.
type phraseRule []string

// authPhrases identify the redirect page served to requests from outside the
// mobile network or without a session.
var authPhrases = map[string][]phraseRule{
	"de": {
		{"direkter zugriff"},
		{"weiterleitung", "nicht möglich"},
	},
	"en": {
		{"direct access to the page not possible"},
		{"redirect", "not possible"},
	},
}

// validUntilLabels prefix the info row carrying the pass expiry date.
var validUntilLabels = map[string][]string{
	"de": {"gültig bis"},
	"en": {"valid until"},
}

// unlimitedPhrases mark a pass without a metered ceiling.
var unlimitedPhrases = map[string][]string{
	"de": {"unbegrenzt"},
	"en": {"unlimited"},
}

var folder = cases.Fold()

// fold lowercases s for caseless matching. NFC first so that a decomposed
// umlaut in the page matches the composed one in the tables.
func fold(s string) string {
	return folder.String(norm.NFC.String(s))
}

func matchesRule(folded string, rule phraseRule) bool {
	for _, term := range rule {
		if !strings.Contains(folded, fold(term)) {
			return false
		}
	}
	return len(rule) > 0
}

func matchesAnyRule(folded string, table map[string][]phraseRule) bool {
	for _, rules := range table {
		for _, rule := range rules {
			if matchesRule(folded, rule) {
				return true
			}
		}
	}
	return false
}

func containsAnyPhrase(folded string, table map[string][]string) bool {
	for _, phrases := range table {
		for _, phrase := range phrases {
			if strings.Contains(folded, fold(phrase)) {
				return true
			}
		}
	}
	return false
}
