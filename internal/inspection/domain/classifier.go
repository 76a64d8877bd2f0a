package domain

import "strings"

// Classifier derives a pass/fail verdict from the free-text fields of an
// inspection report.
type Classifier interface {
	Failed(condition, recommendation string) bool
}

// HeuristicClassifier reproduces the keyword rules the field tooling has
// always used. The exact keyword sets are a compatibility contract with
// reports already in the store; changing them reclassifies history.
type HeuristicClassifier struct{}

var failureConditions = map[string]struct{}{
	"bad":     {},
	"damaged": {},
	"worn":    {},
}

var failureKeywords = []string{"replace", "repair", "bad"}

func (HeuristicClassifier) Failed(condition, recommendation string) bool {
	if _, ok := failureConditions[strings.ToLower(strings.TrimSpace(condition))]; ok {
		return true
	}
	rec := strings.ToLower(recommendation)
	for _, kw := range failureKeywords {
		if strings.Contains(rec, kw) {
			return true
		}
	}
	return false
}
