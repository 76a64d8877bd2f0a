package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicClassifierFailed(t *testing.T) {
	clf := HeuristicClassifier{}

	tests := []struct {
		name           string
		condition      string
		recommendation string
		want           bool
	}{
		{name: "good condition no keywords", condition: "good", recommendation: "all clear", want: false},
		{name: "bad condition", condition: "bad", recommendation: "", want: true},
		{name: "damaged condition mixed case", condition: "Damaged", recommendation: "", want: true},
		{name: "worn condition padded", condition: "  Worn  ", recommendation: "", want: true},
		{name: "replace keyword", condition: "good", recommendation: "Replace the unit next quarter", want: true},
		{name: "repair keyword inside negation", condition: "good", recommendation: "no repair needed", want: true},
		{name: "bad keyword in recommendation", condition: "fine", recommendation: "not too bad overall", want: true},
		{name: "unknown condition clean recommendation", condition: "acceptable", recommendation: "keep monitoring", want: false},
		{name: "empty everything", condition: "", recommendation: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, clf.Failed(tc.condition, tc.recommendation))
		})
	}
}
