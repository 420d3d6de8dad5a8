package quiz

import (
	"strings"
	"testing"
)

func TestScore(t *testing.T) {
	if got := Score(nil); got != 0 {
		t.Fatalf("empty answers should score 0, got %v", got)
	}

	// All top-option answers max out at 100.
	full := map[string]int{"q1": 4, "q2": 4, "q3": 4, "q4": 4}
	if got := Score(full); got != 100 {
		t.Fatalf("all-4 answers = %v, want 100", got)
	}

	// 2+4 out of a possible 8 is 75%.
	mixed := map[string]int{"q1": 2, "q2": 4}
	if got := Score(mixed); got != 75 {
		t.Fatalf("Score(%v) = %v, want 75", mixed, got)
	}

	zeros := map[string]int{"q1": 0, "q2": 0}
	if got := Score(zeros); got != 0 {
		t.Fatalf("all-0 answers = %v, want 0", got)
	}
}

func TestAssessStayOrLeave(t *testing.T) {
	assessment, recommendation := Assess(KindStayOrLeave, 72)
	if !strings.Contains(assessment, "72%") {
		t.Fatalf("assessment should carry the rounded score, got %q", assessment)
	}
	if !strings.Contains(recommendation, "discussing concerns") {
		t.Fatalf("above-threshold recommendation wrong: %q", recommendation)
	}

	_, recommendation = Assess(KindStayOrLeave, 59.9)
	if !strings.Contains(recommendation, "staying or leaving") {
		t.Fatalf("below-threshold recommendation wrong: %q", recommendation)
	}

	// The threshold itself counts as meeting needs.
	_, recommendation = Assess(KindStayOrLeave, 60)
	if !strings.Contains(recommendation, "discussing concerns") {
		t.Fatalf("boundary score should use the upper bucket: %q", recommendation)
	}
}

func TestAssessRelationshipHealth(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{90, "nurturing"},
		{75, "nurturing"},
		{60, "solid base"},
		{30, "scored low"},
	}

	for _, tc := range cases {
		_, recommendation := Assess(KindRelationshipHealth, tc.score)
		if !strings.Contains(recommendation, tc.want) {
			t.Fatalf("Assess(health, %v) = %q, want substring %q", tc.score, recommendation, tc.want)
		}
	}
}
