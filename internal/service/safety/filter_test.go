package safety_test

import (
	"strings"
	"testing"

	"github.com/relately/backend/internal/service/safety"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want safety.Verdict
	}{
		{"plain relationship question", "How do I talk to my partner about finances?", safety.VerdictSafe},
		{"harmful term", "Sometimes I want to hurt him", safety.VerdictHarmful},
		{"harmful term uppercase", "He bought a KNIFE", safety.VerdictHarmful},
		{"concern phrase", "my partner controls everything I do", safety.VerdictConcerning},
		{"concern phrase second person", "she forced me to quit my job", safety.VerdictConcerning},
		{"concern term without phrase", "I need more control over my schedule", safety.VerdictSafe},
		{"empty", "", safety.VerdictSafe},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := safety.Classify(tc.text); got != tc.want {
				t.Fatalf("Classify(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestIsAppropriate(t *testing.T) {
	if safety.IsAppropriate("I want to hurt myself") {
		t.Fatal("harmful text must not be appropriate")
	}
	// Concerning text may still be processed; only the reply is substituted.
	if !safety.IsAppropriate("my partner isolates me from friends") {
		t.Fatal("concerning text should remain appropriate")
	}
}

func TestMessageSelection(t *testing.T) {
	// Abuse indicators escalate to the hotline message.
	got := safety.Message("I'm scared of what he might do")
	if !strings.Contains(got, "1-800-799-7233") {
		t.Fatalf("expected hotline message, got %q", got)
	}

	// Flagged text without an abuse indicator gets the softer redirect.
	got = safety.Message("she forced me to move cities")
	if strings.Contains(got, "1-800-799-7233") {
		t.Fatalf("expected soft redirect, got hotline message")
	}
	if !strings.Contains(got, "mental health professional") {
		t.Fatalf("unexpected redirect text: %q", got)
	}
}
