package quiz

import (
	"fmt"
	"math"
)

// Quiz kinds. Both questionnaires use five-option answers scored 0-4.
const (
	KindRelationshipHealth = "relationship_health"
	KindStayOrLeave        = "stay_or_leave"
)

// stayOrLeaveThreshold splits the two stay-or-leave result buckets.
const stayOrLeaveThreshold = 60.0

// Score averages the selected option indices into a 0-100 percentage.
// Empty answer sets score zero.
func Score(answers map[string]int) float64 {
	if len(answers) == 0 {
		return 0
	}

	total := 0
	for _, v := range answers {
		total += v
	}
	return float64(total) / float64(len(answers)*4) * 100
}

// Assess maps a score to the static assessment and recommendation text for
// the given quiz kind.
func Assess(kind string, score float64) (assessment, recommendation string) {
	rounded := int(math.Round(score))

	switch kind {
	case KindStayOrLeave:
		if score >= stayOrLeaveThreshold {
			return fmt.Sprintf("Your relationship is %d%% meeting your needs.", rounded),
				"Consider discussing concerns with your partner."
		}
		return fmt.Sprintf("Your relationship is %d%% fulfilling.", rounded),
			"You may want to reflect on staying or leaving."
	default:
		assessment = fmt.Sprintf("Your relationship health is %d%%.", rounded)
		switch {
		case score >= 75:
			recommendation = "Keep nurturing what already works for you both."
		case score >= 50:
			recommendation = "There is a solid base; focus on the lower-scoring areas together."
		default:
			recommendation = "Consider dedicated time to talk through the areas that scored low."
		}
		return assessment, recommendation
	}
}
