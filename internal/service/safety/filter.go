// Package safety gates outgoing user text before it reaches the language
// model. It is a deliberately simple keyword filter, not a classifier;
// false positives and negatives are an accepted v1 policy.
package safety

import "strings"

// Verdict classifies a message before it is sent to the model.
type Verdict int

const (
	// VerdictSafe allows the model call.
	VerdictSafe Verdict = iota
	// VerdictConcerning flags contextual abuse indicators; the caller should
	// substitute the safety message for the assistant's reply.
	VerdictConcerning
	// VerdictHarmful always short-circuits the model call.
	VerdictHarmful
)

// HarmfulTerms short-circuit to VerdictHarmful on any substring match.
var HarmfulTerms = []string{
	"kill", "suicide", "die", "hurt", "harm", "abuse", "murder", "weapon",
	"gun", "knife", "attack", "hit", "punch", "illegal", "drugs", "assault",
	"molest", "rape",
}

// ConcernTerms only flag when they appear inside one of the phrase
// templates below, so that "control" alone does not trip the filter but
// "my partner controls everything" does.
var ConcernTerms = []string{
	"beat", "control", "afraid", "scared", "terrified", "threatened",
	"stalking", "stalk", "follow", "isolation", "isolate", "humiliate",
	"degrade", "shame", "trapped", "force", "forced",
}

// AbuseIndicators select the stronger of the two safety messages.
var AbuseIndicators = []string{
	"hit", "hurt", "beat", "punch", "slap", "push", "shove", "afraid",
	"scared", "fear", "terrified", "control", "controlling", "threatened",
	"threatening", "threat", "weapon", "gun", "knife",
}

// phraseTemplates pair a concern term with first/second/third person
// possessive context. %s is the term.
var phraseTemplates = []string{
	"my partner %s",
	"%s me",
	"i am %s",
	"they %s",
	"he %s",
	"she %s",
}

const hotlineMessage = `I notice you've mentioned some concerning behaviors that could indicate abuse. Your safety is the top priority.

If you're in immediate danger, please contact emergency services (911 in the US).

The National Domestic Violence Hotline is available 24/7 at 1-800-799-7233 or text START to 88788. They can provide confidential support, information, and referrals.

While I can help with relationship advice, professional support is essential in potentially abusive situations. Would you like to discuss other aspects of your relationship where I might be helpful?`

const concernMessage = "I notice your message mentions potentially concerning topics. As a relationship advisor, I'm here to help with relationship challenges, but I recommend speaking with a mental health professional for issues related to harm or safety. Would you like to discuss a different relationship topic instead?"

// Classify scans text against the term lists. Harmful terms win over
// concern phrases.
func Classify(text string) Verdict {
	lower := strings.ToLower(text)

	for _, term := range HarmfulTerms {
		if strings.Contains(lower, term) {
			return VerdictHarmful
		}
	}

	for _, term := range ConcernTerms {
		if !strings.Contains(lower, term) {
			continue
		}
		for _, tmpl := range phraseTemplates {
			phrase := strings.Replace(tmpl, "%s", term, 1)
			if strings.Contains(lower, phrase) {
				return VerdictConcerning
			}
		}
	}

	return VerdictSafe
}

// IsAppropriate reports whether text may be forwarded to the model at all.
// Concerning text is still "appropriate"; only harmful terms block.
func IsAppropriate(text string) bool {
	return Classify(text) != VerdictHarmful
}

// Message returns the substitute assistant reply for flagged text. A rescan
// against the stricter abuse-indicator list picks the hotline message;
// everything else gets the softer redirect.
func Message(text string) string {
	lower := strings.ToLower(text)

	for _, term := range AbuseIndicators {
		if strings.Contains(lower, term) {
			return hotlineMessage
		}
	}

	return concernMessage
}
