package nlp

import "strings"

const (
	// IntentThreshold is the minimum score a message must reach to be
	// classified. Below it the matcher reports IntentUnknown with zero
	// confidence. Product policy constant.
	IntentThreshold = 0.3

	// substringBoost is the minimum score a pattern receives when it occurs
	// verbatim inside the normalized message.
	substringBoost = 0.8
)

// IntentMatcher scores chat messages against a fixed, ordered intent table
// using lexical word-set overlap. It is a pure function of its inputs: no
// I/O, no locking, safe for concurrent use.
type IntentMatcher struct {
	intents []IntentDefinition
}

// NewIntentMatcher creates an intent matcher over the given table. Table
// order is significant: earlier intents win score ties.
func NewIntentMatcher(intents []IntentDefinition) *IntentMatcher {
	return &IntentMatcher{intents: intents}
}

// Classify returns the best-matching intent for the message and its score.
// Scores below IntentThreshold are overridden to (IntentUnknown, 0).
func (m *IntentMatcher) Classify(message string) (string, float64) {
	normalized := strings.ToLower(message)

	bestIntent := IntentUnknown
	bestScore := 0.0

	for _, intent := range m.intents {
		score := m.scoreIntent(normalized, intent.Patterns)
		if score > bestScore {
			bestScore = score
			bestIntent = intent.Name
		}
	}

	if bestScore < IntentThreshold {
		return IntentUnknown, 0.0
	}

	return bestIntent, bestScore
}

// ResponseTemplate returns the canonical response template for an intent, or
// the fallback text when the intent is not in the table. The first template
// is always chosen so that identical inputs produce identical replies.
func (m *IntentMatcher) ResponseTemplate(intent string) string {
	for _, def := range m.intents {
		if def.Name == intent && len(def.Responses) > 0 {
			return def.Responses[0]
		}
	}
	return "I'm not sure how to help with that. Can you please rephrase your question?"
}

// scoreIntent computes the intent's score: the maximum over its patterns of
// the Jaccard similarity between message and pattern word sets, raised to at
// least substringBoost when the pattern occurs verbatim in the message.
func (m *IntentMatcher) scoreIntent(message string, patterns []string) float64 {
	messageWords := wordSet(message)

	maxScore := 0.0

	for _, pattern := range patterns {
		patternWords := wordSet(strings.ToLower(pattern))

		intersection := 0
		for word := range messageWords {
			if _, ok := patternWords[word]; ok {
				intersection++
			}
		}
		union := len(messageWords) + len(patternWords) - intersection

		if union > 0 {
			score := float64(intersection) / float64(union)
			if score > maxScore {
				maxScore = score
			}
		}

		// Note: punctuation is not stripped, so "balance?" will not match the
		// word "balance". This mirrors the documented matcher contract.
		if strings.Contains(message, strings.ToLower(pattern)) && maxScore < substringBoost {
			maxScore = substringBoost
		}
	}

	return maxScore
}

// wordSet splits on whitespace into a set of words.
func wordSet(s string) map[string]struct{} {
	words := strings.Fields(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
