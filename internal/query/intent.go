package query

import (
	"strings"

	"github.com/omkar2816/Legal-RAG-System/internal/lexicon"
	"github.com/omkar2816/Legal-RAG-System/internal/models"
)

// IntentClassifier assigns a primary intent category to a normalized query
// by counting configured trigger phrases.
type IntentClassifier struct {
	lex *lexicon.Lexicon
}

// NewIntentClassifier creates a classifier over the given lexicon.
func NewIntentClassifier(lex *lexicon.Lexicon) *IntentClassifier {
	return &IntentClassifier{lex: lex}
}

// Classify scores each intent category by the number of trigger phrases
// present in the normalized query. The primary intent is the highest-scoring
// category, ties broken by declaration order. Confidence is
// matched / (1 + best other score), capped at 1.0. With no matches the
// intent is "general" with confidence 0.
func (c *IntentClassifier) Classify(normalized string) models.IntentProfile {
	scores := make([]int, len(c.lex.Intents))
	for i, def := range c.lex.Intents {
		for _, trigger := range def.Triggers {
			if strings.Contains(normalized, trigger) {
				scores[i]++
			}
		}
	}

	best := -1
	for i, s := range scores {
		if s > 0 && (best < 0 || s > scores[best]) {
			best = i
		}
	}
	if best < 0 {
		return models.IntentProfile{Primary: models.IntentGeneral, Confidence: 0}
	}

	maxOther := 0
	var secondary []string
	for i, s := range scores {
		if i == best {
			continue
		}
		if s > maxOther {
			maxOther = s
		}
		if s > 0 {
			secondary = append(secondary, c.lex.Intents[i].Name)
		}
	}

	confidence := float64(scores[best]) / float64(1+maxOther)
	if confidence > 1.0 {
		confidence = 1.0
	}

	return models.IntentProfile{
		Primary:    c.lex.Intents[best].Name,
		Secondary:  secondary,
		Confidence: confidence,
	}
}
