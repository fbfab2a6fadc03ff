package query

import (
	"testing"

	"github.com/omkar2816/Legal-RAG-System/internal/lexicon"
	"github.com/omkar2816/Legal-RAG-System/internal/models"
)

func TestIntentClassifier_Classify(t *testing.T) {
	c := NewIntentClassifier(lexicon.Default())

	tests := []struct {
		name        string
		query       string
		wantPrimary string
		wantZero    bool
	}{
		{
			name:        "temporal query",
			query:       "how long is the waiting period",
			wantPrimary: models.IntentTemporal,
		},
		{
			name:        "monetary query",
			query:       "how much is the claim amount",
			wantPrimary: models.IntentMonetary,
		},
		{
			name:        "definitional query",
			query:       "what is a deductible",
			wantPrimary: models.IntentDefinitional,
		},
		{
			name:        "exclusionary query",
			query:       "what is not covered by this policy",
			wantPrimary: models.IntentExclusionary,
		},
		{
			name:        "no triggers means general",
			query:       "policy renewal terms",
			wantPrimary: models.IntentGeneral,
			wantZero:    true,
		},
		{
			name:        "empty query",
			query:       "",
			wantPrimary: models.IntentGeneral,
			wantZero:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.query)
			if got.Primary != tt.wantPrimary {
				t.Errorf("Classify(%q).Primary = %q, want %q", tt.query, got.Primary, tt.wantPrimary)
			}
			if tt.wantZero && got.Confidence != 0 {
				t.Errorf("Classify(%q).Confidence = %v, want 0", tt.query, got.Confidence)
			}
			if !tt.wantZero && (got.Confidence <= 0 || got.Confidence > 1) {
				t.Errorf("Classify(%q).Confidence = %v, want in (0,1]", tt.query, got.Confidence)
			}
		})
	}
}

func TestIntentClassifier_TieBreaksByDeclarationOrder(t *testing.T) {
	c := NewIntentClassifier(lexicon.Default())

	// "how long" (temporal) and "how much" (monetary) each match once;
	// temporal is declared first and must win.
	got := c.Classify("how long and how much")
	if got.Primary != models.IntentTemporal {
		t.Errorf("Primary = %q, want %q", got.Primary, models.IntentTemporal)
	}
	if len(got.Secondary) == 0 {
		t.Error("expected monetary as a secondary intent")
	}
}
