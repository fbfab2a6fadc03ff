package query

import (
	"testing"

	"github.com/omkar2816/Legal-RAG-System/internal/lexicon"
)

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer(lexicon.Default())

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercases and collapses whitespace",
			in:   "  What   IS the\tWaiting Period? ",
			want: "what is the waiting period",
		},
		{
			name: "strips punctuation and folds plurals",
			in:   "coverage, exclusions & claims!",
			want: "coverage exclusion claim",
		},
		{
			name: "domain synonym substitution",
			in:   "what is the waiting time for coverage",
			want: "what is the waiting period for coverage",
		},
		{
			name: "hyphenated term canonicalized",
			in:   "pre-existing conditions",
			want: "preexisting conditions",
		},
		{
			name: "misspelling corrected",
			in:   "what is the deductable",
			want: "what is the deductible",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	n := NewNormalizer(lexicon.Default())

	inputs := []string{
		"What is the waiting time for pre-existing conditions?",
		"How much does the premium cost?",
		"exclusion period;; wait period",
		"",
		"plain words with no domain terms",
		"48-month waiting period!!!",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
