package ranking

import (
	"math"
	"reflect"
	"testing"
)

func TestKeywordScorer_Score(t *testing.T) {
	s := NewKeywordScorer(nil)

	tests := []struct {
		name        string
		text        string
		title       string
		section     string
		keywords    []string
		wantScore   float64
		wantMatches []string
	}{
		{
			name:     "no keywords",
			text:     "some passage text",
			keywords: nil,
		},
		{
			name:     "no matches anywhere",
			text:     "nothing relevant here",
			keywords: []string{"premium"},
		},
		{
			name:     "whole word matching rejects substrings",
			text:     "the claimant filed paperwork",
			keywords: []string{"claim"},
		},
		{
			name:        "single keyword at text start",
			text:        "premium payment details",
			keywords:    []string{"premium"},
			wantScore:   1.0/3.0*0.4 + 1.0*0.4 + 1.0*0.2,
			wantMatches: []string{"premium"},
		},
		{
			name:      "title match counts toward coverage only",
			text:      "general terms apply",
			title:     "Premium Schedule",
			keywords:  []string{"premium", "deductible"},
			wantScore: 0.5 * 0.4,
		},
		{
			name:        "multiword keyword matches as a phrase",
			text:        "a waiting period of 48 months applies",
			keywords:    []string{"waiting period"},
			wantScore:   1.0/7.0*0.4 + 1.0*0.4 + (1.0-2.0/37.0)*0.2,
			wantMatches: []string{"waiting period"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, matches := s.Score(tt.text, tt.title, tt.section, tt.keywords)
			if math.Abs(score-tt.wantScore) > 1e-9 {
				t.Errorf("score = %v, want %v", score, tt.wantScore)
			}
			if !reflect.DeepEqual(matches, tt.wantMatches) {
				t.Errorf("matches = %v, want %v", matches, tt.wantMatches)
			}
			if score < 0 || score > 1 {
				t.Errorf("score %v outside [0, 1]", score)
			}
		})
	}
}
