package ranking

import (
	"math"
	"sort"

	"github.com/omkar2816/Legal-RAG-System/pkg/utils"
)

// ThresholdCalculator derives a per-candidate effective threshold from the
// base threshold and the distribution of all scores in the batch.
type ThresholdCalculator struct {
	config *RankingConfig
}

// NewThresholdCalculator creates a calculator with the given config.
func NewThresholdCalculator(config *RankingConfig) *ThresholdCalculator {
	if config == nil {
		config = DefaultRankingConfig()
	}
	return &ThresholdCalculator{config: config}
}

// Effective returns the threshold a candidate with the given score must
// clear. With adaptive thresholding disabled the base threshold is returned
// unchanged. Otherwise the threshold is adjusted from the batch score
// distribution and the candidate's own score, then clamped to
// [MinSimilarity, HighSimilarity].
func (t *ThresholdCalculator) Effective(score, base float64, allScores []float64) float64 {
	if !t.config.Adaptive() {
		return base
	}

	threshold := base

	if len(allScores) > 1 {
		minScore, maxScore := utils.MinMax(allScores)
		scoreRange := maxScore - minScore
		mean, stdDev := utils.MeanStdDev(allScores)

		if scoreRange > 0.4 {
			// Wide spread: there are good options, be selective.
			if maxScore > t.config.HighSimilarity {
				threshold = math.Max(threshold, mean+stdDev*0.5)
			} else {
				threshold = math.Max(threshold, minScore+scoreRange*0.25)
			}
		} else if scoreRange < 0.2 {
			// Narrow spread: all scores are similar, be lenient.
			threshold = math.Min(threshold, mean-stdDev*0.5)
		}

		switch {
		case score > t.config.HighSimilarity:
			threshold = math.Max(threshold, t.config.MediumSimilarity)
		case score < t.config.MinSimilarity:
			threshold = math.Min(threshold, t.config.MinSimilarity)
		default:
			sorted := append([]float64(nil), allScores...)
			sort.Float64s(sorted)
			percentile := float64(sort.SearchFloat64s(sorted, score)) / float64(len(sorted))
			if percentile > 0.7 {
				threshold = math.Max(threshold, score-0.1)
			} else {
				threshold = math.Min(threshold, score+0.05)
			}
		}
	}

	return utils.Clamp(threshold, t.config.MinSimilarity, t.config.HighSimilarity)
}
