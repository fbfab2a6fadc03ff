package retrieval

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/omkar2816/Legal-RAG-System/internal/lexicon"
	"github.com/omkar2816/Legal-RAG-System/internal/metrics"
	"github.com/omkar2816/Legal-RAG-System/internal/models"
	"github.com/omkar2816/Legal-RAG-System/internal/query"
	"github.com/omkar2816/Legal-RAG-System/internal/ranking"
	"github.com/omkar2816/Legal-RAG-System/internal/vectorstore"
	"github.com/omkar2816/Legal-RAG-System/pkg/utils"
)

// Engine runs the full hybrid retrieval pipeline for a raw query: question
// splitting, normalization, intent classification, variant expansion,
// parallel semantic search, keyword scoring, fusion, adaptive threshold
// filtering, and the keyword anchoring fallback.
type Engine struct {
	cfg        *Config
	normalizer *query.Normalizer
	splitter   func(models.RawInput) []string
	intents    *query.IntentClassifier
	keywords   *query.KeywordExtractor
	expander   *query.Expander

	semantic   *SemanticSearcher
	fallback   *KeywordAnchor
	kwScorer   *ranking.KeywordScorer
	structural *ranking.StructuralRanker
	thresholds *ranking.ThresholdCalculator
	fusion     *ranking.Fusion

	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New wires the pipeline from its dependencies. A nil lexicon falls back to
// the built-in domain lexicon; a nil metrics receiver disables
// instrumentation.
func New(
	cfg *Config,
	lex *lexicon.Lexicon,
	searcher *SemanticSearcher,
	fallback *KeywordAnchor,
	logger *zap.Logger,
	m *metrics.Metrics,
) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if lex == nil {
		lex = lexicon.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:        cfg,
		normalizer: query.NewNormalizer(lex),
		splitter:   query.SplitQuestions,
		intents:    query.NewIntentClassifier(lex),
		keywords:   query.NewKeywordExtractor(lex),
		expander:   query.NewExpander(lex),
		semantic:   searcher,
		fallback:   fallback,
		kwScorer:   ranking.NewKeywordScorer(&cfg.Ranking),
		structural: ranking.NewStructuralRanker(lex),
		thresholds: ranking.NewThresholdCalculator(&cfg.Ranking),
		fusion:     ranking.NewFusion(&cfg.Ranking, lex),
		logger:     logger,
		metrics:    m,
	}
}

// Retrieve answers a raw query, splitting it into sub-questions and running
// the pipeline once per question. A non-empty filter restricts both the
// semantic search and the keyword anchoring scan to matching passages. The
// whole request runs under a single end-to-end deadline; the caller always
// receives a (possibly empty) ranked list, never an error for empty
// results.
func (e *Engine) Retrieve(ctx context.Context, raw models.RawInput, topK int, filter vectorstore.Filter) (*models.RetrievalResponse, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()

	if topK <= 0 {
		topK = e.cfg.TopK
	}
	if raw.Kind != models.InputText || raw.Text == "" {
		e.logger.Warn("malformed query input, degrading to fallback question",
			zap.Int("kind", int(raw.Kind)),
			zap.String("text", utils.Truncate(raw.Text, 80)))
	}

	questions := e.splitter(raw)
	results := make([]*models.QuestionResult, 0, len(questions))
	for _, q := range questions {
		if ctx.Err() != nil {
			// Deadline exceeded: return what has been accumulated.
			break
		}
		results = append(results, e.retrieveQuestion(ctx, q, topK, filter))
	}

	return &models.RetrievalResponse{
		RequestID:   uuid.NewString(),
		Query:       raw.Text,
		Results:     results,
		QueryTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// QuestionAnalysis is the per-question breakdown returned by Analyze.
type QuestionAnalysis struct {
	Question   string                `json:"question"`
	Normalized string                `json:"normalized"`
	Intent     models.IntentProfile  `json:"intent"`
	Keywords   []string              `json:"keywords"`
	Variants   []models.QueryVariant `json:"variants"`
}

// Analyze runs the query analysis stages without touching the vector
// store. Useful for inspecting how a query will be interpreted.
func (e *Engine) Analyze(raw models.RawInput) []QuestionAnalysis {
	questions := e.splitter(raw)
	analyses := make([]QuestionAnalysis, 0, len(questions))
	for _, q := range questions {
		normalized := e.normalizer.Normalize(q)
		intent := e.intents.Classify(normalized)
		analyses = append(analyses, QuestionAnalysis{
			Question:   q,
			Normalized: normalized,
			Intent:     intent,
			Keywords:   e.keywords.Extract(normalized),
			Variants:   e.expander.Expand(normalized, intent),
		})
	}
	return analyses
}

// retrieveQuestion runs the pipeline for one sub-question.
func (e *Engine) retrieveQuestion(ctx context.Context, question string, topK int, filter vectorstore.Filter) *models.QuestionResult {
	start := time.Now()

	normalized := e.normalizer.Normalize(question)
	intent := e.intents.Classify(normalized)
	keywords := e.keywords.Extract(normalized)
	variants := e.expander.Expand(normalized, intent)

	result := &models.QuestionResult{
		Question: question,
		Intent:   intent,
		Method:   "none",
	}

	matches, err := e.semantic.Search(ctx, variants, topK, filter)
	if err != nil && !errors.Is(err, ErrAllVariantsFailed) {
		e.logger.Error("semantic search failed", zap.Error(err))
	}

	candidates := e.scoreMatches(matches, normalized, keywords, intent)
	survivors := e.filterByThreshold(candidates)

	if len(survivors) < e.cfg.MinResultsRequired && len(candidates) > 0 {
		survivors = e.relaxAndRefilter(candidates)
	}

	if len(survivors) == 0 && e.cfg.KeywordAnchoringEnabled() {
		e.metrics.FallbackTriggered()
		anchored, err := e.fallback.Anchor(ctx, keywords, filter)
		if err != nil {
			e.logger.Error("keyword anchoring failed", zap.Error(err))
		}
		if len(anchored) > 0 {
			result.Candidates = anchored
			result.Method = string(models.MethodKeywordAnchoring)
		}
	} else if len(survivors) > 0 {
		if len(survivors) > topK {
			survivors = survivors[:topK]
		}
		result.Candidates = survivors
		result.Method = string(models.MethodSemantic)
	}

	if result.Candidates == nil {
		result.Candidates = []*models.Candidate{}
	}
	e.metrics.ObserveRetrieval(result.Method, len(result.Candidates), time.Since(start))
	e.logger.Info("question retrieved",
		zap.String("question", utils.Truncate(question, 120)),
		zap.String("intent", intent.Primary),
		zap.String("method", result.Method),
		zap.Int("candidates", len(result.Candidates)),
		zap.Duration("took", time.Since(start)))
	return result
}

// scoreMatches converts pooled matches into fully scored, sorted
// candidates.
func (e *Engine) scoreMatches(matches []vectorstore.Match, normalized string, keywords []string, intent models.IntentProfile) []*models.Candidate {
	candidates := make([]*models.Candidate, 0, len(matches))
	scored := make([]models.Candidate, 0, len(matches))
	for _, m := range matches {
		cand := semanticCandidate(m)
		if cand.Text == "" {
			continue
		}
		cand.KeywordScore, cand.KeywordMatches = e.kwScorer.Score(
			cand.Text, cand.DocTitle, cand.SectionTitle, keywords)
		cand.StructuralTier = e.structural.Rank(cand.Text, normalized)
		scored = append(scored, *cand)
	}
	e.fusion.Rerank(scored, intent)
	for i := range scored {
		candidates = append(candidates, &scored[i])
	}
	return candidates
}

// filterByThreshold applies the per-candidate adaptive threshold over the
// batch score distribution. The distribution is computed once, before any
// filtering, so every candidate sees the same statistics.
func (e *Engine) filterByThreshold(candidates []*models.Candidate) []*models.Candidate {
	if len(candidates) == 0 {
		return nil
	}
	allScores := make([]float64, len(candidates))
	for i, c := range candidates {
		allScores[i] = c.CombinedScore
	}

	base := e.cfg.Ranking.BaseThreshold
	var survivors []*models.Candidate
	for _, c := range candidates {
		threshold := e.thresholds.Effective(c.CombinedScore, base, allScores)
		c.ThresholdUsed = threshold
		if c.CombinedScore >= threshold {
			survivors = append(survivors, c)
		}
	}
	return survivors
}

// relaxAndRefilter lowers the threshold once to meet the minimum result
// requirement: the relaxed threshold is the smaller of the lowest observed
// score and half the base threshold. At most one retry per request.
func (e *Engine) relaxAndRefilter(candidates []*models.Candidate) []*models.Candidate {
	minScore := math.Inf(1)
	for _, c := range candidates {
		if c.CombinedScore < minScore {
			minScore = c.CombinedScore
		}
	}
	base := e.cfg.Ranking.BaseThreshold
	relaxed := math.Min(minScore, base*0.5)

	e.metrics.ThresholdRelaxed()
	e.logger.Info("relaxing threshold to meet minimum results",
		zap.Float64("base", base),
		zap.Float64("relaxed", relaxed))

	recorded := utils.Clamp(relaxed, e.cfg.Ranking.MinSimilarity, e.cfg.Ranking.HighSimilarity)
	var survivors []*models.Candidate
	for _, c := range candidates {
		if c.CombinedScore >= relaxed {
			c.ThresholdUsed = recorded
			survivors = append(survivors, c)
		}
	}
	return survivors
}
