package ranking

import (
	"regexp"
	"strings"
	"sync"

	"github.com/omkar2816/Legal-RAG-System/pkg/utils"
)

// KeywordScorer scores a passage against a keyword set using keyword
// density, query coverage, and early-position bonuses.
type KeywordScorer struct {
	config *RankingConfig

	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

// NewKeywordScorer creates a new KeywordScorer with the given config.
func NewKeywordScorer(config *RankingConfig) *KeywordScorer {
	if config == nil {
		config = DefaultRankingConfig()
	}
	return &KeywordScorer{
		config:   config,
		patterns: make(map[string]*regexp.Regexp),
	}
}

// Score computes the keyword relevance of a passage in [0, 1] and returns
// the keywords that matched its body. Title and section matches count
// toward coverage but not density or position.
func (s *KeywordScorer) Score(text, title, section string, keywords []string) (float64, []string) {
	if len(keywords) == 0 || text == "" {
		return 0, nil
	}

	textLower := strings.ToLower(text)
	titleLower := strings.ToLower(title)
	sectionLower := strings.ToLower(section)
	totalWords := len(strings.Fields(textLower))

	var bodyMatched []string
	covered := 0
	occurrences := 0
	positionSum := 0.0

	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		re := s.pattern(kw)

		locs := re.FindAllStringIndex(textLower, -1)
		inBody := len(locs) > 0
		inMeta := re.MatchString(titleLower) || re.MatchString(sectionLower)

		if inBody {
			bodyMatched = append(bodyMatched, kw)
			occurrences += len(locs)
			positionSum += 1.0 - float64(locs[0][0])/float64(len(textLower))
		}
		if inBody || inMeta {
			covered++
		}
	}

	if len(bodyMatched) == 0 && covered == 0 {
		return 0, nil
	}

	density := 0.0
	if totalWords > 0 {
		density = float64(occurrences) / float64(totalWords)
	}
	coverage := float64(covered) / float64(len(keywords))
	position := 0.0
	if len(bodyMatched) > 0 {
		position = positionSum / float64(len(bodyMatched))
	}

	score := density*s.config.DensityWeight +
		coverage*s.config.CoverageWeight +
		position*s.config.PositionWeight

	return utils.Clamp(score, 0, 1), bodyMatched
}

// pattern returns a cached whole-word pattern for a keyword. Multiword
// keywords match as a whole phrase.
func (s *KeywordScorer) pattern(keyword string) *regexp.Regexp {
	s.mu.Lock()
	defer s.mu.Unlock()
	if re, ok := s.patterns[keyword]; ok {
		return re
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	s.patterns[keyword] = re
	return re
}
