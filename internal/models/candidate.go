package models

// RetrievalMethod records which path produced a candidate.
type RetrievalMethod string

const (
	// MethodSemantic marks candidates from the vector-similarity path.
	MethodSemantic RetrievalMethod = "semantic"
	// MethodKeywordAnchoring marks candidates from the full-corpus keyword
	// fallback.
	MethodKeywordAnchoring RetrievalMethod = "keyword_anchoring"
)

// PageUnknown is the sentinel page number for passages without one.
const PageUnknown = -1

// Candidate is a scored, ranked passage produced during one retrieval
// request. Candidates are request-scoped and never persisted.
type Candidate struct {
	PassageID      string          `json:"passage_id"`
	DocumentID     string          `json:"document_id"`
	Text           string          `json:"text"`
	DocTitle       string          `json:"doc_title"`
	SectionTitle   string          `json:"section_title"`
	PageNumber     int             `json:"page_number"`
	WordCount      int             `json:"word_count"`
	SemanticScore  float64         `json:"semantic_score"`
	KeywordScore   float64         `json:"keyword_score"`
	KeywordMatches []string        `json:"keyword_matches,omitempty"`
	StructuralTier int             `json:"structural_tier"`
	CombinedScore  float64         `json:"combined_score"`
	ThresholdUsed  float64         `json:"threshold_used"`
	Method         RetrievalMethod `json:"retrieval_method"`
}

// Key identifies a passage across variant result sets for deduplication.
func (c *Candidate) Key() string {
	return c.DocumentID + "/" + c.PassageID
}

// QuestionResult is the ranked candidate list for one sub-question.
type QuestionResult struct {
	Question   string        `json:"question"`
	Intent     IntentProfile `json:"intent"`
	Candidates []*Candidate  `json:"candidates"`
	// Method indicates which retrieval path produced the candidates:
	// "semantic", "keyword_anchoring", or "none" when nothing was found.
	Method string `json:"method"`
}

// RetrievalResponse is the caller-facing response: one QuestionResult per
// detected sub-question, best-first within each.
type RetrievalResponse struct {
	RequestID   string            `json:"request_id"`
	Query       string            `json:"query"`
	Results     []*QuestionResult `json:"results"`
	QueryTimeMs int64             `json:"query_time_ms"`
}
