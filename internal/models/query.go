// Package models defines core data structures for queries, intents, and
// retrieval candidates.
package models

import "fmt"

// InputKind tags the raw query input at the API boundary. All leniency for
// malformed input lives in CoerceInput; the rest of the pipeline only ever
// sees text.
type InputKind int

const (
	// InputText is a usable query string.
	InputText InputKind = iota
	// InputMissing is a nil or absent query.
	InputMissing
	// InputInvalid is a non-string value received where a query was expected.
	InputInvalid
)

// RawInput is the tagged form of whatever the caller sent as a query.
type RawInput struct {
	Kind InputKind
	Text string
}

// CoerceInput converts an arbitrary decoded value into a RawInput. Strings
// pass through; nil becomes Missing; everything else becomes Invalid with a
// stringified fallback so downstream stages never see a non-string.
func CoerceInput(v any) RawInput {
	switch val := v.(type) {
	case nil:
		return RawInput{Kind: InputMissing}
	case string:
		return RawInput{Kind: InputText, Text: val}
	default:
		return RawInput{Kind: InputInvalid, Text: fmt.Sprintf("%v", val)}
	}
}

// IntentProfile is the classified intent of a query.
type IntentProfile struct {
	Primary    string   `json:"primary"`
	Secondary  []string `json:"secondary,omitempty"`
	Confidence float64  `json:"confidence"`
}

// Intent category names. IntentGeneral is the fallback when no trigger
// phrase matches.
const (
	IntentGeneral      = "general"
	IntentTemporal     = "temporal"
	IntentMonetary     = "monetary"
	IntentDefinitional = "definitional"
	IntentExclusionary = "exclusionary"
	IntentProcedural   = "procedural"
	IntentLimitation   = "limitation"
)

// VariantOrigin records how a query variant was produced.
type VariantOrigin string

const (
	OriginOriginal           VariantOrigin = "original"
	OriginSynonymExpansion   VariantOrigin = "synonym_expansion"
	OriginIntentRewrite      VariantOrigin = "intent_rewrite"
	OriginKeywordCombination VariantOrigin = "keyword_combination"
)

// QueryVariant is one derived search string.
type QueryVariant struct {
	Text   string        `json:"text"`
	Origin VariantOrigin `json:"origin"`
}

// MaxTopK bounds the number of passages a single request can ask for per
// question.
const MaxTopK = 100

// RetrievalRequest is the caller-facing retrieve contract. Query is typed
// any so malformed values reach CoerceInput instead of failing the decode;
// Filter entries are payload equality conditions applied to both retrieval
// paths.
type RetrievalRequest struct {
	Query  any               `json:"query"`
	TopK   int               `json:"top_k,omitempty"`
	Filter map[string]string `json:"filter,omitempty"`
}

// Normalize clamps top_k into the accepted range. Zero is left alone so the
// engine default applies.
func (r *RetrievalRequest) Normalize() {
	if r.TopK < 0 {
		r.TopK = 0
	}
	if r.TopK > MaxTopK {
		r.TopK = MaxTopK
	}
}
