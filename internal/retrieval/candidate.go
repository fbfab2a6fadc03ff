package retrieval

import (
	"github.com/omkar2816/Legal-RAG-System/internal/models"
	"github.com/omkar2816/Legal-RAG-System/internal/vectorstore"
)

// Payload keys written at ingestion time and read back on every retrieval.
const (
	payloadDocID        = "doc_id"
	payloadDocTitle     = "doc_title"
	payloadText         = "text"
	payloadSectionTitle = "section_title"
	payloadPageNumber   = "page_number"
	payloadWordCount    = "word_count"
)

// candidateFromPayload builds a Candidate from a stored passage payload.
// Missing fields degrade to zero values; the page number falls back to the
// unknown sentinel.
func candidateFromPayload(id string, payload map[string]any) *models.Candidate {
	c := &models.Candidate{
		PassageID:  id,
		PageNumber: models.PageUnknown,
	}
	if payload == nil {
		return c
	}
	c.DocumentID, _ = payload[payloadDocID].(string)
	c.DocTitle, _ = payload[payloadDocTitle].(string)
	c.Text, _ = payload[payloadText].(string)
	c.SectionTitle, _ = payload[payloadSectionTitle].(string)
	if page, ok := toInt(payload[payloadPageNumber]); ok {
		c.PageNumber = page
	}
	if wc, ok := toInt(payload[payloadWordCount]); ok {
		c.WordCount = wc
	}
	return c
}

// toInt accepts the integer encodings that survive JSON and Qdrant payload
// round trips.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// semanticCandidate builds a Candidate from a similarity match.
func semanticCandidate(m vectorstore.Match) *models.Candidate {
	c := candidateFromPayload(m.ID, m.Payload)
	c.SemanticScore = m.Score
	c.Method = models.MethodSemantic
	return c
}
