package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/omkar2816/Legal-RAG-System/internal/models"
)

func sampleResponse() *models.RetrievalResponse {
	return &models.RetrievalResponse{
		RequestID: "req-1",
		Query:     "What is the waiting period?",
		Results: []*models.QuestionResult{{
			Question: "What is the waiting period?",
			Intent:   models.IntentProfile{Primary: models.IntentTemporal, Confidence: 0.5},
			Method:   string(models.MethodSemantic),
			Candidates: []*models.Candidate{{
				PassageID:      "p1",
				DocumentID:     "policy-1",
				DocTitle:       "Health Policy",
				SectionTitle:   "Waiting Periods",
				PageNumber:     12,
				Text:           "Pre-existing conditions have a 48-month waiting period",
				SemanticScore:  0.9,
				KeywordScore:   0.6,
				CombinedScore:  0.81,
				StructuralTier: 1,
				Method:         models.MethodSemantic,
			}},
		}},
		QueryTimeMs: 42,
	}
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"text", "compact", "json"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q): %v", valid, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRetrievalResponse(&buf, sampleResponse(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Found 1 passages",
		"intent: temporal",
		"method: semantic",
		"Document: policy-1 (Health Policy)",
		"Section: Waiting Periods | Page: 12",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteCompact(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRetrievalResponse(&buf, sampleResponse(), OutputCompact); err != nil {
		t.Fatal(err)
	}
	line := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(line, "0.8100\tpolicy-1/p1\tsemantic\t") {
		t.Errorf("unexpected compact line: %q", line)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRetrievalResponse(&buf, sampleResponse(), OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.RetrievalResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.RequestID != "req-1" || len(decoded.Results) != 1 {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}
