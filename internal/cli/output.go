// Package cli provides output formatting for the legalrag command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/omkar2816/Legal-RAG-System/internal/models"
	"github.com/omkar2816/Legal-RAG-System/pkg/utils"
)

// OutputFormat is the format for result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact is one candidate per line.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseFormat maps a flag value to an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch s {
	case "text":
		return OutputText, nil
	case "compact":
		return OutputCompact, nil
	case "json":
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text, compact, or json", s)
	}
}

// WriteRetrievalResponse writes a retrieval response to w in the given
// format. Use OutputJSON for parseable output consumable by other apps.
func WriteRetrievalResponse(w io.Writer, response *models.RetrievalResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		writeCompact(w, response)
		return nil
	default:
		writeText(w, response)
		return nil
	}
}

func writeText(w io.Writer, response *models.RetrievalResponse) {
	total := 0
	for _, result := range response.Results {
		total += len(result.Candidates)
	}
	fmt.Fprintf(w, "\nFound %d passages across %d question(s) in %dms\n",
		total, len(response.Results), response.QueryTimeMs)
	for _, result := range response.Results {
		fmt.Fprintf(w, "\nQ: %s\n", result.Question)
		fmt.Fprintf(w, "intent: %s (%.2f) | method: %s\n",
			result.Intent.Primary, result.Intent.Confidence, result.Method)
		for rank, c := range result.Candidates {
			writeOneCandidate(w, rank+1, c)
		}
		if len(result.Candidates) == 0 {
			fmt.Fprintln(w, "  (no passages above threshold)")
		}
	}
}

func writeOneCandidate(w io.Writer, rank int, c *models.Candidate) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | Score: %.4f (Semantic: %.4f, Keyword: %.4f) | Tier: %d\n",
		rank, c.CombinedScore, c.SemanticScore, c.KeywordScore, c.StructuralTier)
	fmt.Fprintf(w, "Document: %s", c.DocumentID)
	if c.DocTitle != "" {
		fmt.Fprintf(w, " (%s)", c.DocTitle)
	}
	fmt.Fprintln(w)
	if c.SectionTitle != "" {
		fmt.Fprintf(w, "Section: %s", c.SectionTitle)
		if c.PageNumber != models.PageUnknown {
			fmt.Fprintf(w, " | Page: %d", c.PageNumber)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\n%s\n\n", utils.Truncate(c.Text, 200))
}

func writeCompact(w io.Writer, response *models.RetrievalResponse) {
	for _, result := range response.Results {
		for _, c := range result.Candidates {
			fmt.Fprintf(w, "%.4f\t%s\t%s\t%s\n",
				c.CombinedScore, c.Key(), result.Method, utils.Truncate(c.Text, 80))
		}
	}
}
