package query

import (
	"strings"
	"unicode"

	"github.com/omkar2816/Legal-RAG-System/internal/models"
)

// minQuestionLength is the shortest fragment kept as a standalone question.
const minQuestionLength = 4

// questionWords open clauses that read as questions.
var questionWords = []string{
	"what", "when", "where", "why", "how", "which", "who", "whom",
	"is", "are", "does", "do", "can", "will", "should", "would",
}

// SplitQuestions splits a raw query that may encode several questions into
// individual question strings. It never fails: the result is always a
// non-empty list of strings, each ending in '?'. Missing, invalid, or empty
// input degrades to a single-element fallback.
func SplitQuestions(in models.RawInput) []string {
	raw := strings.TrimSpace(in.Text)
	if in.Kind != models.InputText || raw == "" {
		return []string{ensureQuestionMark(raw)}
	}

	parts := splitOnSeparators(raw)

	questions := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), ",;")
		p = strings.TrimSpace(p)
		if len(p) < minQuestionLength {
			continue
		}
		questions = append(questions, ensureQuestionMark(p))
	}
	if len(questions) == 0 {
		return []string{ensureQuestionMark(raw)}
	}
	return questions
}

// splitOnSeparators tries each strong separator in precedence order and
// returns the parts from the first one that applies.
func splitOnSeparators(raw string) []string {
	if parts := splitOnComma(raw); len(parts) > 1 {
		return parts
	}
	if strings.Contains(raw, ";") {
		return strings.Split(raw, ";")
	}
	if parts := splitOnAnd(raw); len(parts) > 1 {
		return parts
	}
	if strings.Count(raw, "?") > 1 {
		return strings.SplitAfter(raw, "?")
	}
	return []string{raw}
}

// splitOnComma splits on commas, but only keeps a boundary when the clause
// after it starts with a capital letter or a question word. Other commas are
// treated as ordinary punctuation and the clause is merged back.
func splitOnComma(raw string) []string {
	if !strings.Contains(raw, ",") {
		return []string{raw}
	}
	segments := strings.Split(raw, ",")
	parts := []string{segments[0]}
	for _, seg := range segments[1:] {
		if startsQuestionLike(seg) {
			parts = append(parts, seg)
			continue
		}
		parts[len(parts)-1] += "," + seg
	}
	return parts
}

// splitOnAnd splits on " and " only when both sides read as questions.
func splitOnAnd(raw string) []string {
	lower := strings.ToLower(raw)
	idx := strings.Index(lower, " and ")
	if idx < 0 {
		return []string{raw}
	}
	left, right := raw[:idx], raw[idx+len(" and "):]
	if startsQuestionLike(left) && startsQuestionLike(right) {
		return []string{left, right}
	}
	return []string{raw}
}

// startsQuestionLike reports whether the clause opens with a capital letter
// or a question word.
func startsQuestionLike(clause string) bool {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return false
	}
	first := []rune(clause)[0]
	if unicode.IsUpper(first) {
		return true
	}
	word := strings.ToLower(strings.Fields(clause)[0])
	for _, q := range questionWords {
		if word == q {
			return true
		}
	}
	return false
}

// ensureQuestionMark guarantees the string ends with '?'. Empty input yields
// the bare fallback "?" so callers always get a well-formed question string.
func ensureQuestionMark(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "?") && s != "?" {
		return s
	}
	if s == "" || s == "?" {
		return "?"
	}
	return s + "?"
}
