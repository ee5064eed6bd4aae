package harvest

import (
	"regexp"
	"sort"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanText collapses runs of whitespace to single spaces and trims the
// result. HTML text nodes come in full of newlines and indentation.
func CleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// WordCount returns the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ReadingTime estimates minutes to read s at 200 words per minute,
// always at least 1 for non-empty text.
func ReadingTime(s string) int {
	words := WordCount(s)
	if words == 0 {
		return 0
	}
	return (words + 199) / 200
}

// Summarize truncates text to at most maxLen characters, breaking at a
// word boundary and appending an ellipsis when anything was cut.
func Summarize(s string, maxLen int) string {
	s = CleanText(s)
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	cut := s[:maxLen]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " .,;:") + "..."
}

var stopwords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "also": true,
	"an": true, "and": true, "any": true, "are": true, "as": true,
	"at": true, "be": true, "been": true, "but": true, "by": true,
	"can": true, "could": true, "for": true, "from": true, "had": true,
	"has": true, "have": true, "he": true, "her": true, "his": true,
	"how": true, "in": true, "into": true, "is": true, "it": true,
	"its": true, "just": true, "more": true, "most": true, "not": true,
	"of": true, "on": true, "one": true, "or": true, "other": true,
	"our": true, "out": true, "over": true, "she": true, "so": true,
	"some": true, "than": true, "that": true, "the": true, "their": true,
	"them": true, "then": true, "there": true, "these": true, "they": true,
	"this": true, "to": true, "was": true, "we": true, "were": true,
	"what": true, "when": true, "which": true, "who": true, "will": true,
	"with": true, "would": true, "you": true, "your": true,
}

var wordRe = regexp.MustCompile(`[a-zA-Z][a-zA-Z'\-]{2,}`)

// Keywords returns up to max of the most frequent non-stopword terms in
// s, most frequent first. Ties break alphabetically so output is stable.
func Keywords(s string, max int) []string {
	if max <= 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, w := range wordRe.FindAllString(strings.ToLower(s), -1) {
		if !stopwords[w] {
			counts[w]++
		}
	}
	terms := make([]string, 0, len(counts))
	for w := range counts {
		terms = append(terms, w)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > max {
		terms = terms[:max]
	}
	return terms
}
