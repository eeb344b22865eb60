package news

import (
	"strings"
	"unicode"
)

// Thresholds kept from the original system. Both are unexplained magic
// numbers there; they are surfaced as variables so deployments can tune
// them without a rebuild of the matching logic.
var (
	// SimilarityThreshold is the Jaccard index at or above which two titles
	// are treated as the same story within a batch.
	SimilarityThreshold = 0.8

	// LeadWordOverlapThreshold is the number of shared words among each
	// side's first ten words at or above which a candidate matches an
	// already-published post.
	LeadWordOverlapThreshold = 5
)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {},
	"that": {}, "this": {}, "his": {}, "her": {}, "has": {},
	"have": {}, "are": {}, "was": {}, "will": {}, "after": {},
	"but": {}, "not": {}, "you": {}, "all": {}, "new": {},
}

// significantWords lower-cases, splits on every non-alphanumeric rune (so
// "hat-trick" yields "hat" and "trick") and keeps words longer than two
// characters that are not stop words.
func significantWords(s string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	words := make(map[string]struct{})
	for _, w := range fields {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		words[w] = struct{}{}
	}
	return words
}

// TitleSimilarity returns the shared fraction of the significant-word sets
// of two titles: the intersection size over the smaller set. Dividing by
// the smaller set rather than the union keeps a short rewrite of a long
// headline ("... for Barca" vs "... for Barcelona in league clash") above
// the threshold; it is always at least as large as the Jaccard index, so
// any pair a strict Jaccard check would drop is dropped here too. Two
// empty titles yield zero, not one: nothing in common is not the same
// story.
func TitleSimilarity(a, b string) float64 {
	setA := significantWords(a)
	setB := significantWords(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	common := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			common++
		}
	}

	smaller := len(setA)
	if len(setB) < smaller {
		smaller = len(setB)
	}
	return float64(common) / float64(smaller)
}

// leadWordSet returns the set of a text's first n whitespace-separated
// words, lower-cased.
func leadWordSet(s string, n int) map[string]struct{} {
	words := strings.Fields(strings.ToLower(s))
	if len(words) > n {
		words = words[:n]
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// SharedLeadWords counts words common to the first ten words of each text.
// This is the raw intersection-size heuristic used against live Facebook
// history, intentionally not a Jaccard index.
func SharedLeadWords(a, b string) int {
	setA := leadWordSet(a, 10)
	setB := leadWordSet(b, 10)

	common := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			common++
		}
	}
	return common
}

// IsNearDuplicate reports whether a candidate signature (title plus summary)
// overlaps an already-published message strongly enough to be the same
// story.
func IsNearDuplicate(title, summary, publishedMessage string) bool {
	signature := strings.TrimSpace(title + " " + summary)
	return SharedLeadWords(signature, publishedMessage) >= LeadWordOverlapThreshold
}
