package splitter

import (
	"strings"
	"unicode"
)

// QualityScorer: a weighted confidence score per assembled chapter. The
// tiers and weights are empirically tuned production values; they are
// preserved as configurable defaults, not derived constants.

const (
	repetitionSampleChars = 500
	repetitionMaxFraction = 0.3
	maxTitleLength        = 100
)

// Score computes a chapter's confidence in [0,1]. Pure function over the
// assembled chapter data.
func Score(ch Chapter, w ScoreWeights) float64 {
	score := 0.0

	// Content length tiers.
	switch {
	case ch.WordCount > 2000:
		score += w.Length
	case ch.WordCount > 1000:
		score += w.Length * (0.20 / 0.30)
	case ch.WordCount > 500:
		score += w.Length * (0.10 / 0.30)
	}

	// Sentence density via terminator count.
	sentences := strings.Count(ch.Content, ".") +
		strings.Count(ch.Content, "!") +
		strings.Count(ch.Content, "?")
	switch {
	case sentences > 20:
		score += w.Sentences
	case sentences > 10:
		score += w.Sentences * (0.15 / 0.25)
	case sentences > 5:
		score += w.Sentences * (0.05 / 0.25)
	}

	if validTitle(ch.Title) {
		score += w.Title
	}

	// A chapter starting at offset 0 is usually the degenerate fallback,
	// not a located heading.
	if ch.bodyPosition > 0 {
		score += w.Position
	}

	if !excessiveRepetition(ch.Content) {
		score += w.Repetition
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// validTitle rejects empty, overlong, purely numeric, and long all-caps
// titles (the latter are usually captured page headers).
func validTitle(title string) bool {
	trimmed := strings.TrimSpace(title)
	if len(trimmed) < 3 || len(trimmed) > maxTitleLength {
		return false
	}
	if isAllDigits(trimmed) {
		return false
	}
	if len(trimmed) > 10 && trimmed == strings.ToUpper(trimmed) && strings.ToLower(trimmed) != trimmed {
		return false
	}
	return true
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// excessiveRepetition samples the first 500 characters and flags content
// where a single token dominates — the signature of OCR or extraction
// garbage.
func excessiveRepetition(content string) bool {
	sample := content
	if len(sample) > repetitionSampleChars {
		sample = sample[:repetitionSampleChars]
	}
	words := strings.Fields(sample)
	if len(words) < 10 {
		return true
	}

	counts := make(map[string]int, len(words))
	maxCount := 0
	for _, w := range words {
		counts[w]++
		if counts[w] > maxCount {
			maxCount = counts[w]
		}
	}
	return float64(maxCount) > float64(len(words))*repetitionMaxFraction
}
