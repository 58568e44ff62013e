package engine

import (
	"math"
	"strings"
	"unicode/utf8"
)

// charsPerToken is the divisor for the character-count token estimate,
// roughly 4 characters per token for typical English text.
const charsPerToken = 4

// EstimateTokens estimates the token count of text using the chars/4
// heuristic. This is a documented estimate, not a model tokenizer; real
// LLM tokenizers will diverge. Empty text returns 0; any non-empty text
// returns at least 1.
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	tokens := n / charsPerToken
	if tokens == 0 {
		return 1
	}
	return tokens
}

// CountWords returns the whitespace-delimited word count of text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// SavingsPercent computes (1 - compressed/original) * 100 rounded to one
// decimal. Returns 0 when the original estimate is 0. Negative values are
// returned as-is so the formula stays consistent when compression expands
// the text.
func SavingsPercent(originalTokens, compressedTokens int) float64 {
	if originalTokens == 0 {
		return 0
	}
	pct := (1 - float64(compressedTokens)/float64(originalTokens)) * 100
	return math.Round(pct*10) / 10
}
