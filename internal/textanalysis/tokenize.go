package textanalysis

import (
	"regexp"
	"strings"
)

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// Tokenize lowercases the text, strips punctuation and returns the remaining
// words with stop words and tokens of length <= 2 removed
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	cleaned := nonWordPattern.ReplaceAllString(lowered, " ")

	tokens := []string{}
	for _, field := range strings.Fields(cleaned) {
		if len(field) <= 2 {
			continue
		}
		if IsStopWord(field) {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// termFrequencies counts occurrences of each token
func termFrequencies(tokens []string) map[string]int {
	freq := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freq[t]++
	}
	return freq
}
