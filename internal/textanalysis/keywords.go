package textanalysis

import "sort"

// ExtractKeywords returns up to maxKeywords of the most frequent tokens
// longer than 3 characters, ordered by frequency then alphabetically
func ExtractKeywords(text string, maxKeywords int) []string {
	freq := map[string]int{}
	for _, t := range Tokenize(text) {
		if len(t) > 3 {
			freq[t]++
		}
	}

	keywords := make([]string, 0, len(freq))
	for t := range freq {
		keywords = append(keywords, t)
	}
	sort.Slice(keywords, func(a, b int) bool {
		if freq[keywords[a]] != freq[keywords[b]] {
			return freq[keywords[a]] > freq[keywords[b]]
		}
		return keywords[a] < keywords[b]
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}
