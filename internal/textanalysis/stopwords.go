package textanalysis

// stopWords is the set of common English words ignored during tokenization
var stopWords = map[string]struct{}{}

func init() {
	words := []string{
		"a", "an", "the", "and", "or", "but", "in", "on", "at", "to",
		"for", "of", "with", "by", "from", "as", "is", "was", "are",
		"were", "been", "be", "have", "has", "had", "do", "does", "did",
		"will", "would", "could", "should", "may", "might", "must",
		"shall", "can", "need", "dare", "ought", "used", "it", "its",
		"this", "that", "these", "those", "i", "you", "he", "she", "we",
		"they", "what", "which", "who", "when", "where", "why", "how",
		"all", "each", "every", "both", "few", "more", "most", "other",
		"some", "such", "no", "nor", "not", "only", "own", "same", "so",
		"than", "too", "very", "just", "also", "now", "here", "there",
		"then", "once",
	}
	for _, w := range words {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether the given lowercase token is a stop word
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
