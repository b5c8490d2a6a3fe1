package textanalysis

import (
	"regexp"
	"sort"
	"strings"
)

// sentenceEndPattern matches a run of terminal punctuation followed by
// whitespace. Sentences are split after the punctuation run.
var sentenceEndPattern = regexp.MustCompile(`[.!?]+\s+`)

// splitSentences breaks the text into sentences, keeping terminal punctuation
// attached and dropping fragments of length <= 20
func splitSentences(text string) []string {
	var sentences []string
	rest := text
	for {
		loc := sentenceEndPattern.FindStringIndex(rest)
		if loc == nil {
			break
		}
		// cut after the punctuation run, before the whitespace
		end := loc[0]
		for end < loc[1] && (rest[end] == '.' || rest[end] == '!' || rest[end] == '?') {
			end++
		}
		sentences = append(sentences, rest[:end])
		rest = rest[loc[1]:]
	}
	if rest != "" {
		sentences = append(sentences, rest)
	}

	kept := []string{}
	for _, s := range sentences {
		trimmed := strings.TrimSpace(s)
		if len(trimmed) > 20 {
			kept = append(kept, trimmed)
		}
	}
	return kept
}

// Summarize produces an extractive summary of at most maxSentences sentences.
// Sentences are scored by the mean term frequency of their tokens and the
// top scorers are returned in their original order. Ties on score keep the
// earlier sentence. Texts at or under the limit are returned unchanged.
func Summarize(text string, maxSentences int) string {
	sentences := splitSentences(text)
	if len(sentences) <= maxSentences {
		return text
	}

	totalTokens := 0
	sentenceTokens := make([][]string, len(sentences))
	for i, s := range sentences {
		sentenceTokens[i] = Tokenize(s)
		totalTokens += len(sentenceTokens[i])
	}
	if totalTokens == 0 {
		return text
	}

	freq := map[string]int{}
	for _, tokens := range sentenceTokens {
		for _, t := range tokens {
			freq[t]++
		}
	}

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, tokens := range sentenceTokens {
		var sum float64
		for _, t := range tokens {
			sum += float64(freq[t]) / float64(totalTokens)
		}
		score := 0.0
		if len(tokens) > 0 {
			score = sum / float64(len(tokens))
		}
		ranked[i] = scored{index: i, score: score}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return ranked[a].index < ranked[b].index
	})

	selected := make([]int, 0, maxSentences)
	for _, r := range ranked[:maxSentences] {
		selected = append(selected, r.index)
	}
	sort.Ints(selected)

	parts := make([]string, 0, len(selected))
	for _, idx := range selected {
		parts = append(parts, sentences[idx])
	}
	return strings.Join(parts, " ")
}
