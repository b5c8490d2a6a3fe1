package textanalysis

import (
	"math"
	"strings"
)

// SimilarityResult is the outcome of comparing two texts
type SimilarityResult struct {
	CosineSimilarity  float64 `json:"cosine_similarity"`
	JaccardSimilarity float64 `json:"jaccard_similarity"`
	CombinedScore     float64 `json:"similarity_score"`
	IsPlagiarized     bool    `json:"is_plagiarized"`
	Message           string  `json:"message"`
}

// plagiarismThreshold is the combined percentage above which two texts are
// flagged as plagiarized
const plagiarismThreshold = 70.0

// CosineSimilarity computes the cosine of the angle between the raw term
// frequency vectors of the two token lists. Returns 0 when either vector has
// zero magnitude.
func CosineSimilarity(tokens1, tokens2 []string) float64 {
	freq1 := termFrequencies(tokens1)
	freq2 := termFrequencies(tokens2)

	vocabulary := make(map[string]struct{}, len(freq1)+len(freq2))
	for t := range freq1 {
		vocabulary[t] = struct{}{}
	}
	for t := range freq2 {
		vocabulary[t] = struct{}{}
	}

	var dot, norm1, norm2 float64
	for t := range vocabulary {
		a := float64(freq1[t])
		b := float64(freq2[t])
		dot += a * b
		norm1 += a * a
		norm2 += b * b
	}

	if norm1 == 0 || norm2 == 0 {
		return 0
	}
	// single square root keeps identical vectors at exactly 1.0
	return math.Min(dot/math.Sqrt(norm1*norm2), 1)
}

// JaccardSimilarity computes intersection over union of the two token sets.
// Returns 0 when the union is empty.
func JaccardSimilarity(tokens1, tokens2 []string) float64 {
	set1 := make(map[string]struct{}, len(tokens1))
	for _, t := range tokens1 {
		set1[t] = struct{}{}
	}
	set2 := make(map[string]struct{}, len(tokens2))
	for _, t := range tokens2 {
		set2[t] = struct{}{}
	}

	intersection := 0
	for t := range set1 {
		if _, ok := set2[t]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// CheckSimilarity compares two texts and returns percentage scores with a
// plagiarism verdict. Blank input yields a zero result.
func CheckSimilarity(text1, text2 string) SimilarityResult {
	if strings.TrimSpace(text1) == "" || strings.TrimSpace(text2) == "" {
		return SimilarityResult{Message: "One or both texts are empty"}
	}

	tokens1 := Tokenize(text1)
	tokens2 := Tokenize(text2)

	cosine := round2(CosineSimilarity(tokens1, tokens2) * 100)
	jaccard := round2(JaccardSimilarity(tokens1, tokens2) * 100)
	combined := round2((cosine + jaccard) / 2)

	return SimilarityResult{
		CosineSimilarity:  cosine,
		JaccardSimilarity: jaccard,
		CombinedScore:     combined,
		IsPlagiarized:     combined > plagiarismThreshold,
		Message:           similarityMessage(combined / 100),
	}
}

func similarityMessage(score float64) string {
	switch {
	case score > 0.9:
		return "Very high similarity - likely plagiarism"
	case score > 0.7:
		return "High similarity - needs review"
	case score > 0.5:
		return "Moderate similarity - some overlap detected"
	case score > 0.3:
		return "Low similarity - minor overlap"
	default:
		return "Original content"
	}
}

// MatchScore measures the overlap between paper keywords and a reviewer's
// expertise as a Jaccard percentage over the lowercased sets
func MatchScore(paperKeywords, expertise []string) float64 {
	set1 := lowerSet(paperKeywords)
	set2 := lowerSet(expertise)
	if len(set1) == 0 || len(set2) == 0 {
		return 0
	}

	intersection := 0
	for k := range set1 {
		if _, ok := set2[k]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection

	return round2(float64(intersection) / float64(union) * 100)
}

// MatchingKeywords returns the paper keywords present in the expertise list,
// compared case-insensitively, preserving the paper keyword order
func MatchingKeywords(paperKeywords, expertise []string) []string {
	expertiseSet := lowerSet(expertise)
	matches := []string{}
	seen := map[string]struct{}{}
	for _, k := range paperKeywords {
		lower := strings.ToLower(strings.TrimSpace(k))
		if lower == "" {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		if _, ok := expertiseSet[lower]; ok {
			matches = append(matches, k)
			seen[lower] = struct{}{}
		}
	}
	return matches
}

func lowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			set[strings.ToLower(trimmed)] = struct{}{}
		}
	}
	return set
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
