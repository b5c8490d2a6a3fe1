package service

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	"confms/internal/models"
	"confms/internal/repository"
	"confms/internal/textanalysis"
)

// ReviewerCandidate is one reviewer considered for matching
type ReviewerCandidate struct {
	ReviewerID   string   `json:"reviewer_id"`
	ReviewerName string   `json:"name"`
	Expertise    []string `json:"expertise"`
}

// ReviewerMatch is a scored reviewer candidate
type ReviewerMatch struct {
	ReviewerID       string   `json:"reviewer_id"`
	ReviewerName     string   `json:"reviewer_name"`
	MatchScore       float64  `json:"match_score"`
	MatchingKeywords []string `json:"matching_keywords"`
}

// PlagiarismMatch is one corpus document compared against the checked text
type PlagiarismMatch struct {
	PaperID       uint    `json:"paper_id"`
	Title         string  `json:"title"`
	CombinedScore float64 `json:"combined_score"`
	IsPlagiarized bool    `json:"is_plagiarized"`
	Message       string  `json:"message"`
}

// PlagiarismReport is the outcome of a corpus-wide plagiarism check
type PlagiarismReport struct {
	PaperID          uint              `json:"paper_id"`
	DocumentsChecked int               `json:"documents_checked"`
	MaxScore         float64           `json:"max_score"`
	IsPlagiarized    bool              `json:"is_plagiarized"`
	Matches          []PlagiarismMatch `json:"matches"`
}

// excerptLimit caps how much submission text is kept for future checks
const excerptLimit = 4000

// AnalysisService implements reviewer matching and corpus plagiarism checks
type AnalysisService struct {
	excerptRepo *repository.ExcerptRepository
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(excerptRepo *repository.ExcerptRepository) *AnalysisService {
	return &AnalysisService{excerptRepo: excerptRepo}
}

// MatchReviewers scores each candidate against the paper keywords and returns
// them ordered by score descending. Ties keep the input order, so the first
// element is the best match.
func (s *AnalysisService) MatchReviewers(paperKeywords []string, candidates []ReviewerCandidate) []ReviewerMatch {
	matches := make([]ReviewerMatch, 0, len(candidates))
	for _, candidate := range candidates {
		matches = append(matches, ReviewerMatch{
			ReviewerID:       candidate.ReviewerID,
			ReviewerName:     candidate.ReviewerName,
			MatchScore:       textanalysis.MatchScore(paperKeywords, candidate.Expertise),
			MatchingKeywords: textanalysis.MatchingKeywords(paperKeywords, candidate.Expertise),
		})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].MatchScore > matches[b].MatchScore
	})

	return matches
}

// CheckPlagiarism compares the text of a submission against all other stored
// excerpts and records the submission's own excerpt for future checks
func (s *AnalysisService) CheckPlagiarism(ctx context.Context, paperID uint, title, text string) (*PlagiarismReport, error) {
	others, err := s.excerptRepo.ListOthers(ctx, paperID)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus for paper %d: %w", paperID, err)
	}

	report := &PlagiarismReport{
		PaperID:          paperID,
		DocumentsChecked: len(others),
		Matches:          []PlagiarismMatch{},
	}

	for _, other := range others {
		result := textanalysis.CheckSimilarity(text, other.Excerpt)
		report.Matches = append(report.Matches, PlagiarismMatch{
			PaperID:       other.PaperID,
			Title:         other.Title,
			CombinedScore: result.CombinedScore,
			IsPlagiarized: result.IsPlagiarized,
			Message:       result.Message,
		})
		if result.CombinedScore > report.MaxScore {
			report.MaxScore = result.CombinedScore
		}
		if result.IsPlagiarized {
			report.IsPlagiarized = true
		}
	}

	sort.SliceStable(report.Matches, func(a, b int) bool {
		return report.Matches[a].CombinedScore > report.Matches[b].CombinedScore
	})

	if _, err := s.excerptRepo.Upsert(ctx, &models.SubmissionExcerpt{
		PaperID: paperID,
		Title:   title,
		Excerpt: truncateExcerpt(text),
	}); err != nil {
		return nil, fmt.Errorf("failed to store excerpt for paper %d: %w", paperID, err)
	}

	return report, nil
}

// truncateExcerpt caps the stored text at excerptLimit bytes without cutting
// through a multi-byte rune
func truncateExcerpt(text string) string {
	if len(text) <= excerptLimit {
		return text
	}
	cut := excerptLimit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
