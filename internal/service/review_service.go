package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"confms/internal/email"
	"confms/internal/models"
	"confms/internal/repository"
)

// anonymousUserIDs are external ids treated as "no identity"
func isAnonymousUserID(userID string) bool {
	return userID == "" || userID == "0"
}

// anonymousReviewerID keys the single reviewer row shared by all submissions
// without identity
const anonymousReviewerID = "anonymous"

// SubmitReviewInput carries a reviewer's scores for one paper
type SubmitReviewInput struct {
	NoveltyScore         int
	MethodologyScore     int
	PresentationScore    int
	CommentsForAuthor    string
	ConfidentialComments string
	Recommendation       models.Recommendation
}

// ReviewService implements review submission, aggregation and decisions
type ReviewService struct {
	reviewRepo     *repository.ReviewRepository
	reviewerRepo   *repository.ReviewerRepository
	assignmentRepo *repository.AssignmentRepository
	decisionRepo   *repository.DecisionRepository
	discussionRepo *repository.DiscussionRepository
	emailService   *email.Service
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	reviewerRepo *repository.ReviewerRepository,
	assignmentRepo *repository.AssignmentRepository,
	decisionRepo *repository.DecisionRepository,
	discussionRepo *repository.DiscussionRepository,
	emailService *email.Service,
) *ReviewService {
	return &ReviewService{
		reviewRepo:     reviewRepo,
		reviewerRepo:   reviewerRepo,
		assignmentRepo: assignmentRepo,
		decisionRepo:   decisionRepo,
		discussionRepo: discussionRepo,
		emailService:   emailService,
	}
}

// SubmitReview stores the review of the given reviewer for the given paper.
// The reviewer is resolved by external user id and provisioned on first
// contact; submitting again overwrites the earlier review.
func (s *ReviewService) SubmitReview(ctx context.Context, paperID uint, reviewerUserID string, input SubmitReviewInput) (*models.PaperReview, error) {
	if paperID == 0 {
		return nil, fmt.Errorf("%w: paper id is required", ErrInvalidInput)
	}

	reviewer, err := s.resolveReviewer(ctx, reviewerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reviewer %q for paper %d: %w", reviewerUserID, paperID, err)
	}

	review := &models.PaperReview{
		NoveltyScore:         input.NoveltyScore,
		MethodologyScore:     input.MethodologyScore,
		PresentationScore:    input.PresentationScore,
		CommentsForAuthor:    input.CommentsForAuthor,
		ConfidentialComments: input.ConfidentialComments,
		Recommendation:       input.Recommendation,
	}

	stored, err := s.reviewRepo.SubmitForReviewer(ctx, paperID, reviewer.ID, review)
	if err != nil {
		return nil, fmt.Errorf("failed to submit review for paper %d: %w", paperID, err)
	}
	return stored, nil
}

// resolveReviewer finds the reviewer for an external user id, creating a row
// when none exists. Requests without identity share one anonymous reviewer
// row, so repeated anonymous submissions to a paper update the same review.
func (s *ReviewService) resolveReviewer(ctx context.Context, userID string) (*models.Reviewer, error) {
	if isAnonymousUserID(userID) {
		return s.reviewerRepo.UpsertByUserID(ctx, &models.Reviewer{
			UserID:    anonymousReviewerID,
			FullName:  "Anonymous Reviewer",
			MaxPapers: 5,
			IsActive:  true,
		})
	}

	return s.reviewerRepo.UpsertByUserID(ctx, &models.Reviewer{
		UserID:    userID,
		FullName:  "Unknown Reviewer",
		MaxPapers: 5,
		IsActive:  true,
	})
}

// GetReviewSummary aggregates all reviews of a paper. Papers without reviews
// yield a zero-filled summary.
func (s *ReviewService) GetReviewSummary(ctx context.Context, paperID uint) (*models.ReviewSummary, error) {
	details, err := s.reviewRepo.ListDetailsByPaper(ctx, paperID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews for paper %d: %w", paperID, err)
	}

	summary := &models.ReviewSummary{
		PaperID: paperID,
		Reviews: details,
	}
	if len(details) == 0 {
		return summary, nil
	}

	var noveltySum, methodologySum, presentationSum int
	for _, detail := range details {
		noveltySum += detail.NoveltyScore
		methodologySum += detail.MethodologyScore
		presentationSum += detail.PresentationScore

		switch {
		case detail.Recommendation == models.RecommendAccept:
			summary.AcceptCount++
		case detail.Recommendation == models.RecommendReject:
			summary.RejectCount++
		case detail.Recommendation.IsRevision():
			summary.RevisionCount++
		}
	}

	count := float64(len(details))
	summary.TotalReviews = len(details)
	summary.AverageNoveltyScore = roundTwoDecimals(float64(noveltySum) / count)
	summary.AverageMethodologyScore = roundTwoDecimals(float64(methodologySum) / count)
	summary.AveragePresentationScore = roundTwoDecimals(float64(presentationSum) / count)
	summary.OverallAverageScore = roundTwoDecimals(
		(summary.AverageNoveltyScore + summary.AverageMethodologyScore + summary.AveragePresentationScore) / 3,
	)

	return summary, nil
}

// SubmitDecision records the chair's decision for a paper. A paper without
// any assignment cannot be decided; repeating a decision overwrites it.
func (s *ReviewService) SubmitDecision(ctx context.Context, paperID uint, status, comments, chairID, chairEmail string) (*models.Decision, error) {
	if paperID == 0 || status == "" {
		return nil, fmt.Errorf("%w: paper id and status are required", ErrInvalidInput)
	}

	count, err := s.assignmentRepo.CountByPaper(ctx, paperID)
	if err != nil {
		return nil, fmt.Errorf("failed to check assignments for paper %d: %w", paperID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("paper %d: %w", paperID, ErrNoReviewData)
	}

	decision, err := s.decisionRepo.Upsert(ctx, &models.Decision{
		PaperID:   paperID,
		Status:    status,
		Comments:  comments,
		DecidedBy: chairID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record decision for paper %d: %w", paperID, err)
	}

	if chairEmail != "" {
		if err := s.emailService.SendDecisionNotice(chairEmail, paperID, status); err != nil {
			slog.Error("Failed to send decision notice", "paper_id", paperID, "error", err)
		}
	}

	return decision, nil
}

// GetAssignmentsForReviewer lists the assignments of the reviewer mapped to
// the given external user id
func (s *ReviewService) GetAssignmentsForReviewer(ctx context.Context, userID, status string, limit, offset int) ([]models.Assignment, error) {
	reviewer, err := s.reviewerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reviewer %q: %w", userID, err)
	}
	if reviewer == nil {
		return []models.Assignment{}, nil
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	return s.assignmentRepo.ListByReviewer(ctx, reviewer.ID, status, limit, offset)
}

// GetSubmissionsForDecision returns per-paper review progress for the chair
// dashboard
func (s *ReviewService) GetSubmissionsForDecision(ctx context.Context) ([]models.PaperDecisionOverview, error) {
	overviews, err := s.reviewRepo.ListPaperOverviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	for i := range overviews {
		if overviews[i].TotalAssignments > 0 && overviews[i].CompletedReviews == overviews[i].TotalAssignments {
			overviews[i].CurrentStatus = "Completed"
		} else {
			overviews[i].CurrentStatus = "Under Review"
		}
	}

	return overviews, nil
}

// AddDiscussionComment stores an internal PC comment on a paper
func (s *ReviewService) AddDiscussionComment(ctx context.Context, paperID uint, userID, userName, content string) (*models.DiscussionComment, error) {
	if paperID == 0 || content == "" {
		return nil, fmt.Errorf("%w: paper id and content are required", ErrInvalidInput)
	}

	return s.discussionRepo.Create(ctx, &models.DiscussionComment{
		PaperID:  paperID,
		UserID:   userID,
		UserName: userName,
		Content:  content,
	})
}

// GetDiscussion lists the PC comments on a paper in creation order
func (s *ReviewService) GetDiscussion(ctx context.Context, paperID uint) ([]models.DiscussionComment, error) {
	return s.discussionRepo.ListByPaper(ctx, paperID)
}

func roundTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}
