package service

import (
	"context"
	"fmt"
	"strings"

	"confms/internal/models"
	"confms/internal/repository"
)

// AssignmentService implements chair-side assignment management
type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	reviewerRepo   *repository.ReviewerRepository
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(assignmentRepo *repository.AssignmentRepository, reviewerRepo *repository.ReviewerRepository) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		reviewerRepo:   reviewerRepo,
	}
}

// AssignReviewer assigns a reviewer to a paper, addressed either by internal
// reviewer id or by email. Unknown emails provision a new reviewer. A reviewer
// at their paper limit or already assigned to the paper is rejected.
func (s *AssignmentService) AssignReviewer(ctx context.Context, paperID, reviewerID uint, reviewerEmail string) (*models.Assignment, error) {
	if paperID == 0 {
		return nil, fmt.Errorf("%w: paper id is required", ErrInvalidInput)
	}

	reviewer, err := s.resolveAssignee(ctx, reviewerID, reviewerEmail)
	if err != nil {
		return nil, err
	}

	existing, err := s.assignmentRepo.GetByPaperAndReviewer(ctx, paperID, reviewer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing assignment: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("reviewer %d is already assigned to paper %d: %w", reviewer.ID, paperID, ErrAlreadyExists)
	}

	if reviewer.MaxPapers > 0 {
		active, err := s.assignmentRepo.ListByReviewer(ctx, reviewer.ID, "", reviewer.MaxPapers+1, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check reviewer workload: %w", err)
		}
		if len(active) >= reviewer.MaxPapers {
			return nil, fmt.Errorf("%w: reviewer %d has reached the limit of %d papers", ErrInvalidInput, reviewer.ID, reviewer.MaxPapers)
		}
	}

	assignment, err := s.assignmentRepo.Create(ctx, &models.Assignment{
		PaperID:    paperID,
		ReviewerID: reviewer.ID,
		Status:     models.AssignmentPending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assign reviewer %d to paper %d: %w", reviewer.ID, paperID, err)
	}
	return assignment, nil
}

func (s *AssignmentService) resolveAssignee(ctx context.Context, reviewerID uint, email string) (*models.Reviewer, error) {
	if reviewerID != 0 {
		reviewer, err := s.reviewerRepo.GetByID(ctx, reviewerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load reviewer %d: %w", reviewerID, err)
		}
		if reviewer == nil {
			return nil, fmt.Errorf("reviewer %d: %w", reviewerID, ErrNotFound)
		}
		return reviewer, nil
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: reviewer id or email is required", ErrInvalidInput)
	}

	reviewer, err := s.reviewerRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up reviewer by email: %w", err)
	}
	if reviewer != nil {
		return reviewer, nil
	}

	return s.reviewerRepo.Create(ctx, &models.Reviewer{
		Email:     email,
		FullName:  email,
		MaxPapers: 5,
		IsActive:  true,
	})
}

// RespondToAssignment lets the assigned reviewer accept or decline a Pending
// assignment. Completed assignments are immutable.
func (s *AssignmentService) RespondToAssignment(ctx context.Context, assignmentID uint, userID string, accept bool) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment %d: %w", assignmentID, err)
	}
	if assignment == nil {
		return nil, fmt.Errorf("assignment %d: %w", assignmentID, ErrNotFound)
	}

	reviewer, err := s.reviewerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reviewer %q: %w", userID, err)
	}
	if reviewer == nil || reviewer.ID != assignment.ReviewerID {
		return nil, fmt.Errorf("assignment %d does not belong to user %q: %w", assignmentID, userID, ErrForbidden)
	}

	if assignment.Status == models.AssignmentCompleted {
		return nil, fmt.Errorf("%w: assignment %d is already completed", ErrInvalidInput, assignmentID)
	}
	if assignment.Status != models.AssignmentPending {
		return nil, fmt.Errorf("%w: assignment %d has already been answered", ErrInvalidInput, assignmentID)
	}

	status := models.AssignmentAccepted
	if !accept {
		status = models.AssignmentDeclined
	}
	if err := s.assignmentRepo.UpdateStatus(ctx, assignmentID, status); err != nil {
		return nil, fmt.Errorf("failed to update assignment %d: %w", assignmentID, err)
	}

	assignment.Status = status
	return assignment, nil
}

// ListReviewersForPaper returns the reviewers assigned to a paper
func (s *AssignmentService) ListReviewersForPaper(ctx context.Context, paperID uint) ([]models.AssignedReviewer, error) {
	return s.assignmentRepo.ListReviewersForPaper(ctx, paperID)
}
