package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"confms/internal/auth"
	"confms/internal/email"
	"confms/internal/models"
	"confms/internal/repository"
)

// ReviewerService implements reviewer invitation and onboarding
type ReviewerService struct {
	reviewerRepo   *repository.ReviewerRepository
	invitationRepo *repository.InvitationRepository
	emailService   *email.Service
	frontendURL    string
}

// NewReviewerService creates a new reviewer service
func NewReviewerService(
	reviewerRepo *repository.ReviewerRepository,
	invitationRepo *repository.InvitationRepository,
	emailService *email.Service,
	frontendURL string,
) *ReviewerService {
	return &ReviewerService{
		reviewerRepo:   reviewerRepo,
		invitationRepo: invitationRepo,
		emailService:   emailService,
		frontendURL:    frontendURL,
	}
}

// InviteReviewer creates a Pending invitation for the given conference and
// email and sends the invitation email. Duplicate invitations and existing
// reviewers are rejected. A failed email send does not fail the invitation.
// The returned invitation carries the single-use response token; only its
// bcrypt hash is stored.
func (s *ReviewerService) InviteReviewer(ctx context.Context, conferenceID uint, emailAddr, fullName string) (*models.ReviewerInvitation, error) {
	emailAddr = strings.TrimSpace(emailAddr)
	if conferenceID == 0 || emailAddr == "" {
		return nil, fmt.Errorf("%w: conference id and email are required", ErrInvalidInput)
	}

	existing, err := s.invitationRepo.GetByConferenceAndEmail(ctx, conferenceID, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing invitation: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("invitation for %s in conference %d: %w", emailAddr, conferenceID, ErrAlreadyExists)
	}

	reviewer, err := s.reviewerRepo.GetByConferenceAndEmail(ctx, conferenceID, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing reviewer: %w", err)
	}
	if reviewer != nil {
		return nil, fmt.Errorf("reviewer %s already exists in conference %d: %w", emailAddr, conferenceID, ErrAlreadyExists)
	}

	secret, err := auth.GenerateRandomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation token: %w", err)
	}
	tokenHash, err := auth.HashPassword(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash invitation token: %w", err)
	}

	invitation, err := s.invitationRepo.Create(ctx, &models.ReviewerInvitation{
		ConferenceID: conferenceID,
		Email:        emailAddr,
		FullName:     fullName,
		Status:       models.InvitationPending,
		Token:        tokenHash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	// the response token names the row and proves knowledge of the secret
	invitation.Token = fmt.Sprintf("%d.%s", invitation.ID, secret)

	link := fmt.Sprintf("%s/invitations/respond?token=%s", s.frontendURL, invitation.Token)
	if err := s.emailService.SendReviewerInvitation(emailAddr, fullName, link); err != nil {
		slog.Error("Failed to send invitation email", "email", emailAddr, "error", err)
	}

	return invitation, nil
}

// RespondToInvitation answers a Pending invitation identified by its token.
// Accepting requires a user id and provisions the reviewer idempotently.
func (s *ReviewerService) RespondToInvitation(ctx context.Context, token string, accepted bool, userID string) (*models.ReviewerInvitation, error) {
	invitation, err := s.invitationByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if invitation.Status != models.InvitationPending {
		return nil, fmt.Errorf("%w: invitation has already been answered", ErrInvalidInput)
	}

	if accepted && isAnonymousUserID(userID) {
		return nil, fmt.Errorf("%w: accepting an invitation requires a user id", ErrInvalidInput)
	}

	status := models.InvitationDeclined
	if accepted {
		status = models.InvitationAccepted
	}

	now := time.Now()
	updated, err := s.invitationRepo.MarkResponded(ctx, invitation.ID, status, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: invitation has already been answered", ErrInvalidInput)
	}

	if accepted {
		if _, err := s.reviewerRepo.UpsertByUserID(ctx, &models.Reviewer{
			UserID:       userID,
			ConferenceID: invitation.ConferenceID,
			Email:        invitation.Email,
			FullName:     invitation.FullName,
			MaxPapers:    5,
			IsActive:     true,
		}); err != nil {
			return nil, fmt.Errorf("failed to provision reviewer: %w", err)
		}
	}

	invitation.Status = status
	invitation.RespondedAt = &now
	return invitation, nil
}

// invitationByToken resolves a "<id>.<secret>" response token against the
// stored hash. Any mismatch is reported as not found.
func (s *ReviewerService) invitationByToken(ctx context.Context, token string) (*models.ReviewerInvitation, error) {
	idPart, secret, ok := strings.Cut(token, ".")
	if !ok {
		return nil, fmt.Errorf("invitation token: %w", ErrNotFound)
	}
	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("invitation token: %w", ErrNotFound)
	}

	invitation, err := s.invitationRepo.GetByID(ctx, uint(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load invitation: %w", err)
	}
	if invitation == nil {
		return nil, fmt.Errorf("invitation token: %w", ErrNotFound)
	}
	if err := auth.VerifyPassword(invitation.Token, secret); err != nil {
		return nil, fmt.Errorf("invitation token: %w", ErrNotFound)
	}
	return invitation, nil
}

// ListReviewers returns all reviewers of a conference
func (s *ReviewerService) ListReviewers(ctx context.Context, conferenceID uint) ([]models.Reviewer, error) {
	return s.reviewerRepo.ListByConference(ctx, conferenceID)
}

// ListInvitations returns all invitations of a conference
func (s *ReviewerService) ListInvitations(ctx context.Context, conferenceID uint) ([]models.ReviewerInvitation, error) {
	return s.invitationRepo.ListByConference(ctx, conferenceID)
}
