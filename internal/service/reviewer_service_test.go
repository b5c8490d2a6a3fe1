package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"confms/internal/auth"
	"confms/internal/config"
	"confms/internal/email"
	"confms/internal/models"
	"confms/internal/repository"
	"confms/internal/testutil"
)

func newReviewerService(tc *testutil.TestContainers) (*ReviewerService, *repository.ReviewerRepository, *repository.InvitationRepository) {
	reviewerRepo := repository.NewReviewerRepository(tc.DB)
	invitationRepo := repository.NewInvitationRepository(tc.DB)
	emailService := email.NewService(&config.EmailConfig{Enabled: false})
	return NewReviewerService(reviewerRepo, invitationRepo, emailService, "http://localhost:3000"), reviewerRepo, invitationRepo
}

func TestInviteReviewer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	service, _, invitationRepo := newReviewerService(tc)
	ctx := context.Background()

	invitation, err := service.InviteReviewer(ctx, 1, "new@test.com", "New Reviewer")
	if err != nil {
		t.Fatalf("InviteReviewer() error = %v", err)
	}
	if invitation.Status != models.InvitationPending {
		t.Errorf("Status = %q, want Pending", invitation.Status)
	}
	if invitation.Token == "" {
		t.Error("invitation must carry a token")
	}

	// the row keeps only a bcrypt hash of the emailed token's secret
	stored, err := invitationRepo.GetByID(ctx, invitation.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.Token == invitation.Token {
		t.Error("stored token must not equal the emailed token")
	}
	secret := strings.TrimPrefix(invitation.Token, fmt.Sprintf("%d.", invitation.ID))
	if err := auth.VerifyPassword(stored.Token, secret); err != nil {
		t.Errorf("stored hash must verify against the emailed secret: %v", err)
	}

	if _, err := service.InviteReviewer(ctx, 1, "new@test.com", "New Reviewer"); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("duplicate invitation: error = %v, want ErrAlreadyExists", err)
	}

	// a different conference may invite the same address
	if _, err := service.InviteReviewer(ctx, 2, "new@test.com", "New Reviewer"); err != nil {
		t.Errorf("invitation in another conference: error = %v", err)
	}
}

func TestInviteReviewerRejectsExistingReviewer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	service, _, _ := newReviewerService(tc)
	testutil.CreateReviewer(t, tc.DB, "user-x", 1, "member@test.com", "Existing Member")

	if _, err := service.InviteReviewer(context.Background(), 1, "member@test.com", "Existing Member"); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("inviting an existing reviewer: error = %v, want ErrAlreadyExists", err)
	}
}

func TestRespondToInvitation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	service, reviewerRepo, _ := newReviewerService(tc)
	ctx := context.Background()

	invitation, err := service.InviteReviewer(ctx, 1, "accepting@test.com", "Accepting Reviewer")
	if err != nil {
		t.Fatalf("InviteReviewer() error = %v", err)
	}

	if _, err := service.RespondToInvitation(ctx, "no-such-token", true, "user-y"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown token: error = %v, want ErrNotFound", err)
	}

	wrongSecret := fmt.Sprintf("%d.%s", invitation.ID, strings.Repeat("0", 64))
	if _, err := service.RespondToInvitation(ctx, wrongSecret, true, "user-y"); !errors.Is(err, ErrNotFound) {
		t.Errorf("wrong secret: error = %v, want ErrNotFound", err)
	}

	if _, err := service.RespondToInvitation(ctx, invitation.Token, true, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("accept without user id: error = %v, want ErrInvalidInput", err)
	}

	responded, err := service.RespondToInvitation(ctx, invitation.Token, true, "user-y")
	if err != nil {
		t.Fatalf("RespondToInvitation() error = %v", err)
	}
	if responded.Status != models.InvitationAccepted {
		t.Errorf("Status = %q, want Accepted", responded.Status)
	}
	if responded.RespondedAt == nil {
		t.Error("RespondedAt must be set")
	}

	reviewer, err := reviewerRepo.GetByUserID(ctx, "user-y")
	if err != nil {
		t.Fatalf("GetByUserID() error = %v", err)
	}
	if reviewer == nil {
		t.Fatal("accepting must provision a reviewer")
	}
	if reviewer.Email != "accepting@test.com" || reviewer.ConferenceID != 1 {
		t.Errorf("provisioned reviewer = %+v", reviewer)
	}

	// the invitation is single-shot
	if _, err := service.RespondToInvitation(ctx, invitation.Token, false, "user-y"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("second response: error = %v, want ErrInvalidInput", err)
	}
}

func TestDeclineInvitation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	service, reviewerRepo, _ := newReviewerService(tc)
	ctx := context.Background()

	invitation, err := service.InviteReviewer(ctx, 1, "declining@test.com", "Declining Reviewer")
	if err != nil {
		t.Fatalf("InviteReviewer() error = %v", err)
	}

	responded, err := service.RespondToInvitation(ctx, invitation.Token, false, "")
	if err != nil {
		t.Fatalf("RespondToInvitation() error = %v", err)
	}
	if responded.Status != models.InvitationDeclined {
		t.Errorf("Status = %q, want Declined", responded.Status)
	}

	reviewer, err := reviewerRepo.GetByConferenceAndEmail(ctx, 1, "declining@test.com")
	if err != nil {
		t.Fatalf("GetByConferenceAndEmail() error = %v", err)
	}
	if reviewer != nil {
		t.Error("declining must not provision a reviewer")
	}
}

func TestListReviewersAndInvitations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	service, _, _ := newReviewerService(tc)
	ctx := context.Background()

	testutil.CreateReviewer(t, tc.DB, "user-m", 7, "m@test.com", "Member M")
	testutil.CreateReviewer(t, tc.DB, "user-n", 7, "n@test.com", "Member N")
	testutil.CreateReviewer(t, tc.DB, "user-o", 8, "o@test.com", "Member O")

	reviewers, err := service.ListReviewers(ctx, 7)
	if err != nil {
		t.Fatalf("ListReviewers() error = %v", err)
	}
	if len(reviewers) != 2 {
		t.Errorf("len(reviewers) = %d, want 2", len(reviewers))
	}

	if _, err := service.InviteReviewer(ctx, 7, "p@test.com", "Member P"); err != nil {
		t.Fatalf("InviteReviewer() error = %v", err)
	}

	invitations, err := service.ListInvitations(ctx, 7)
	if err != nil {
		t.Fatalf("ListInvitations() error = %v", err)
	}
	if len(invitations) != 1 {
		t.Errorf("len(invitations) = %d, want 1", len(invitations))
	}
}
