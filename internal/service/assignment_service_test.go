package service

import (
	"context"
	"errors"
	"testing"

	"confms/internal/models"
	"confms/internal/repository"
	"confms/internal/testutil"
)

func newAssignmentService(tc *testutil.TestContainers) *AssignmentService {
	return NewAssignmentService(
		repository.NewAssignmentRepository(tc.DB),
		repository.NewReviewerRepository(tc.DB),
	)
}

func TestAssignReviewer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	service := newAssignmentService(tc)
	ctx := context.Background()
	reviewer := testutil.CreateReviewer(t, tc.DB, "user-1", 1, "one@test.com", "Reviewer One")

	assignment, err := service.AssignReviewer(ctx, 100, reviewer.ID, "")
	if err != nil {
		t.Fatalf("AssignReviewer() error = %v", err)
	}
	if assignment.Status != models.AssignmentPending {
		t.Errorf("Status = %q, want Pending", assignment.Status)
	}

	if _, err := service.AssignReviewer(ctx, 100, reviewer.ID, ""); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("duplicate assignment: error = %v, want ErrAlreadyExists", err)
	}

	if _, err := service.AssignReviewer(ctx, 100, 9999, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown reviewer: error = %v, want ErrNotFound", err)
	}
}

func TestAssignReviewerByEmailProvisions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	service := newAssignmentService(tc)
	ctx := context.Background()

	assignment, err := service.AssignReviewer(ctx, 101, 0, "fresh@test.com")
	if err != nil {
		t.Fatalf("AssignReviewer() by email error = %v", err)
	}
	if assignment.ReviewerID == 0 {
		t.Error("expected a provisioned reviewer id")
	}

	// the same email resolves to the same reviewer afterwards
	if _, err := service.AssignReviewer(ctx, 101, 0, "fresh@test.com"); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("re-assigning the provisioned reviewer: error = %v, want ErrAlreadyExists", err)
	}
}

func TestAssignReviewerByEmailFindsExistingReviewer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	service := newAssignmentService(tc)
	ctx := context.Background()

	// provisioned through invitation acceptance, so the row carries a
	// nonzero conference id
	reviewer := testutil.CreateReviewer(t, tc.DB, "user-8", 3, "known@test.com", "Known Reviewer")

	assignment, err := service.AssignReviewer(ctx, 102, 0, "Known@Test.com")
	if err != nil {
		t.Fatalf("AssignReviewer() by email error = %v", err)
	}
	if assignment.ReviewerID != reviewer.ID {
		t.Errorf("ReviewerID = %d, want existing reviewer %d", assignment.ReviewerID, reviewer.ID)
	}
}

func TestAssignReviewerEnforcesPaperLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	service := newAssignmentService(tc)
	ctx := context.Background()
	reviewer := testutil.CreateReviewer(t, tc.DB, "user-2", 1, "two@test.com", "Reviewer Two")

	for paperID := uint(200); paperID < 205; paperID++ {
		if _, err := service.AssignReviewer(ctx, paperID, reviewer.ID, ""); err != nil {
			t.Fatalf("AssignReviewer(paper %d) error = %v", paperID, err)
		}
	}

	if _, err := service.AssignReviewer(ctx, 205, reviewer.ID, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("assignment beyond max_papers: error = %v, want ErrInvalidInput", err)
	}
}

func TestRespondToAssignment(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	service := newAssignmentService(tc)
	ctx := context.Background()

	reviewer := testutil.CreateReviewer(t, tc.DB, "user-3", 1, "three@test.com", "Reviewer Three")
	testutil.CreateReviewer(t, tc.DB, "user-4", 1, "four@test.com", "Reviewer Four")
	assignmentID := testutil.CreateAssignment(t, tc.DB, 300, reviewer.ID, models.AssignmentPending)

	if _, err := service.RespondToAssignment(ctx, assignmentID, "user-4", true); !errors.Is(err, ErrForbidden) {
		t.Errorf("response by another user: error = %v, want ErrForbidden", err)
	}

	accepted, err := service.RespondToAssignment(ctx, assignmentID, "user-3", true)
	if err != nil {
		t.Fatalf("RespondToAssignment() error = %v", err)
	}
	if accepted.Status != models.AssignmentAccepted {
		t.Errorf("Status = %q, want Accepted", accepted.Status)
	}

	if _, err := service.RespondToAssignment(ctx, assignmentID, "user-3", false); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("second response: error = %v, want ErrInvalidInput", err)
	}

	if _, err := service.RespondToAssignment(ctx, 9999, "user-3", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown assignment: error = %v, want ErrNotFound", err)
	}
}

func TestRespondToAssignmentCompletedIsImmutable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	service := newAssignmentService(tc)
	ctx := context.Background()

	reviewer := testutil.CreateReviewer(t, tc.DB, "user-5", 1, "five@test.com", "Reviewer Five")
	assignmentID := testutil.CreateAssignment(t, tc.DB, 301, reviewer.ID, models.AssignmentCompleted)

	if _, err := service.RespondToAssignment(ctx, assignmentID, "user-5", false); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("responding to a completed assignment: error = %v, want ErrInvalidInput", err)
	}
}

func TestListReviewersForPaper(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	service := newAssignmentService(tc)
	ctx := context.Background()

	first := testutil.CreateReviewer(t, tc.DB, "user-6", 1, "six@test.com", "Reviewer Six")
	second := testutil.CreateReviewer(t, tc.DB, "user-7", 1, "seven@test.com", "Reviewer Seven")
	testutil.CreateAssignment(t, tc.DB, 302, first.ID, models.AssignmentPending)
	testutil.CreateAssignment(t, tc.DB, 302, second.ID, models.AssignmentAccepted)

	assigned, err := service.ListReviewersForPaper(ctx, 302)
	if err != nil {
		t.Fatalf("ListReviewersForPaper() error = %v", err)
	}
	if len(assigned) != 2 {
		t.Fatalf("len(assigned) = %d, want 2", len(assigned))
	}
	if assigned[0].ReviewerName != "Reviewer Six" {
		t.Errorf("first assigned reviewer = %q, want Reviewer Six", assigned[0].ReviewerName)
	}
}
