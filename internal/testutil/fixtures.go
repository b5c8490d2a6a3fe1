package testutil

import (
	"database/sql"
	"testing"

	"confms/internal/models"
)

// Fixtures holds commonly needed test data
type Fixtures struct {
	DB       *sql.DB
	Reviewer *models.Reviewer
}

// SetupFixtures creates a baseline reviewer for integration tests
func SetupFixtures(t *testing.T, db *sql.DB) *Fixtures {
	return &Fixtures{
		DB:       db,
		Reviewer: CreateReviewer(t, db, "user-fixture-1", 1, "fixture@test.com", "Fixture Reviewer"),
	}
}

// CreateReviewer inserts a reviewer row and returns it
func CreateReviewer(t *testing.T, db *sql.DB, userID string, conferenceID uint, email, fullName string) *models.Reviewer {
	t.Helper()

	reviewer := &models.Reviewer{
		UserID:       userID,
		ConferenceID: conferenceID,
		Email:        email,
		FullName:     fullName,
		Expertise:    "machine learning, databases",
		MaxPapers:    5,
		IsActive:     true,
	}
	err := db.QueryRow(`
		INSERT INTO reviewers (user_id, conference_id, email, full_name, expertise, max_papers, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, reviewer.UserID, reviewer.ConferenceID, reviewer.Email, reviewer.FullName,
		reviewer.Expertise, reviewer.MaxPapers, reviewer.IsActive,
	).Scan(&reviewer.ID, &reviewer.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create reviewer fixture: %v", err)
	}

	return reviewer
}

// CreateAssignment inserts an assignment row and returns its id
func CreateAssignment(t *testing.T, db *sql.DB, paperID, reviewerID uint, status string) uint {
	t.Helper()

	var id uint
	err := db.QueryRow(`
		INSERT INTO assignments (paper_id, reviewer_id, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`, paperID, reviewerID, status).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create assignment fixture: %v", err)
	}

	return id
}
