package repository

import (
	"context"
	"database/sql"
	"fmt"

	"confms/internal/models"
)

// ReviewerRepository handles reviewer persistence
type ReviewerRepository struct {
	db *sql.DB
}

// NewReviewerRepository creates a new reviewer repository
func NewReviewerRepository(db *sql.DB) *ReviewerRepository {
	return &ReviewerRepository{db: db}
}

// Create inserts a new reviewer
func (r *ReviewerRepository) Create(ctx context.Context, reviewer *models.Reviewer) (*models.Reviewer, error) {
	query := `
		INSERT INTO reviewers (user_id, conference_id, email, full_name, expertise, max_papers, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		reviewer.UserID, reviewer.ConferenceID, reviewer.Email, reviewer.FullName,
		reviewer.Expertise, reviewer.MaxPapers, reviewer.IsActive,
	).Scan(&reviewer.ID, &reviewer.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create reviewer: %w", err)
	}
	return reviewer, nil
}

// UpsertByUserID inserts a reviewer keyed by external user id, or returns the
// existing row unchanged. Used to provision reviewers on first contact.
func (r *ReviewerRepository) UpsertByUserID(ctx context.Context, reviewer *models.Reviewer) (*models.Reviewer, error) {
	query := `
		INSERT INTO reviewers (user_id, conference_id, email, full_name, expertise, max_papers, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) WHERE user_id <> ''
		DO UPDATE SET is_active = reviewers.is_active
		RETURNING id, user_id, conference_id, email, full_name, expertise, max_papers, is_active, created_at
	`
	result := &models.Reviewer{}
	err := r.db.QueryRowContext(ctx, query,
		reviewer.UserID, reviewer.ConferenceID, reviewer.Email, reviewer.FullName,
		reviewer.Expertise, reviewer.MaxPapers, reviewer.IsActive,
	).Scan(
		&result.ID, &result.UserID, &result.ConferenceID, &result.Email, &result.FullName,
		&result.Expertise, &result.MaxPapers, &result.IsActive, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert reviewer: %w", err)
	}
	return result, nil
}

// GetByID retrieves a reviewer by internal id, nil if not found
func (r *ReviewerRepository) GetByID(ctx context.Context, id uint) (*models.Reviewer, error) {
	query := `
		SELECT id, user_id, conference_id, email, full_name, expertise, max_papers, is_active, created_at
		FROM reviewers WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByUserID retrieves a reviewer by external user id, nil if not found
func (r *ReviewerRepository) GetByUserID(ctx context.Context, userID string) (*models.Reviewer, error) {
	query := `
		SELECT id, user_id, conference_id, email, full_name, expertise, max_papers, is_active, created_at
		FROM reviewers WHERE user_id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

// GetByConferenceAndEmail retrieves a reviewer by conference and email, nil if not found
func (r *ReviewerRepository) GetByConferenceAndEmail(ctx context.Context, conferenceID uint, email string) (*models.Reviewer, error) {
	query := `
		SELECT id, user_id, conference_id, email, full_name, expertise, max_papers, is_active, created_at
		FROM reviewers WHERE conference_id = $1 AND LOWER(email) = LOWER($2)
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, conferenceID, email))
}

// GetByEmail retrieves a reviewer by email regardless of conference, nil if
// not found. The oldest row wins when the address appears more than once.
func (r *ReviewerRepository) GetByEmail(ctx context.Context, email string) (*models.Reviewer, error) {
	query := `
		SELECT id, user_id, conference_id, email, full_name, expertise, max_papers, is_active, created_at
		FROM reviewers WHERE LOWER(email) = LOWER($1)
		ORDER BY id
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// ListByConference returns all reviewers of a conference
func (r *ReviewerRepository) ListByConference(ctx context.Context, conferenceID uint) ([]models.Reviewer, error) {
	query := `
		SELECT id, user_id, conference_id, email, full_name, expertise, max_papers, is_active, created_at
		FROM reviewers WHERE conference_id = $1
		ORDER BY full_name, id
	`
	rows, err := r.db.QueryContext(ctx, query, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewers: %w", err)
	}
	defer rows.Close()

	reviewers := []models.Reviewer{}
	for rows.Next() {
		var reviewer models.Reviewer
		if err := rows.Scan(
			&reviewer.ID, &reviewer.UserID, &reviewer.ConferenceID, &reviewer.Email,
			&reviewer.FullName, &reviewer.Expertise, &reviewer.MaxPapers,
			&reviewer.IsActive, &reviewer.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reviewer: %w", err)
		}
		reviewers = append(reviewers, reviewer)
	}

	return reviewers, rows.Err()
}

func (r *ReviewerRepository) scanOne(row *sql.Row) (*models.Reviewer, error) {
	reviewer := &models.Reviewer{}
	err := row.Scan(
		&reviewer.ID, &reviewer.UserID, &reviewer.ConferenceID, &reviewer.Email,
		&reviewer.FullName, &reviewer.Expertise, &reviewer.MaxPapers,
		&reviewer.IsActive, &reviewer.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reviewer: %w", err)
	}
	return reviewer, nil
}
