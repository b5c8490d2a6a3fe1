package repository

import (
	"context"
	"database/sql"
	"fmt"

	"confms/internal/models"
)

// AssignmentRepository handles paper-reviewer assignment persistence
type AssignmentRepository struct {
	db *sql.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create inserts a new assignment; the unique (paper_id, reviewer_id) key
// rejects duplicates
func (a *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) (*models.Assignment, error) {
	query := `
		INSERT INTO assignments (paper_id, reviewer_id, status, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, assigned_date
	`
	err := a.db.QueryRowContext(ctx, query,
		assignment.PaperID, assignment.ReviewerID, assignment.Status, assignment.DueDate,
	).Scan(&assignment.ID, &assignment.AssignedDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	return assignment, nil
}

// GetByID retrieves an assignment by id, nil if not found
func (a *AssignmentRepository) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	query := `
		SELECT id, paper_id, reviewer_id, status, assigned_date, due_date
		FROM assignments WHERE id = $1
	`
	return a.scanOne(a.db.QueryRowContext(ctx, query, id))
}

// GetByPaperAndReviewer retrieves the assignment for an exact paper and
// reviewer pair, nil if not found
func (a *AssignmentRepository) GetByPaperAndReviewer(ctx context.Context, paperID, reviewerID uint) (*models.Assignment, error) {
	query := `
		SELECT id, paper_id, reviewer_id, status, assigned_date, due_date
		FROM assignments WHERE paper_id = $1 AND reviewer_id = $2
	`
	return a.scanOne(a.db.QueryRowContext(ctx, query, paperID, reviewerID))
}

// UpdateStatus sets the status of an assignment
func (a *AssignmentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result, err := a.db.ExecContext(ctx, `UPDATE assignments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("assignment %d not found", id)
	}
	return nil
}

// CountByPaper counts all assignments of a paper
func (a *AssignmentRepository) CountByPaper(ctx context.Context, paperID uint) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assignments WHERE paper_id = $1`, paperID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return count, nil
}

// ListByReviewer returns a reviewer's assignments, newest first, optionally
// filtered by status, with limit/offset paging
func (a *AssignmentRepository) ListByReviewer(ctx context.Context, reviewerID uint, status string, limit, offset int) ([]models.Assignment, error) {
	query := `
		SELECT id, paper_id, reviewer_id, status, assigned_date, due_date
		FROM assignments
		WHERE reviewer_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY assigned_date DESC, id DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := a.db.QueryContext(ctx, query, reviewerID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	assignments := []models.Assignment{}
	for rows.Next() {
		var assignment models.Assignment
		if err := rows.Scan(
			&assignment.ID, &assignment.PaperID, &assignment.ReviewerID,
			&assignment.Status, &assignment.AssignedDate, &assignment.DueDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

// ListReviewersForPaper returns the reviewers assigned to a paper together
// with their assignment state
func (a *AssignmentRepository) ListReviewersForPaper(ctx context.Context, paperID uint) ([]models.AssignedReviewer, error) {
	query := `
		SELECT a.id, a.reviewer_id, r.full_name, a.status, a.assigned_date
		FROM assignments a
		JOIN reviewers r ON r.id = a.reviewer_id
		WHERE a.paper_id = $1
		ORDER BY a.assigned_date, a.id
	`
	rows, err := a.db.QueryContext(ctx, query, paperID)
	if err != nil {
		return nil, fmt.Errorf("failed to list paper reviewers: %w", err)
	}
	defer rows.Close()

	reviewers := []models.AssignedReviewer{}
	for rows.Next() {
		var assigned models.AssignedReviewer
		if err := rows.Scan(
			&assigned.AssignmentID, &assigned.ReviewerID, &assigned.ReviewerName,
			&assigned.Status, &assigned.AssignedDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan paper reviewer: %w", err)
		}
		reviewers = append(reviewers, assigned)
	}

	return reviewers, rows.Err()
}

func (a *AssignmentRepository) scanOne(row *sql.Row) (*models.Assignment, error) {
	assignment := &models.Assignment{}
	err := row.Scan(
		&assignment.ID, &assignment.PaperID, &assignment.ReviewerID,
		&assignment.Status, &assignment.AssignedDate, &assignment.DueDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return assignment, nil
}
