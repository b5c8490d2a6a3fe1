package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"confms/internal/models"
)

// ReviewRepository handles paper review persistence
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// SubmitForReviewer stores a review for the exact (paper, reviewer) pair in
// one transaction: the assignment is upserted on its (paper_id, reviewer_id)
// key, the review is upserted on its assignment_id key, and the assignment is
// marked Completed. A resubmission overwrites the previous scores.
func (r *ReviewRepository) SubmitForReviewer(ctx context.Context, paperID, reviewerID uint, review *models.PaperReview) (*models.PaperReview, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("Failed to rollback transaction", "error", err)
		}
	}()

	var assignmentID uint
	assignmentQuery := `
		INSERT INTO assignments (paper_id, reviewer_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (paper_id, reviewer_id)
		DO UPDATE SET paper_id = EXCLUDED.paper_id
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, assignmentQuery, paperID, reviewerID, models.AssignmentPending).Scan(&assignmentID); err != nil {
		return nil, fmt.Errorf("failed to upsert assignment: %w", err)
	}

	reviewQuery := `
		INSERT INTO paper_reviews (
			assignment_id, novelty_score, methodology_score, presentation_score,
			comments_for_author, confidential_comments, recommendation
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (assignment_id)
		DO UPDATE SET
			novelty_score = EXCLUDED.novelty_score,
			methodology_score = EXCLUDED.methodology_score,
			presentation_score = EXCLUDED.presentation_score,
			comments_for_author = EXCLUDED.comments_for_author,
			confidential_comments = EXCLUDED.confidential_comments,
			recommendation = EXCLUDED.recommendation,
			updated_at = NOW()
		RETURNING id, assignment_id, novelty_score, methodology_score, presentation_score,
			comments_for_author, confidential_comments, recommendation, created_at, updated_at
	`
	stored := &models.PaperReview{}
	err = tx.QueryRowContext(ctx, reviewQuery,
		assignmentID, review.NoveltyScore, review.MethodologyScore, review.PresentationScore,
		review.CommentsForAuthor, review.ConfidentialComments, string(review.Recommendation),
	).Scan(
		&stored.ID, &stored.AssignmentID, &stored.NoveltyScore, &stored.MethodologyScore,
		&stored.PresentationScore, &stored.CommentsForAuthor, &stored.ConfidentialComments,
		&stored.Recommendation, &stored.CreatedAt, &stored.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert review: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE assignments SET status = $1 WHERE id = $2`,
		models.AssignmentCompleted, assignmentID,
	); err != nil {
		return nil, fmt.Errorf("failed to complete assignment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit review: %w", err)
	}
	return stored, nil
}

// ListDetailsByPaper returns all reviews of a paper with reviewer identity,
// ordered by submission time
func (r *ReviewRepository) ListDetailsByPaper(ctx context.Context, paperID uint) ([]models.ReviewDetail, error) {
	query := `
		SELECT rv.user_id, rv.id, rv.full_name,
			pr.novelty_score, pr.methodology_score, pr.presentation_score,
			pr.comments_for_author, pr.confidential_comments, pr.recommendation, pr.created_at
		FROM paper_reviews pr
		JOIN assignments a ON a.id = pr.assignment_id
		JOIN reviewers rv ON rv.id = a.reviewer_id
		WHERE a.paper_id = $1
		ORDER BY pr.created_at, pr.id
	`
	rows, err := r.db.QueryContext(ctx, query, paperID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	details := []models.ReviewDetail{}
	for rows.Next() {
		var detail models.ReviewDetail
		var externalID string
		var internalID uint
		if err := rows.Scan(
			&externalID, &internalID, &detail.ReviewerName,
			&detail.NoveltyScore, &detail.MethodologyScore, &detail.PresentationScore,
			&detail.CommentsForAuthor, &detail.ConfidentialComments,
			&detail.Recommendation, &detail.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		detail.ReviewerID = externalID
		if detail.ReviewerID == "" {
			detail.ReviewerID = fmt.Sprintf("%d", internalID)
		}
		details = append(details, detail)
	}

	return details, rows.Err()
}

// ListPaperOverviews returns per-paper assignment and review totals for the
// decision dashboard, newest papers first
func (r *ReviewRepository) ListPaperOverviews(ctx context.Context) ([]models.PaperDecisionOverview, error) {
	query := `
		SELECT a.paper_id,
			COUNT(a.id) AS total_assignments,
			COUNT(pr.id) AS completed_reviews,
			AVG((pr.novelty_score + pr.methodology_score + pr.presentation_score) / 3.0) AS average_score
		FROM assignments a
		LEFT JOIN paper_reviews pr ON pr.assignment_id = a.id
		GROUP BY a.paper_id
		ORDER BY a.paper_id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list paper overviews: %w", err)
	}
	defer rows.Close()

	overviews := []models.PaperDecisionOverview{}
	for rows.Next() {
		var overview models.PaperDecisionOverview
		var avg sql.NullFloat64
		if err := rows.Scan(
			&overview.PaperID, &overview.TotalAssignments, &overview.CompletedReviews, &avg,
		); err != nil {
			return nil, fmt.Errorf("failed to scan paper overview: %w", err)
		}
		if avg.Valid {
			rounded := roundTwoDecimals(avg.Float64)
			overview.AverageScore = &rounded
		}
		overviews = append(overviews, overview)
	}

	return overviews, rows.Err()
}

// GetByAssignment retrieves the review of an assignment, nil if not found
func (r *ReviewRepository) GetByAssignment(ctx context.Context, assignmentID uint) (*models.PaperReview, error) {
	query := `
		SELECT id, assignment_id, novelty_score, methodology_score, presentation_score,
			comments_for_author, confidential_comments, recommendation, created_at, updated_at
		FROM paper_reviews WHERE assignment_id = $1
	`
	review := &models.PaperReview{}
	err := r.db.QueryRowContext(ctx, query, assignmentID).Scan(
		&review.ID, &review.AssignmentID, &review.NoveltyScore, &review.MethodologyScore,
		&review.PresentationScore, &review.CommentsForAuthor, &review.ConfidentialComments,
		&review.Recommendation, &review.CreatedAt, &review.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}
