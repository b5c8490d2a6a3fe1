package repository

import (
	"context"
	"database/sql"
	"fmt"

	"confms/internal/models"
)

// DiscussionRepository handles PC discussion comment persistence
type DiscussionRepository struct {
	db *sql.DB
}

// NewDiscussionRepository creates a new discussion repository
func NewDiscussionRepository(db *sql.DB) *DiscussionRepository {
	return &DiscussionRepository{db: db}
}

// Create inserts a new discussion comment
func (d *DiscussionRepository) Create(ctx context.Context, comment *models.DiscussionComment) (*models.DiscussionComment, error) {
	query := `
		INSERT INTO discussion_comments (paper_id, user_id, user_name, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := d.db.QueryRowContext(ctx, query,
		comment.PaperID, comment.UserID, comment.UserName, comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create discussion comment: %w", err)
	}
	return comment, nil
}

// ListByPaper returns all comments on a paper in creation order
func (d *DiscussionRepository) ListByPaper(ctx context.Context, paperID uint) ([]models.DiscussionComment, error) {
	query := `
		SELECT id, paper_id, user_id, user_name, content, created_at
		FROM discussion_comments WHERE paper_id = $1
		ORDER BY created_at, id
	`
	rows, err := d.db.QueryContext(ctx, query, paperID)
	if err != nil {
		return nil, fmt.Errorf("failed to list discussion comments: %w", err)
	}
	defer rows.Close()

	comments := []models.DiscussionComment{}
	for rows.Next() {
		var comment models.DiscussionComment
		if err := rows.Scan(
			&comment.ID, &comment.PaperID, &comment.UserID, &comment.UserName,
			&comment.Content, &comment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan discussion comment: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}
