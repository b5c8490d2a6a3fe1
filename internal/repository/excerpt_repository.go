package repository

import (
	"context"
	"database/sql"
	"fmt"

	"confms/internal/models"
)

// ExcerptRepository stores submission excerpts used for plagiarism checks
type ExcerptRepository struct {
	db *sql.DB
}

// NewExcerptRepository creates a new excerpt repository
func NewExcerptRepository(db *sql.DB) *ExcerptRepository {
	return &ExcerptRepository{db: db}
}

// Upsert stores the excerpt of a paper, replacing any previous one
func (e *ExcerptRepository) Upsert(ctx context.Context, excerpt *models.SubmissionExcerpt) (*models.SubmissionExcerpt, error) {
	query := `
		INSERT INTO submission_excerpts (paper_id, title, excerpt)
		VALUES ($1, $2, $3)
		ON CONFLICT (paper_id)
		DO UPDATE SET title = EXCLUDED.title, excerpt = EXCLUDED.excerpt
		RETURNING id, paper_id, title, excerpt, created_at
	`
	stored := &models.SubmissionExcerpt{}
	err := e.db.QueryRowContext(ctx, query, excerpt.PaperID, excerpt.Title, excerpt.Excerpt).Scan(
		&stored.ID, &stored.PaperID, &stored.Title, &stored.Excerpt, &stored.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert excerpt: %w", err)
	}
	return stored, nil
}

// ListOthers returns all stored excerpts except the given paper's own
func (e *ExcerptRepository) ListOthers(ctx context.Context, paperID uint) ([]models.SubmissionExcerpt, error) {
	query := `
		SELECT id, paper_id, title, excerpt, created_at
		FROM submission_excerpts WHERE paper_id <> $1
		ORDER BY paper_id
	`
	rows, err := e.db.QueryContext(ctx, query, paperID)
	if err != nil {
		return nil, fmt.Errorf("failed to list excerpts: %w", err)
	}
	defer rows.Close()

	excerpts := []models.SubmissionExcerpt{}
	for rows.Next() {
		var excerpt models.SubmissionExcerpt
		if err := rows.Scan(
			&excerpt.ID, &excerpt.PaperID, &excerpt.Title, &excerpt.Excerpt, &excerpt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan excerpt: %w", err)
		}
		excerpts = append(excerpts, excerpt)
	}

	return excerpts, rows.Err()
}
