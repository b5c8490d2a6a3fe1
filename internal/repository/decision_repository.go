package repository

import (
	"context"
	"database/sql"
	"fmt"

	"confms/internal/models"
)

// DecisionRepository handles chair decision persistence
type DecisionRepository struct {
	db *sql.DB
}

// NewDecisionRepository creates a new decision repository
func NewDecisionRepository(db *sql.DB) *DecisionRepository {
	return &DecisionRepository{db: db}
}

// Upsert stores the decision for a paper, overwriting any previous one.
// The unique paper_id key makes concurrent submissions last-writer-wins.
func (d *DecisionRepository) Upsert(ctx context.Context, decision *models.Decision) (*models.Decision, error) {
	query := `
		INSERT INTO decisions (paper_id, status, comments, decided_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (paper_id)
		DO UPDATE SET
			status = EXCLUDED.status,
			comments = EXCLUDED.comments,
			decided_by = EXCLUDED.decided_by,
			decision_date = NOW()
		RETURNING id, paper_id, status, comments, decided_by, decision_date
	`
	stored := &models.Decision{}
	err := d.db.QueryRowContext(ctx, query,
		decision.PaperID, decision.Status, decision.Comments, decision.DecidedBy,
	).Scan(
		&stored.ID, &stored.PaperID, &stored.Status, &stored.Comments,
		&stored.DecidedBy, &stored.DecisionDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert decision: %w", err)
	}
	return stored, nil
}

// GetByPaper retrieves the decision for a paper, nil if not found
func (d *DecisionRepository) GetByPaper(ctx context.Context, paperID uint) (*models.Decision, error) {
	query := `
		SELECT id, paper_id, status, comments, decided_by, decision_date
		FROM decisions WHERE paper_id = $1
	`
	decision := &models.Decision{}
	err := d.db.QueryRowContext(ctx, query, paperID).Scan(
		&decision.ID, &decision.PaperID, &decision.Status, &decision.Comments,
		&decision.DecidedBy, &decision.DecisionDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}
	return decision, nil
}
