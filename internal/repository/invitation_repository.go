package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"confms/internal/models"
)

// InvitationRepository handles reviewer invitation persistence
type InvitationRepository struct {
	db *sql.DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *sql.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create inserts a new invitation; the unique (conference_id, email) key
// rejects duplicates
func (i *InvitationRepository) Create(ctx context.Context, invitation *models.ReviewerInvitation) (*models.ReviewerInvitation, error) {
	query := `
		INSERT INTO reviewer_invitations (conference_id, email, full_name, status, token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sent_at
	`
	err := i.db.QueryRowContext(ctx, query,
		invitation.ConferenceID, invitation.Email, invitation.FullName,
		invitation.Status, invitation.Token,
	).Scan(&invitation.ID, &invitation.SentAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}
	return invitation, nil
}

// GetByID retrieves an invitation by id, nil if not found
func (i *InvitationRepository) GetByID(ctx context.Context, id uint) (*models.ReviewerInvitation, error) {
	query := `
		SELECT id, conference_id, email, full_name, status, token, sent_at, responded_at
		FROM reviewer_invitations WHERE id = $1
	`
	return i.scanOne(i.db.QueryRowContext(ctx, query, id))
}

// GetByConferenceAndEmail retrieves an invitation for a conference and email,
// nil if not found
func (i *InvitationRepository) GetByConferenceAndEmail(ctx context.Context, conferenceID uint, email string) (*models.ReviewerInvitation, error) {
	query := `
		SELECT id, conference_id, email, full_name, status, token, sent_at, responded_at
		FROM reviewer_invitations WHERE conference_id = $1 AND LOWER(email) = LOWER($2)
	`
	return i.scanOne(i.db.QueryRowContext(ctx, query, conferenceID, email))
}

// MarkResponded sets the status and response time of a Pending invitation.
// Returns false when the invitation was already answered.
func (i *InvitationRepository) MarkResponded(ctx context.Context, id uint, status string, respondedAt time.Time) (bool, error) {
	query := `
		UPDATE reviewer_invitations
		SET status = $1, responded_at = $2
		WHERE id = $3 AND status = $4
	`
	result, err := i.db.ExecContext(ctx, query, status, respondedAt, id, models.InvitationPending)
	if err != nil {
		return false, fmt.Errorf("failed to update invitation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update invitation: %w", err)
	}
	return affected > 0, nil
}

// ListByConference returns all invitations of a conference, newest first
func (i *InvitationRepository) ListByConference(ctx context.Context, conferenceID uint) ([]models.ReviewerInvitation, error) {
	query := `
		SELECT id, conference_id, email, full_name, status, token, sent_at, responded_at
		FROM reviewer_invitations WHERE conference_id = $1
		ORDER BY sent_at DESC, id DESC
	`
	rows, err := i.db.QueryContext(ctx, query, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	invitations := []models.ReviewerInvitation{}
	for rows.Next() {
		var invitation models.ReviewerInvitation
		if err := rows.Scan(
			&invitation.ID, &invitation.ConferenceID, &invitation.Email, &invitation.FullName,
			&invitation.Status, &invitation.Token, &invitation.SentAt, &invitation.RespondedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, invitation)
	}

	return invitations, rows.Err()
}

func (i *InvitationRepository) scanOne(row *sql.Row) (*models.ReviewerInvitation, error) {
	invitation := &models.ReviewerInvitation{}
	err := row.Scan(
		&invitation.ID, &invitation.ConferenceID, &invitation.Email, &invitation.FullName,
		&invitation.Status, &invitation.Token, &invitation.SentAt, &invitation.RespondedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	return invitation, nil
}
