package models

import (
	"strings"
	"time"
)

// Reviewer represents a program-committee member of a conference
type Reviewer struct {
	ID           uint      `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"` // ID issued by the identity service, "" when unknown
	ConferenceID uint      `json:"conference_id" db:"conference_id"`
	Email        string    `json:"email" db:"email"`
	FullName     string    `json:"full_name" db:"full_name"`
	Expertise    string    `json:"expertise" db:"expertise"` // comma-separated expertise keywords
	MaxPapers    int       `json:"max_papers" db:"max_papers"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ExpertiseKeywords splits the comma-separated expertise field into a clean list
func (r *Reviewer) ExpertiseKeywords() []string {
	var keywords []string
	for _, k := range strings.Split(r.Expertise, ",") {
		if trimmed := strings.TrimSpace(k); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// Assignment status values
const (
	AssignmentPending   = "Pending"
	AssignmentAccepted  = "Accepted"
	AssignmentDeclined  = "Declined"
	AssignmentCompleted = "Completed"
)

// Assignment links a reviewer to a paper; unique per (paper_id, reviewer_id)
type Assignment struct {
	ID           uint       `json:"id" db:"id"`
	PaperID      uint       `json:"paper_id" db:"paper_id"`
	ReviewerID   uint       `json:"reviewer_id" db:"reviewer_id"`
	Status       string     `json:"status" db:"status"`
	AssignedDate time.Time  `json:"assigned_date" db:"assigned_date"`
	DueDate      *time.Time `json:"due_date,omitempty" db:"due_date"`
}

// Recommendation is the closed set of reviewer verdicts
type Recommendation string

const (
	RecommendAccept        Recommendation = "Accept"
	RecommendReject        Recommendation = "Reject"
	RecommendMinorRevision Recommendation = "MinorRevision"
	RecommendMajorRevision Recommendation = "MajorRevision"
	RecommendUndecided     Recommendation = "Undecided"
)

// ParseRecommendation maps free-text verdicts onto the closed enumeration.
// Exact "accept"/"reject" (case-insensitive) map directly, anything containing
// "revision" becomes a minor or major revision, everything else is Undecided.
func ParseRecommendation(s string) Recommendation {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case lower == "accept":
		return RecommendAccept
	case lower == "reject":
		return RecommendReject
	case strings.Contains(lower, "revision"):
		if strings.Contains(lower, "major") {
			return RecommendMajorRevision
		}
		return RecommendMinorRevision
	default:
		return RecommendUndecided
	}
}

// IsRevision reports whether the recommendation asks for any revision
func (r Recommendation) IsRevision() bool {
	return r == RecommendMinorRevision || r == RecommendMajorRevision
}

// PaperReview holds one reviewer's scores for an assignment; unique per
// assignment_id, overwritten in place on resubmission
type PaperReview struct {
	ID                   uint           `json:"id" db:"id"`
	AssignmentID         uint           `json:"assignment_id" db:"assignment_id"`
	NoveltyScore         int            `json:"novelty_score" db:"novelty_score"`
	MethodologyScore     int            `json:"methodology_score" db:"methodology_score"`
	PresentationScore    int            `json:"presentation_score" db:"presentation_score"`
	CommentsForAuthor    string         `json:"comments_for_author" db:"comments_for_author"`
	ConfidentialComments string         `json:"confidential_comments" db:"confidential_comments"`
	Recommendation       Recommendation `json:"recommendation" db:"recommendation"`
	CreatedAt            time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt            *time.Time     `json:"updated_at,omitempty" db:"updated_at"`
}

// Decision is the chair's final verdict for a paper; unique per paper_id
type Decision struct {
	ID           uint      `json:"id" db:"id"`
	PaperID      uint      `json:"paper_id" db:"paper_id"`
	Status       string    `json:"status" db:"status"`
	Comments     string    `json:"comments" db:"comments"`
	DecidedBy    string    `json:"decided_by" db:"decided_by"`
	DecisionDate time.Time `json:"decision_date" db:"decision_date"`
}

// Invitation status values
const (
	InvitationPending  = "Pending"
	InvitationAccepted = "Accepted"
	InvitationDeclined = "Declined"
)

// ReviewerInvitation tracks a pending reviewer invite; unique per
// (conference_id, email), answered at most once
type ReviewerInvitation struct {
	ID           uint       `json:"id" db:"id"`
	ConferenceID uint       `json:"conference_id" db:"conference_id"`
	Email        string     `json:"email" db:"email"`
	FullName     string     `json:"full_name" db:"full_name"`
	Status       string     `json:"status" db:"status"`
	Token        string     `json:"-" db:"token"`
	SentAt       time.Time  `json:"sent_at" db:"sent_at"`
	RespondedAt  *time.Time `json:"responded_at,omitempty" db:"responded_at"`
}

// DiscussionComment is an internal PC discussion note on a paper
type DiscussionComment struct {
	ID        uint      `json:"id" db:"id"`
	PaperID   uint      `json:"paper_id" db:"paper_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	UserName  string    `json:"user_name" db:"user_name"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SubmissionExcerpt is a stored excerpt of a submitted paper used for
// corpus-wide plagiarism checks
type SubmissionExcerpt struct {
	ID        uint      `json:"id" db:"id"`
	PaperID   uint      `json:"paper_id" db:"paper_id"`
	Title     string    `json:"title" db:"title"`
	Excerpt   string    `json:"excerpt" db:"excerpt"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ReviewDetail is one review row inside a review summary
type ReviewDetail struct {
	ReviewerID           string         `json:"reviewer_id"`
	ReviewerName         string         `json:"reviewer_name"`
	NoveltyScore         int            `json:"novelty_score"`
	MethodologyScore     int            `json:"methodology_score"`
	PresentationScore    int            `json:"presentation_score"`
	CommentsForAuthor    string         `json:"comments_for_author"`
	ConfidentialComments string         `json:"confidential_comments"`
	Recommendation       Recommendation `json:"recommendation"`
	SubmittedAt          time.Time      `json:"submitted_at"`
}

// ReviewSummary aggregates all reviews of a paper for chair decision-making
type ReviewSummary struct {
	PaperID                  uint           `json:"paper_id"`
	TotalReviews             int            `json:"total_reviews"`
	AverageNoveltyScore      float64        `json:"average_novelty_score"`
	AverageMethodologyScore  float64        `json:"average_methodology_score"`
	AveragePresentationScore float64        `json:"average_presentation_score"`
	OverallAverageScore      float64        `json:"overall_average_score"`
	AcceptCount              int            `json:"accept_count"`
	RejectCount              int            `json:"reject_count"`
	RevisionCount            int            `json:"revision_count"`
	Reviews                  []ReviewDetail `json:"reviews"`
}

// PaperDecisionOverview summarises review progress for the decision dashboard
type PaperDecisionOverview struct {
	PaperID          uint     `json:"paper_id"`
	TotalAssignments int      `json:"total_assignments"`
	CompletedReviews int      `json:"completed_reviews"`
	AverageScore     *float64 `json:"average_score,omitempty"`
	CurrentStatus    string   `json:"current_status"`
}

// AssignedReviewer pairs assignment state with reviewer identity for a paper
type AssignedReviewer struct {
	AssignmentID uint      `json:"assignment_id"`
	ReviewerID   uint      `json:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name"`
	Status       string    `json:"status"`
	AssignedDate time.Time `json:"assigned_date"`
}
