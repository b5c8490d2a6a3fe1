package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"confms/internal/middleware"
	"confms/internal/models"
	"confms/internal/service"
)

// ReviewHandler exposes review submission, aggregation and decision endpoints
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// SubmitReview godoc
// @Summary Submit or overwrite a review
// @Description Stores the caller's review for a paper; a resubmission replaces the earlier one
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body object true "Review scores and comments"
// @Success 200 {object} models.PaperReview
// @Failure 400 {object} map[string]string
// @Router /reviews/submit [post]
// @Security BearerAuth
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaperID              uint   `json:"paper_id"`
		ReviewerID           string `json:"reviewer_id"`
		NoveltyScore         int    `json:"novelty_score"`
		MethodologyScore     int    `json:"methodology_score"`
		PresentationScore    int    `json:"presentation_score"`
		CommentsForAuthor    string `json:"comments_for_author"`
		ConfidentialComments string `json:"confidential_comments"`
		Recommendation       string `json:"recommendation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PaperID == 0 {
		ErrorResponse(w, http.StatusBadRequest, "paper_id is required")
		return
	}

	reviewerUserID := req.ReviewerID
	if userID, ok := middleware.GetUserID(r); ok {
		reviewerUserID = userID
	}

	review, err := h.reviewService.SubmitReview(r.Context(), req.PaperID, reviewerUserID, service.SubmitReviewInput{
		NoveltyScore:         req.NoveltyScore,
		MethodologyScore:     req.MethodologyScore,
		PresentationScore:    req.PresentationScore,
		CommentsForAuthor:    req.CommentsForAuthor,
		ConfidentialComments: req.ConfidentialComments,
		Recommendation:       models.ParseRecommendation(req.Recommendation),
	})
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSONResponse(w, http.StatusOK, review)
}

// GetReviewSummary godoc
// @Summary Get the aggregated review summary of a paper
// @Tags reviews
// @Produce json
// @Param paperId path int true "Paper ID"
// @Success 200 {object} models.ReviewSummary
// @Failure 400 {object} map[string]string
// @Router /reviews/summary/{paperId} [get]
// @Security BearerAuth
func (h *ReviewHandler) GetReviewSummary(w http.ResponseWriter, r *http.Request) {
	paperID, err := pathID(r, "paperId")
	if err != nil {
		ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.reviewService.GetReviewSummary(r.Context(), paperID)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSONResponse(w, http.StatusOK, summary)
}

// GetAssignments godoc
// @Summary List the caller's review assignments
// @Tags reviews
// @Produce json
// @Param status query string false "Filter by assignment status"
// @Success 200 {array} models.Assignment
// @Failure 401 {object} map[string]string
// @Router /reviews/assignments [get]
// @Security BearerAuth
func (h *ReviewHandler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		ErrorResponse(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	assignments, err := h.reviewService.GetAssignmentsForReviewer(r.Context(), userID, r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSONResponse(w, http.StatusOK, assignments)
}

// GetSubmissionsForDecision godoc
// @Summary List review progress of all papers
// @Tags reviews
// @Produce json
// @Success 200 {array} models.PaperDecisionOverview
// @Router /reviews/submissions-for-decision [get]
// @Security BearerAuth
func (h *ReviewHandler) GetSubmissionsForDecision(w http.ResponseWriter, r *http.Request) {
	overviews, err := h.reviewService.GetSubmissionsForDecision(r.Context())
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSONResponse(w, http.StatusOK, overviews)
}

// SubmitDecision godoc
// @Summary Record the chair decision for a paper
// @Description Overwrites any earlier decision; papers without assignments are rejected
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body object true "Decision"
// @Success 200 {object} models.Decision
// @Failure 400 {object} map[string]string
// @Router /reviews/decision [post]
// @Security BearerAuth
func (h *ReviewHandler) SubmitDecision(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaperID  uint   `json:"paper_id"`
		Status   string `json:"status"`
		Comments string `json:"comments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PaperID == 0 || strings.TrimSpace(req.Status) == "" {
		ErrorResponse(w, http.StatusBadRequest, "paper_id and status are required")
		return
	}

	chairID, _ := middleware.GetUserID(r)
	chairEmail, _ := middleware.GetUserEmail(r)

	decision, err := h.reviewService.SubmitDecision(r.Context(), req.PaperID, req.Status, req.Comments, chairID, chairEmail)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSONResponse(w, http.StatusOK, decision)
}

// AddDiscussionComment godoc
// @Summary Add a PC discussion comment to a paper
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body object true "Comment"
// @Success 201 {object} models.DiscussionComment
// @Failure 400 {object} map[string]string
// @Router /reviews/discussion [post]
// @Security BearerAuth
func (h *ReviewHandler) AddDiscussionComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaperID uint   `json:"paper_id"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PaperID == 0 || strings.TrimSpace(req.Content) == "" {
		ErrorResponse(w, http.StatusBadRequest, "paper_id and content are required")
		return
	}

	userID, _ := middleware.GetUserID(r)
	userName, _ := middleware.GetUserName(r)

	comment, err := h.reviewService.AddDiscussionComment(r.Context(), req.PaperID, userID, userName, req.Content)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSONResponse(w, http.StatusCreated, comment)
}

// GetDiscussion godoc
// @Summary List the PC discussion comments of a paper
// @Tags reviews
// @Produce json
// @Param paperId path int true "Paper ID"
// @Success 200 {array} models.DiscussionComment
// @Failure 400 {object} map[string]string
// @Router /reviews/discussion/{paperId} [get]
// @Security BearerAuth
func (h *ReviewHandler) GetDiscussion(w http.ResponseWriter, r *http.Request) {
	paperID, err := pathID(r, "paperId")
	if err != nil {
		ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	comments, err := h.reviewService.GetDiscussion(r.Context(), paperID)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSONResponse(w, http.StatusOK, comments)
}
