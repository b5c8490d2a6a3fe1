package handlers

import (
	"encoding/json"
	"net/http"

	"confms/internal/middleware"
	"confms/internal/service"
)

// AssignmentHandler exposes chair-side assignment endpoints
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// AssignReviewer godoc
// @Summary Assign a reviewer to a paper
// @Description Accepts an internal reviewer id or an email; unknown emails create a reviewer
// @Tags assignments
// @Accept json
// @Produce json
// @Param request body object true "Assignment"
// @Success 201 {object} models.Assignment
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /assignments [post]
// @Security BearerAuth
func (h *AssignmentHandler) AssignReviewer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaperID       uint   `json:"paper_id"`
		ReviewerID    uint   `json:"reviewer_id"`
		ReviewerEmail string `json:"reviewer_email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	assignment, err := h.assignmentService.AssignReviewer(r.Context(), req.PaperID, req.ReviewerID, req.ReviewerEmail)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSONResponse(w, http.StatusCreated, assignment)
}

// ListReviewersForPaper godoc
// @Summary List the reviewers assigned to a paper
// @Tags assignments
// @Produce json
// @Param paperId path int true "Paper ID"
// @Success 200 {array} models.AssignedReviewer
// @Failure 400 {object} map[string]string
// @Router /assignments/paper/{paperId} [get]
// @Security BearerAuth
func (h *AssignmentHandler) ListReviewersForPaper(w http.ResponseWriter, r *http.Request) {
	paperID, err := pathID(r, "paperId")
	if err != nil {
		ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	reviewers, err := h.assignmentService.ListReviewersForPaper(r.Context(), paperID)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSONResponse(w, http.StatusOK, reviewers)
}

// RespondToAssignment godoc
// @Summary Accept or decline a review assignment
// @Description Only the assigned reviewer may respond; completed assignments are immutable
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Param request body object true "Response"
// @Success 200 {object} models.Assignment
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /assignments/{id}/respond [post]
// @Security BearerAuth
func (h *AssignmentHandler) RespondToAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, ok := middleware.GetUserID(r)
	if !ok {
		ErrorResponse(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req struct {
		Accept bool `json:"accept"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	assignment, err := h.assignmentService.RespondToAssignment(r.Context(), assignmentID, userID, req.Accept)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSONResponse(w, http.StatusOK, assignment)
}
