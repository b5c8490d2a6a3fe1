package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"confms/internal/middleware"
	"confms/internal/service"
)

// ReviewerHandler exposes reviewer invitation and listing endpoints
type ReviewerHandler struct {
	reviewerService *service.ReviewerService
}

// NewReviewerHandler creates a new reviewer handler
func NewReviewerHandler(reviewerService *service.ReviewerService) *ReviewerHandler {
	return &ReviewerHandler{reviewerService: reviewerService}
}

// InviteReviewer godoc
// @Summary Invite a reviewer to a conference
// @Description Creates a pending invitation and emails the invitation link
// @Tags reviewers
// @Accept json
// @Produce json
// @Param request body object true "Invitation"
// @Success 201 {object} models.ReviewerInvitation
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reviewers/invite [post]
// @Security BearerAuth
func (h *ReviewerHandler) InviteReviewer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConferenceID uint   `json:"conference_id"`
		Email        string `json:"email"`
		FullName     string `json:"full_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ConferenceID == 0 || strings.TrimSpace(req.Email) == "" {
		ErrorResponse(w, http.StatusBadRequest, "conference_id and email are required")
		return
	}

	invitation, err := h.reviewerService.InviteReviewer(r.Context(), req.ConferenceID, req.Email, req.FullName)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSONResponse(w, http.StatusCreated, invitation)
}

// RespondToInvitation godoc
// @Summary Accept or decline a reviewer invitation
// @Description Accepting requires authentication and registers the caller as reviewer
// @Tags reviewers
// @Accept json
// @Produce json
// @Param request body object true "Response with invitation token"
// @Success 200 {object} models.ReviewerInvitation
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reviewers/invitations/respond [post]
func (h *ReviewerHandler) RespondToInvitation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token  string `json:"token"`
		Accept bool   `json:"accept"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		ErrorResponse(w, http.StatusBadRequest, "token is required")
		return
	}

	userID, _ := middleware.GetUserID(r)

	invitation, err := h.reviewerService.RespondToInvitation(r.Context(), req.Token, req.Accept, userID)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSONResponse(w, http.StatusOK, invitation)
}

// ListReviewers godoc
// @Summary List the reviewers of a conference
// @Tags reviewers
// @Produce json
// @Param conferenceId path int true "Conference ID"
// @Success 200 {array} models.Reviewer
// @Failure 400 {object} map[string]string
// @Router /reviewers/conference/{conferenceId} [get]
// @Security BearerAuth
func (h *ReviewerHandler) ListReviewers(w http.ResponseWriter, r *http.Request) {
	conferenceID, err := pathID(r, "conferenceId")
	if err != nil {
		ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	reviewers, err := h.reviewerService.ListReviewers(r.Context(), conferenceID)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSONResponse(w, http.StatusOK, reviewers)
}

// ListInvitations godoc
// @Summary List the invitations of a conference
// @Tags reviewers
// @Produce json
// @Param conferenceId path int true "Conference ID"
// @Success 200 {array} models.ReviewerInvitation
// @Failure 400 {object} map[string]string
// @Router /reviewers/invitations/conference/{conferenceId} [get]
// @Security BearerAuth
func (h *ReviewerHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	conferenceID, err := pathID(r, "conferenceId")
	if err != nil {
		ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	invitations, err := h.reviewerService.ListInvitations(r.Context(), conferenceID)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSONResponse(w, http.StatusOK, invitations)
}
