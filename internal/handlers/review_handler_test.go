package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// validation paths below return before any service call
func TestSubmitReviewValidation(t *testing.T) {
	handler := NewReviewHandler(nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed body", body: "{not json"},
		{name: "missing paper id", body: `{"novelty_score":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/submit", strings.NewReader(tt.body))
			recorder := httptest.NewRecorder()
			handler.SubmitReview(recorder, req)

			if recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", recorder.Code)
			}
		})
	}
}

func TestSubmitDecisionValidation(t *testing.T) {
	handler := NewReviewHandler(nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed body", body: "not json"},
		{name: "missing status", body: `{"paper_id":1}`},
		{name: "missing paper id", body: `{"status":"Accepted"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/decision", strings.NewReader(tt.body))
			recorder := httptest.NewRecorder()
			handler.SubmitDecision(recorder, req)

			if recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", recorder.Code)
			}
		})
	}
}

func TestGetReviewSummaryRejectsBadPaperID(t *testing.T) {
	handler := NewReviewHandler(nil)

	for _, paperID := range []string{"abc", "0", "-3"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews/summary/"+paperID, nil)
		req.SetPathValue("paperId", paperID)
		recorder := httptest.NewRecorder()
		handler.GetReviewSummary(recorder, req)

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("paperId %q: status = %d, want 400", paperID, recorder.Code)
		}
	}
}

func TestGetAssignmentsRequiresAuth(t *testing.T) {
	handler := NewReviewHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews/assignments", nil)
	recorder := httptest.NewRecorder()
	handler.GetAssignments(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", recorder.Code)
	}
}
