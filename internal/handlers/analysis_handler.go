package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"

	"confms/internal/service"
	"confms/internal/textanalysis"
)

// AnalysisHandler exposes the text analysis endpoints
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// CheckSimilarity godoc
// @Summary Compare two texts for similarity
// @Description Computes cosine and Jaccard similarity and flags likely plagiarism
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body object true "Texts to compare"
// @Success 200 {object} textanalysis.SimilarityResult
// @Failure 400 {object} map[string]string
// @Router /analysis/similarity [post]
// @Security BearerAuth
func (h *AnalysisHandler) CheckSimilarity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text1 string `json:"text1"`
		Text2 string `json:"text2"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text1) == "" || strings.TrimSpace(req.Text2) == "" {
		ErrorResponse(w, http.StatusBadRequest, "Both texts are required")
		return
	}

	JSONResponse(w, http.StatusOK, textanalysis.CheckSimilarity(req.Text1, req.Text2))
}

// Summarize godoc
// @Summary Summarize a text
// @Description Produces an extractive summary of at most maxSentences sentences
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body object true "Text and sentence limit"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /analysis/summarize [post]
// @Security BearerAuth
func (h *AnalysisHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text         string `json:"text"`
		MaxSentences *int   `json:"max_sentences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		ErrorResponse(w, http.StatusBadRequest, "Text is required")
		return
	}

	maxSentences := 3
	if req.MaxSentences != nil {
		maxSentences = *req.MaxSentences
	}
	if maxSentences < 1 || maxSentences > 10 {
		ErrorResponse(w, http.StatusBadRequest, "max_sentences must be between 1 and 10")
		return
	}

	summary := textanalysis.Summarize(req.Text, maxSentences)

	ratio := 0.0
	if len(req.Text) > 0 {
		ratio = float64(len(summary)) / float64(len(req.Text))
	}

	JSONResponse(w, http.StatusOK, map[string]interface{}{
		"original_length":   len(req.Text),
		"summary_length":    len(summary),
		"compression_ratio": roundRatio(ratio),
		"summary":           summary,
	})
}

func roundRatio(ratio float64) float64 {
	return math.Round(ratio*100) / 100
}

// ExtractKeywords godoc
// @Summary Extract keywords from a text
// @Description Returns the most frequent content words of the text
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body object true "Text and keyword limit"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /analysis/keywords [post]
// @Security BearerAuth
func (h *AnalysisHandler) ExtractKeywords(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text        string `json:"text"`
		MaxKeywords *int   `json:"max_keywords"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		ErrorResponse(w, http.StatusBadRequest, "Text is required")
		return
	}

	maxKeywords := 10
	if req.MaxKeywords != nil {
		maxKeywords = *req.MaxKeywords
	}
	if maxKeywords < 1 || maxKeywords > 50 {
		ErrorResponse(w, http.StatusBadRequest, "max_keywords must be between 1 and 50")
		return
	}

	keywords := textanalysis.ExtractKeywords(req.Text, maxKeywords)

	JSONResponse(w, http.StatusOK, map[string]interface{}{
		"keywords": keywords,
		"count":    len(keywords),
	})
}

// MatchReviewers godoc
// @Summary Rank reviewers by expertise match
// @Description Scores each reviewer candidate against the paper keywords
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body object true "Paper keywords and reviewer candidates"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /analysis/reviewer-match [post]
// @Security BearerAuth
func (h *AnalysisHandler) MatchReviewers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaperKeywords []string                    `json:"paper_keywords"`
		Reviewers     []service.ReviewerCandidate `json:"reviewers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.PaperKeywords) == 0 {
		ErrorResponse(w, http.StatusBadRequest, "paper_keywords are required")
		return
	}
	if len(req.Reviewers) == 0 {
		ErrorResponse(w, http.StatusBadRequest, "reviewers are required")
		return
	}

	matches := h.analysisService.MatchReviewers(req.PaperKeywords, req.Reviewers)

	response := map[string]interface{}{
		"paper_keywords": req.PaperKeywords,
		"matches":        matches,
	}
	if len(matches) > 0 {
		response["best_match"] = matches[0]
	}
	JSONResponse(w, http.StatusOK, response)
}

// CheckPlagiarism godoc
// @Summary Check a submission against the stored corpus
// @Description Compares the text against all other stored submission excerpts
// @Tags analysis
// @Accept json
// @Produce json
// @Param id path int true "Paper ID"
// @Param request body object true "Submission text"
// @Success 200 {object} service.PlagiarismReport
// @Failure 400 {object} map[string]string
// @Router /analysis/plagiarism/{id} [post]
// @Security BearerAuth
func (h *AnalysisHandler) CheckPlagiarism(w http.ResponseWriter, r *http.Request) {
	paperID, err := pathID(r, "id")
	if err != nil {
		ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		ErrorResponse(w, http.StatusBadRequest, "Text is required")
		return
	}

	report, err := h.analysisService.CheckPlagiarism(r.Context(), paperID, req.Title, req.Text)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSONResponse(w, http.StatusOK, report)
}
