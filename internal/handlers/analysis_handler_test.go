package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"confms/internal/service"
)

func newAnalysisHandler() *AnalysisHandler {
	return NewAnalysisHandler(service.NewAnalysisService(nil))
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func TestCheckSimilarityHandler(t *testing.T) {
	handler := newAnalysisHandler()

	t.Run("rejects blank texts", func(t *testing.T) {
		for _, body := range []map[string]string{
			{"text1": "", "text2": "something"},
			{"text1": "something", "text2": "   "},
		} {
			recorder := postJSON(t, handler.CheckSimilarity, body)
			if recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 for %v", recorder.Code, body)
			}
		}
	})

	t.Run("returns scores", func(t *testing.T) {
		recorder := postJSON(t, handler.CheckSimilarity, map[string]string{
			"text1": "machine learning deep learning neural networks",
			"text2": "neural networks deep learning machine learning",
		})
		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", recorder.Code)
		}

		var result struct {
			CombinedScore float64 `json:"similarity_score"`
			IsPlagiarized bool    `json:"is_plagiarized"`
		}
		if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if result.CombinedScore != 100.00 || !result.IsPlagiarized {
			t.Errorf("result = %+v, want flagged 100.00", result)
		}
	})
}

func TestSummarizeHandler(t *testing.T) {
	handler := newAnalysisHandler()

	t.Run("rejects blank text", func(t *testing.T) {
		recorder := postJSON(t, handler.Summarize, map[string]interface{}{"text": " "})
		if recorder.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", recorder.Code)
		}
	})

	t.Run("rejects out-of-range limits", func(t *testing.T) {
		for _, limit := range []int{0, 11, -1} {
			recorder := postJSON(t, handler.Summarize, map[string]interface{}{
				"text":          "A perfectly reasonable sentence for testing purposes.",
				"max_sentences": limit,
			})
			if recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 for limit %d", recorder.Code, limit)
			}
		}
	})

	t.Run("returns summary with statistics", func(t *testing.T) {
		text := "Neural networks classify images well. Training them requires large datasets."
		recorder := postJSON(t, handler.Summarize, map[string]interface{}{
			"text":          text,
			"max_sentences": 5,
		})
		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", recorder.Code)
		}

		var result struct {
			OriginalLength   int     `json:"original_length"`
			SummaryLength    int     `json:"summary_length"`
			CompressionRatio float64 `json:"compression_ratio"`
			Summary          string  `json:"summary"`
		}
		if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if result.Summary != text {
			t.Errorf("short text must come back unchanged, got %q", result.Summary)
		}
		if result.OriginalLength != len(text) || result.SummaryLength != len(text) {
			t.Errorf("lengths = %d/%d, want %d", result.OriginalLength, result.SummaryLength, len(text))
		}
		if result.CompressionRatio != 1.0 {
			t.Errorf("CompressionRatio = %v, want 1.0", result.CompressionRatio)
		}
	})
}

func TestExtractKeywordsHandler(t *testing.T) {
	handler := newAnalysisHandler()

	t.Run("rejects out-of-range limits", func(t *testing.T) {
		for _, limit := range []int{0, 51} {
			recorder := postJSON(t, handler.ExtractKeywords, map[string]interface{}{
				"text":         "neural networks",
				"max_keywords": limit,
			})
			if recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 for limit %d", recorder.Code, limit)
			}
		}
	})

	t.Run("returns keywords with count", func(t *testing.T) {
		recorder := postJSON(t, handler.ExtractKeywords, map[string]interface{}{
			"text": "networks networks neural training",
		})
		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", recorder.Code)
		}

		var result struct {
			Keywords []string `json:"keywords"`
			Count    int      `json:"count"`
		}
		if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if result.Count != 3 || len(result.Keywords) != 3 {
			t.Errorf("result = %+v, want 3 keywords", result)
		}
		if result.Keywords[0] != "networks" {
			t.Errorf("top keyword = %q, want networks", result.Keywords[0])
		}
	})
}

func TestMatchReviewersHandler(t *testing.T) {
	handler := newAnalysisHandler()

	t.Run("rejects missing input", func(t *testing.T) {
		recorder := postJSON(t, handler.MatchReviewers, map[string]interface{}{
			"paper_keywords": []string{},
			"reviewers":      []map[string]interface{}{},
		})
		if recorder.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", recorder.Code)
		}
	})

	t.Run("returns ranked matches with best match", func(t *testing.T) {
		recorder := postJSON(t, handler.MatchReviewers, map[string]interface{}{
			"paper_keywords": []string{"neural", "networks"},
			"reviewers": []map[string]interface{}{
				{"reviewer_id": "r1", "name": "One", "expertise": []string{"databases"}},
				{"reviewer_id": "r2", "name": "Two", "expertise": []string{"neural", "networks"}},
			},
		})
		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", recorder.Code)
		}

		var result struct {
			Matches   []service.ReviewerMatch `json:"matches"`
			BestMatch service.ReviewerMatch   `json:"best_match"`
		}
		if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if result.BestMatch.ReviewerID != "r2" {
			t.Errorf("best match = %q, want r2", result.BestMatch.ReviewerID)
		}
		if len(result.Matches) != 2 {
			t.Errorf("len(matches) = %d, want 2", len(result.Matches))
		}
	})
}
