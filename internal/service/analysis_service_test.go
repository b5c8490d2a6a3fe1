package service

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"confms/internal/repository"
	"confms/internal/testutil"
)

func TestMatchReviewers(t *testing.T) {
	service := NewAnalysisService(nil)

	matches := service.MatchReviewers(
		[]string{"neural", "networks", "vision"},
		[]ReviewerCandidate{
			{ReviewerID: "r1", ReviewerName: "Weak Match", Expertise: []string{"databases"}},
			{ReviewerID: "r2", ReviewerName: "Strong Match", Expertise: []string{"neural", "networks", "vision"}},
			{ReviewerID: "r3", ReviewerName: "Partial Match", Expertise: []string{"neural", "planning"}},
		},
	)

	if len(matches) != 3 {
		t.Fatalf("len(matches) = %d, want 3", len(matches))
	}
	if matches[0].ReviewerID != "r2" {
		t.Errorf("best match = %q, want r2", matches[0].ReviewerID)
	}
	if matches[0].MatchScore != 100.00 {
		t.Errorf("best match score = %v, want 100.00", matches[0].MatchScore)
	}
	if !reflect.DeepEqual(matches[0].MatchingKeywords, []string{"neural", "networks", "vision"}) {
		t.Errorf("best match keywords = %v", matches[0].MatchingKeywords)
	}
	if matches[2].ReviewerID != "r1" {
		t.Errorf("weakest match = %q, want r1", matches[2].ReviewerID)
	}
	if matches[2].MatchScore != 0 {
		t.Errorf("weakest match score = %v, want 0", matches[2].MatchScore)
	}
}

func TestMatchReviewersTiesKeepInputOrder(t *testing.T) {
	service := NewAnalysisService(nil)

	matches := service.MatchReviewers(
		[]string{"neural"},
		[]ReviewerCandidate{
			{ReviewerID: "first", Expertise: []string{"neural"}},
			{ReviewerID: "second", Expertise: []string{"neural"}},
		},
	)

	if matches[0].ReviewerID != "first" || matches[1].ReviewerID != "second" {
		t.Errorf("tie order = %q, %q, want first, second", matches[0].ReviewerID, matches[1].ReviewerID)
	}
}

func TestTruncateExcerpt(t *testing.T) {
	short := "a short submission"
	if got := truncateExcerpt(short); got != short {
		t.Errorf("truncateExcerpt() = %q, want unchanged text", got)
	}

	long := strings.Repeat("a", excerptLimit+10)
	if got := truncateExcerpt(long); len(got) != excerptLimit {
		t.Errorf("len = %d, want %d", len(got), excerptLimit)
	}

	// a two-byte rune straddling the limit must be dropped whole
	straddling := strings.Repeat("a", excerptLimit-1) + "é" + strings.Repeat("b", 10)
	got := truncateExcerpt(straddling)
	if !utf8.ValidString(got) {
		t.Errorf("truncated excerpt is not valid UTF-8: %q", got[len(got)-4:])
	}
	if len(got) != excerptLimit-1 {
		t.Errorf("len = %d, want %d", len(got), excerptLimit-1)
	}
}

func TestCheckPlagiarism(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	service := NewAnalysisService(repository.NewExcerptRepository(tc.DB))
	ctx := context.Background()

	// first submission has an empty corpus to compare against
	report, err := service.CheckPlagiarism(ctx, 1, "Original Paper",
		"neural networks improve image classification accuracy dramatically")
	if err != nil {
		t.Fatalf("CheckPlagiarism() error = %v", err)
	}
	if report.DocumentsChecked != 0 || report.IsPlagiarized {
		t.Errorf("first check = %+v, want empty corpus result", report)
	}

	// a near copy of the first submission is flagged
	report, err = service.CheckPlagiarism(ctx, 2, "Copied Paper",
		"neural networks improve image classification accuracy dramatically")
	if err != nil {
		t.Fatalf("CheckPlagiarism() second call error = %v", err)
	}
	if report.DocumentsChecked != 1 {
		t.Fatalf("DocumentsChecked = %d, want 1", report.DocumentsChecked)
	}
	if !report.IsPlagiarized {
		t.Error("expected the copy to be flagged")
	}
	if report.MaxScore != 100.00 {
		t.Errorf("MaxScore = %v, want 100.00", report.MaxScore)
	}
	if report.Matches[0].PaperID != 1 {
		t.Errorf("match paper = %d, want 1", report.Matches[0].PaperID)
	}

	// an unrelated submission is not flagged
	report, err = service.CheckPlagiarism(ctx, 3, "Unrelated Paper",
		"medieval castle architecture across central europe")
	if err != nil {
		t.Fatalf("CheckPlagiarism() third call error = %v", err)
	}
	if report.DocumentsChecked != 2 {
		t.Errorf("DocumentsChecked = %d, want 2", report.DocumentsChecked)
	}
	if report.IsPlagiarized {
		t.Error("unrelated text must not be flagged")
	}
}
