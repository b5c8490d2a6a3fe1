package models

import (
	"reflect"
	"testing"
)

func TestParseRecommendation(t *testing.T) {
	tests := []struct {
		input string
		want  Recommendation
	}{
		{"Accept", RecommendAccept},
		{"accept", RecommendAccept},
		{"  ACCEPT  ", RecommendAccept},
		{"Reject", RecommendReject},
		{"reject", RecommendReject},
		{"Minor Revision", RecommendMinorRevision},
		{"minor revision", RecommendMinorRevision},
		{"Major Revision", RecommendMajorRevision},
		{"needs major revision", RecommendMajorRevision},
		{"revision", RecommendMinorRevision},
		{"strong accept please", RecommendUndecided},
		{"weak reject", RecommendUndecided},
		{"", RecommendUndecided},
		{"no idea", RecommendUndecided},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseRecommendation(tt.input); got != tt.want {
				t.Errorf("ParseRecommendation(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRecommendationIsRevision(t *testing.T) {
	if !RecommendMinorRevision.IsRevision() || !RecommendMajorRevision.IsRevision() {
		t.Error("revision recommendations must report IsRevision")
	}
	if RecommendAccept.IsRevision() || RecommendReject.IsRevision() || RecommendUndecided.IsRevision() {
		t.Error("non-revision recommendations must not report IsRevision")
	}
}

func TestReviewerExpertiseKeywords(t *testing.T) {
	reviewer := &Reviewer{Expertise: " machine learning, databases ,, neural networks "}

	got := reviewer.ExpertiseKeywords()
	want := []string{"machine learning", "databases", "neural networks"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpertiseKeywords() = %v, want %v", got, want)
	}
}
