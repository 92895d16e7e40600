package scoring

import (
	"reflect"
	"strings"
	"testing"
)

func TestRecommendDeterministic(t *testing.T) {
	in := gaps{
		MissingKeywords:  []string{"Kafka", "Go", "go"},
		UnlistedKeywords: []string{"Redis"},
		MissingSections:  []string{"summary", "projects"},
	}
	first := recommend(in)
	second := recommend(in)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected deterministic recommendations")
	}
	if first[0].ID != "ATS_MISSING_JOB_KEYWORDS" {
		t.Fatalf("expected keyword gap first, got %s", first[0].ID)
	}
	if !strings.HasSuffix(first[0].Action, "Go, Kafka") {
		t.Fatalf("expected deduped sorted keywords, got %q", first[0].Action)
	}
	for i, rec := range first {
		if rec.Order != i+1 {
			t.Fatalf("expected order %d, got %d", i+1, rec.Order)
		}
	}
}

func TestRecommendRanking(t *testing.T) {
	cases := []struct {
		name     string
		items    []Recommendation
		expected string
	}{
		{
			name: "critical_above_warning",
			items: []Recommendation{
				{ID: "a", Severity: "warning", Impact: "high", Title: "B"},
				{ID: "b", Severity: "critical", Impact: "low", Title: "A"},
			},
			expected: "b",
		},
		{
			name: "impact_breaks_severity_tie",
			items: []Recommendation{
				{ID: "a", Severity: "warning", Impact: "low", Title: "A"},
				{ID: "b", Severity: "warning", Impact: "high", Title: "B"},
			},
			expected: "b",
		},
		{
			name: "ats_above_structure",
			items: []Recommendation{
				{ID: "a", Severity: "info", Impact: "medium", Category: "STRUCTURE", Title: "A"},
				{ID: "b", Severity: "info", Impact: "medium", Category: "ATS", Title: "B"},
			},
			expected: "b",
		},
		{
			name: "title_last",
			items: []Recommendation{
				{ID: "a", Title: "zeta"},
				{ID: "b", Title: "Alpha"},
			},
			expected: "b",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := append([]Recommendation(nil), tc.items...)
			sortRecommendations(items)
			if items[0].ID != tc.expected {
				t.Fatalf("expected %s first, got %s", tc.expected, items[0].ID)
			}
		})
	}
}

func TestDedupeMergesEmptyFields(t *testing.T) {
	out := dedupe([]Recommendation{
		{ID: "x", Title: "First"},
		{ID: "x", Title: "Second", Why: "because"},
		{ID: "", Title: "dropped"},
	})
	if len(out) != 1 || out[0].Title != "First" || out[0].Why != "because" {
		t.Fatalf("unexpected dedupe result: %+v", out)
	}
}

func TestRecommendCapsList(t *testing.T) {
	in := gaps{
		MissingKeywords:  []string{"Go"},
		UnlistedKeywords: []string{"Redis"},
		MissingSections:  []string{"summary", "skills", "experience", "projects", "unknown"},
	}
	out := recommend(in)
	if len(out) != 6 {
		t.Fatalf("expected 6 recommendations, got %d", len(out))
	}
	if len(out) > maxRecommendations {
		t.Fatalf("list not capped")
	}
}
