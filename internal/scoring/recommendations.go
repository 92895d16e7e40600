package scoring

import (
	"sort"
	"strings"
)

const maxRecommendations = 7

// Recommendation is a ranked, deterministic suggestion for improving a resume
// against a job.
type Recommendation struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Why      string `json:"why"`
	Action   string `json:"action"`
	Impact   string `json:"impact"`
	Order    int    `json:"order"`
}

// gaps is what the scorer found missing from a resume.
type gaps struct {
	MissingKeywords []string
	// UnlistedKeywords are mentioned somewhere in the resume but absent from
	// its skills list.
	UnlistedKeywords []string
	MissingSections  []string
}

func recommend(in gaps) []Recommendation {
	candidates := make([]Recommendation, 0, 8)
	candidates = append(candidates, fromMissingKeywords(in.MissingKeywords)...)
	candidates = append(candidates, fromUnlistedKeywords(in.UnlistedKeywords)...)
	candidates = append(candidates, fromMissingSections(in.MissingSections)...)

	out := dedupe(candidates)
	sortRecommendations(out)
	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}
	for i := range out {
		out[i].Order = i + 1
	}
	return out
}

func fromMissingKeywords(k []string) []Recommendation {
	keywords := uniqueSortedStrings(k)
	if len(keywords) == 0 {
		return nil
	}
	severity := "warning"
	if len(keywords) >= 5 {
		severity = "critical"
	}
	return []Recommendation{{
		ID:       "ATS_MISSING_JOB_KEYWORDS",
		Category: "ATS",
		Severity: severity,
		Title:    "Add missing job keywords",
		Why:      "Applicant tracking systems filter on the skills named in the posting.",
		Action:   "Work these skills into your Skills list and project or experience descriptions where they apply: " + strings.Join(keywords, ", "),
		Impact:   "high",
	}}
}

func fromUnlistedKeywords(k []string) []Recommendation {
	keywords := uniqueSortedStrings(k)
	if len(keywords) == 0 {
		return nil
	}
	return []Recommendation{{
		ID:       "SKILLS_LIST_INCOMPLETE",
		Category: "SKILLS",
		Severity: "info",
		Title:    "List matched skills explicitly",
		Why:      "Recruiters scan the Skills section before reading descriptions.",
		Action:   "Add to your Skills list: " + strings.Join(keywords, ", "),
		Impact:   "medium",
	}}
}

var sectionAdvice = map[string]Recommendation{
	"summary": {
		Category: "STRUCTURE", Severity: "warning", Impact: "medium",
		Title:  "Add a professional summary",
		Why:    "A short summary tells the reader which role you are aiming for.",
		Action: "Write two or three sentences that name the role and your strongest matching skills.",
	},
	"skills": {
		Category: "SKILLS", Severity: "critical", Impact: "high",
		Title:  "Add a skills section",
		Why:    "Keyword matching starts from the skills you list.",
		Action: "List the tools and languages you have used, starting with the ones this job asks for.",
	},
	"experience": {
		Category: "EXPERIENCE", Severity: "warning", Impact: "medium",
		Title:  "Describe your experience",
		Why:    "Descriptions show how you applied the skills you list.",
		Action: "Describe what you built or owned in your current role and which skills it used.",
	},
	"projects": {
		Category: "EXPERIENCE", Severity: "info", Impact: "medium",
		Title:  "Add projects",
		Why:    "Projects are the main evidence of skills for candidates with little work history.",
		Action: "Add one or two projects that use the skills this job asks for, with links.",
	},
}

func fromMissingSections(sections []string) []Recommendation {
	out := make([]Recommendation, 0, len(sections))
	for _, section := range sections {
		advice, ok := sectionAdvice[section]
		if !ok {
			continue
		}
		advice.ID = "SECTION_" + strings.ToUpper(section)
		out = append(out, advice)
	}
	return out
}

func severityRank(value string) int {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "critical":
		return 3
	case "warning":
		return 2
	default:
		return 1
	}
}

func impactRank(value string) int {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return 3
	case "medium":
		return 2
	default:
		return 1
	}
}

func categoryRank(value string) int {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "ATS":
		return 4
	case "SKILLS":
		return 3
	case "EXPERIENCE":
		return 2
	case "STRUCTURE":
		return 1
	default:
		return 0
	}
}

// dedupe keeps the first recommendation per id, filling its empty fields
// from later duplicates.
func dedupe(items []Recommendation) []Recommendation {
	seen := make(map[string]int, len(items))
	out := make([]Recommendation, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		if i, ok := seen[id]; ok {
			out[i] = merge(out[i], item)
			continue
		}
		seen[id] = len(out)
		out = append(out, item)
	}
	return out
}

func merge(a, b Recommendation) Recommendation {
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = src
		}
	}
	fill(&a.Title, b.Title)
	fill(&a.Why, b.Why)
	fill(&a.Action, b.Action)
	fill(&a.Category, b.Category)
	fill(&a.Severity, b.Severity)
	fill(&a.Impact, b.Impact)
	return a
}

func sortRecommendations(items []Recommendation) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if severityRank(a.Severity) != severityRank(b.Severity) {
			return severityRank(a.Severity) > severityRank(b.Severity)
		}
		if impactRank(a.Impact) != impactRank(b.Impact) {
			return impactRank(a.Impact) > impactRank(b.Impact)
		}
		if categoryRank(a.Category) != categoryRank(b.Category) {
			return categoryRank(a.Category) > categoryRank(b.Category)
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
}

func uniqueSortedStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		key := strings.ToLower(trimmed)
		if trimmed == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
