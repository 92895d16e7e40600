package scoring

import (
	"context"
	"math"
	"strings"

	"cvisionary/internal/jobs"
	"cvisionary/internal/resumes"
	"cvisionary/internal/shared/metrics"
	"cvisionary/internal/shared/telemetry"
)

type ResumeSource interface {
	GetByID(ctx context.Context, id string) (resumes.Resume, error)
}

type JobSource interface {
	GetByID(ctx context.Context, id string) (jobs.Job, error)
}

// Report is the keyword match of one resume against one job posting.
type Report struct {
	ResumeID         string           `json:"resumeId"`
	JobID            string           `json:"jobId"`
	MatchScore       float64          `json:"matchScore"`
	RequiredKeywords []string         `json:"requiredKeywords"`
	MatchedKeywords  []string         `json:"matchedKeywords"`
	MissingKeywords  []string         `json:"missingKeywords"`
	Recommendations  []Recommendation `json:"recommendations"`
}

type Service struct {
	Resumes ResumeSource
	Jobs    JobSource
}

func NewService(resumeSource ResumeSource, jobSource JobSource) *Service {
	return &Service{Resumes: resumeSource, Jobs: jobSource}
}

// Score compares the skills a job posting names against a stored resume.
// MatchScore is the matched share of required keywords in [0, 1]; a posting
// that names no catalogue skills scores 1.
func (s *Service) Score(ctx context.Context, resumeID, jobID string) (Report, error) {
	resumeID = strings.TrimSpace(resumeID)
	jobID = strings.TrimSpace(jobID)
	if resumeID == "" || jobID == "" {
		return Report{}, ErrIDsRequired
	}

	resume, err := s.Resumes.GetByID(ctx, resumeID)
	if err != nil {
		return Report{}, err
	}
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return Report{}, err
	}

	report := Evaluate(resume, job)
	metrics.IncResumesScored()
	telemetry.Info("resume.scored", map[string]any{
		"resume_id":   resume.ID,
		"job_id":      job.ID,
		"match_score": report.MatchScore,
		"missing":     len(report.MissingKeywords),
	})
	return report, nil
}

// Evaluate scores resume against job without touching storage.
func Evaluate(resume resumes.Resume, job jobs.Job) Report {
	required := RequiredKeywords(jobText(job))
	text := resumeText(resume)
	missing := MissingKeywords(required, text)
	matched := MissingKeywords(required, strings.Join(missing, " "))

	found := gaps{
		MissingKeywords: missing,
		MissingSections: missingSections(resume),
	}
	if len(resume.Skills) > 0 {
		found.UnlistedKeywords = MissingKeywords(matched, strings.Join(resume.Skills, ", "))
	}

	score := 1.0
	if len(required) > 0 {
		score = math.Round(float64(len(matched))/float64(len(required))*1000) / 1000
	}
	return Report{
		ResumeID:         resume.ID,
		JobID:            job.ID,
		MatchScore:       score,
		RequiredKeywords: required,
		MatchedKeywords:  matched,
		MissingKeywords:  missing,
		Recommendations:  recommend(found),
	}
}

func jobText(job jobs.Job) string {
	parts := []string{job.JobTitle, job.JobDescription}
	parts = append(parts, job.Category...)
	return strings.Join(parts, "\n")
}

// resumeText flattens the sections a reader would scan for skills.
func resumeText(r resumes.Resume) string {
	parts := []string{r.Headline, r.Summary, strings.Join(r.Skills, ", ")}
	if r.Experience != nil {
		parts = append(parts, r.Experience.JobTitle, r.Experience.JobDescription)
		parts = append(parts, r.Experience.JobSkills...)
	}
	for _, p := range r.Projects {
		parts = append(parts, p.ProjectName, p.ProjectDescription)
		parts = append(parts, p.ProjectSkills...)
	}
	for _, e := range r.Education {
		parts = append(parts, e.Degree)
	}
	for _, c := range r.Certifications {
		if c.CertificationName != nil {
			parts = append(parts, *c.CertificationName)
		}
	}
	return strings.Join(parts, "\n")
}

func missingSections(r resumes.Resume) []string {
	var out []string
	if strings.TrimSpace(r.Summary) == "" {
		out = append(out, "summary")
	}
	if len(r.Skills) == 0 {
		out = append(out, "skills")
	}
	switch {
	case r.Experience == nil:
		out = append(out, "experience")
	case r.Experience.JobTitle != resumes.FresherTitle && strings.TrimSpace(r.Experience.JobDescription) == "":
		out = append(out, "experience")
	}
	if len(r.Projects) == 0 {
		out = append(out, "projects")
	}
	return out
}
