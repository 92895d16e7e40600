package resumes

// buildRequest accepts the nested resume shape as well as the flat
// snake_case fields older clients post. Nested sections win when both
// are present.
type buildRequest struct {
	UserID      string   `json:"userId" binding:"required"`
	Name        string   `json:"name"`
	Email       string   `json:"email" binding:"omitempty,email"`
	PhoneNumber string   `json:"phoneNumber"`
	Headline    string   `json:"headline"`
	Location    string   `json:"location"`
	Summary     string   `json:"summary"`
	Skills      []string `json:"skills"`

	Experience     *Role            `json:"experience"`
	Education      []Education      `json:"education"`
	Projects       []Project        `json:"projects"`
	Certifications []Certification  `json:"certifications"`
	GitHub         *GitHubProfile   `json:"github"`
	LinkedIn       *LinkedInProfile `json:"linkedin"`

	flatFields
}

type flatFields struct {
	PhoneNumberFlat string `json:"phone_number"`

	JobTitle        string   `json:"job_title"`
	CompanyName     string   `json:"company_name"`
	CompanyLocation string   `json:"company_location"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	JobDescription  string   `json:"job_description"`
	JobSkills       []string `json:"job_skills"`

	InstitutionName string `json:"institution_name"`
	Degree          string `json:"degree"`
	EducationStart  string `json:"start_date1"`
	EducationEnd    string `json:"end_date1"`
	Grade           string `json:"grade"`

	ProjectName        string   `json:"project_name"`
	ProjectDescription string   `json:"project_description"`
	ProjectLink        string   `json:"project_link"`
	ProjectSkills      []string `json:"project_skills"`

	CertificationName   *string `json:"certification_name"`
	IssuingOrganization *string `json:"issuing_organization"`
	IssueDate           *string `json:"issue_date"`
	ExpirationDate      *string `json:"expiration_date"`
	CredentialID        *string `json:"credential_id"`
	CredentialURL       *string `json:"credential_url"`

	GitHubUsername string `json:"githubUsername"`
	ProfileLink    string `json:"profile_link"`
	ProfileURL     string `json:"profile_url"`
	Connections    *int   `json:"connections"`
}

func (r buildRequest) toResume() Resume {
	out := Resume{
		UserID:         r.UserID,
		Name:           r.Name,
		Email:          r.Email,
		PhoneNumber:    firstNonEmpty(r.PhoneNumber, r.PhoneNumberFlat),
		Headline:       r.Headline,
		Location:       r.Location,
		Summary:        r.Summary,
		Skills:         r.Skills,
		Experience:     r.Experience,
		Education:      r.Education,
		Projects:       r.Projects,
		Certifications: r.Certifications,
		GitHub:         r.GitHub,
		LinkedIn:       r.LinkedIn,
	}

	f := r.flatFields
	if out.Experience == nil && f.JobTitle != "" {
		out.Experience = &Role{
			JobTitle:        f.JobTitle,
			CompanyName:     f.CompanyName,
			CompanyLocation: f.CompanyLocation,
			StartDate:       f.StartDate,
			EndDate:         f.EndDate,
			JobDescription:  f.JobDescription,
			JobSkills:       f.JobSkills,
		}
	}
	if out.Education == nil && f.InstitutionName != "" {
		out.Education = []Education{{
			InstitutionName: f.InstitutionName,
			Degree:          f.Degree,
			StartDate:       f.EducationStart,
			EndDate:         f.EducationEnd,
			Grade:           f.Grade,
		}}
	}
	if out.Projects == nil && f.ProjectName != "" {
		out.Projects = []Project{{
			ProjectName:        f.ProjectName,
			ProjectDescription: f.ProjectDescription,
			ProjectLink:        f.ProjectLink,
			ProjectSkills:      f.ProjectSkills,
		}}
	}
	if out.Certifications == nil && f.CertificationName != nil {
		out.Certifications = []Certification{{
			CertificationName:   f.CertificationName,
			IssuingOrganization: f.IssuingOrganization,
			IssueDate:           f.IssueDate,
			ExpirationDate:      f.ExpirationDate,
			CredentialID:        f.CredentialID,
			CredentialURL:       f.CredentialURL,
		}}
	}
	if out.GitHub == nil && (f.GitHubUsername != "" || f.ProfileLink != "") {
		out.GitHub = &GitHubProfile{Username: f.GitHubUsername, ProfileLink: f.ProfileLink}
	}
	if out.LinkedIn == nil && (f.ProfileURL != "" || f.Connections != nil) {
		out.LinkedIn = &LinkedInProfile{ProfileURL: f.ProfileURL}
		if f.Connections != nil {
			out.LinkedIn.Connections = *f.Connections
		}
	}
	return out
}

// listRequest carries the owner either in a JSON body or a query string.
type listRequest struct {
	UserID    string `json:"UserId"`
	UserIDAlt string `json:"userId"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
