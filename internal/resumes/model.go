package resumes

import "time"

// FresherTitle is the role title that marks a candidate without work history.
const FresherTitle = "Fresher"

const notApplicable = "N/A"

type Resume struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	PhoneNumber    string           `json:"phoneNumber"`
	Headline       string           `json:"headline"`
	Location       string           `json:"location"`
	Summary        string           `json:"summary"`
	Skills         []string         `json:"skills"`
	Experience     *Role            `json:"experience,omitempty"`
	Education      []Education      `json:"education"`
	Projects       []Project        `json:"projects"`
	Certifications []Certification  `json:"certifications"`
	GitHub         *GitHubProfile   `json:"github,omitempty"`
	LinkedIn       *LinkedInProfile `json:"linkedin,omitempty"`
	LastUpdated    time.Time        `json:"lastUpdated"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Role is the candidate's current position. Dates are kept as submitted.
type Role struct {
	JobTitle        string   `json:"jobTitle"`
	CompanyName     string   `json:"companyName"`
	CompanyLocation string   `json:"companyLocation"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	JobDescription  string   `json:"jobDescription"`
	JobSkills       []string `json:"jobSkills"`
}

type Education struct {
	InstitutionName string `json:"institutionName"`
	Degree          string `json:"degree"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	Grade           string `json:"grade"`
}

type Project struct {
	ProjectName        string   `json:"projectName"`
	ProjectDescription string   `json:"projectDescription"`
	ProjectLink        string   `json:"projectLink"`
	ProjectSkills      []string `json:"projectSkills"`
}

// Certification fields are all optional.
type Certification struct {
	CertificationName   *string `json:"certificationName"`
	IssuingOrganization *string `json:"issuingOrganization"`
	IssueDate           *string `json:"issueDate"`
	ExpirationDate      *string `json:"expirationDate"`
	CredentialID        *string `json:"credentialId"`
	CredentialURL       *string `json:"credentialUrl"`
}

type GitHubProfile struct {
	Username    string `json:"username"`
	ProfileLink string `json:"profileLink"`
}

type LinkedInProfile struct {
	ProfileURL  string `json:"profileUrl"`
	Connections int    `json:"connections"`
}

// FresherRole is the placeholder stored for "Fresher" and "Student" submissions.
func FresherRole() *Role {
	return &Role{
		JobTitle:        FresherTitle,
		CompanyName:     notApplicable,
		CompanyLocation: notApplicable,
		StartDate:       notApplicable,
		EndDate:         notApplicable,
		JobDescription:  notApplicable,
		JobSkills:       []string{notApplicable},
	}
}

// NormalizeRole replaces the role with FresherRole when the title marks a
// candidate without work history. Other roles are returned unchanged.
func NormalizeRole(role *Role) *Role {
	if role == nil {
		return nil
	}
	switch role.JobTitle {
	case "Fresher", "Student":
		return FresherRole()
	}
	return role
}
