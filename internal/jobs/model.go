package jobs

import "time"

// Job is a posting created by a registered user.
type Job struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	JobTitle       string    `json:"jobTitle"`
	JobDescription string    `json:"jobDescription"`
	CompanyName    string    `json:"companyName"`
	Location       string    `json:"location"`
	Category       []string  `json:"category"`
	JobType        string    `json:"jobType"`
	Stipend        string    `json:"stipend"`
	CreatedAt      time.Time `json:"createdAt"`
}

// newerThan orders jobs newest first with id as the tie breaker.
func (j Job) newerThan(other Job) bool {
	if j.CreatedAt.Equal(other.CreatedAt) {
		return j.ID > other.ID
	}
	return j.CreatedAt.After(other.CreatedAt)
}
