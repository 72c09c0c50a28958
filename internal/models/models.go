// Package models holds the records returned by the backend API. They are
// display copies only and live for one render.
package models

// JobStatus is the application stage of a tracked job.
type JobStatus string

const (
	JobApplied      JobStatus = "applied"
	JobInterviewing JobStatus = "interviewing"
	JobOffered      JobStatus = "offered"
	JobRejected     JobStatus = "rejected"
)

// JobStatuses lists the statuses in form order.
var JobStatuses = []JobStatus{JobApplied, JobInterviewing, JobOffered, JobRejected}

// Valid reports whether s is a known status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobApplied, JobInterviewing, JobOffered, JobRejected:
		return true
	}
	return false
}

// Role is a user's access level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ActivityType tags an item in the admin activity feed.
type ActivityType string

const (
	ActivityResume ActivityType = "resume"
	ActivityJob    ActivityType = "job"
	ActivityUser   ActivityType = "user"
)

// ResumeAnalysis is one analyzed resume.
type ResumeAnalysis struct {
	ID                 string    `json:"_id"`
	UserName           string    `json:"userName"`
	ATSScore           float64   `json:"atsScore"`
	AIScore            float64   `json:"aiScore"`
	JobMatchPercentage float64   `json:"jobMatchPercentage"`
	AIImprovedText     string    `json:"aiImprovedText"`
	Suggestions        []string  `json:"suggestions"`
	MissingSkills      []string  `json:"missingSkills"`
	CreatedAt          Timestamp `json:"createdAt"`
}

// Job is a tracked job application.
type Job struct {
	ID          string    `json:"_id"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	Description string    `json:"description"`
	Status      JobStatus `json:"status"`
	AppliedDate Timestamp `json:"appliedDate"`
	Link        string    `json:"link"`
	Notes       string    `json:"notes"`
}

// User is an account as seen by an admin. Passwords are never returned.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt Timestamp `json:"createdAt"`
}

// DashboardStats is the admin overview aggregate.
type DashboardStats struct {
	TotalResumes int     `json:"totalResumes"`
	ResumeGrowth float64 `json:"resumeGrowth"`
	TotalJobs    int     `json:"totalJobs"`
	JobGrowth    float64 `json:"jobGrowth"`
	TotalUsers   int     `json:"totalUsers"`
	UserGrowth   float64 `json:"userGrowth"`
}

// Activity is one entry of the recent activity feed.
type Activity struct {
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	CreatedAt   Timestamp    `json:"createdAt"`
}
