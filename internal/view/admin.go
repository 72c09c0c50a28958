package view

import (
	"html/template"
	"strconv"
	"time"

	"github.com/ecodeclub/ekit/slice"

	"resume-web/internal/models"
)

type rowButton struct {
	Event  string
	Fields map[string]string
	Class  string
	Title  string
	Icon   string
}

const (
	viewButtonClass   = "text-primary-600 dark:text-primary-400 hover:text-primary-900"
	editButtonClass   = "text-blue-600 dark:text-blue-400 hover:text-blue-900"
	deleteButtonClass = "text-red-600 dark:text-red-400 hover:text-red-900"
)

func viewButton(event, id string) rowButton {
	return rowButton{Event: event, Fields: map[string]string{"id": id}, Class: viewButtonClass, Title: "View", Icon: "fa-eye"}
}

func editButton(event, id string) rowButton {
	return rowButton{Event: event, Fields: map[string]string{"id": id}, Class: editButtonClass, Title: "Edit", Icon: "fa-edit"}
}

func deleteButton(event string, fields map[string]string) rowButton {
	return rowButton{Event: event, Fields: fields, Class: deleteButtonClass, Title: "Delete", Icon: "fa-trash"}
}

type resumeRow struct {
	ID            string
	UserName      string
	Initials      string
	ATS           string
	ATSClass      string
	AI            string
	AIClass       string
	Match         string
	Date          string
	MissingSkills []string
	Suggestions   []string
	ImprovedText  string
	Buttons       []rowButton
}

func newResumeRow(r models.ResumeAnalysis) resumeRow {
	return resumeRow{
		ID:            r.ID,
		UserName:      r.UserName,
		Initials:      Initials(r.UserName),
		ATS:           FormatScore(r.ATSScore),
		ATSClass:      ScoreClass(r.ATSScore),
		AI:            FormatScore(r.AIScore),
		AIClass:       ScoreClass(r.AIScore),
		Match:         FormatScore(r.JobMatchPercentage),
		Date:          FormatDate(r.CreatedAt),
		MissingSkills: r.MissingSkills,
		Suggestions:   r.Suggestions,
		ImprovedText:  r.AIImprovedText,
		Buttons: []rowButton{
			viewButton("resumes.view", r.ID),
			deleteButton("resumes.delete", map[string]string{"id": r.ID, "userName": r.UserName}),
		},
	}
}

// ResumeTable renders the admin resume table body.
func ResumeTable(resumes []models.ResumeAnalysis) template.HTML {
	return execute("resume-table", slice.Map(resumes, func(_ int, src models.ResumeAnalysis) resumeRow {
		return newResumeRow(src)
	}))
}

type jobRow struct {
	ID          string
	Company     string
	Position    string
	Description string
	Status      string
	BadgeClass  string
	Date        string
	Link        string
	Notes       string
	Buttons     []rowButton
}

func newJobRow(j models.Job) jobRow {
	return jobRow{
		ID:          j.ID,
		Company:     j.Company,
		Position:    j.Position,
		Description: j.Description,
		Status:      Capitalize(string(j.Status)),
		BadgeClass:  BadgeClass(j.Status),
		Date:        FormatDate(j.AppliedDate),
		Link:        j.Link,
		Notes:       j.Notes,
		Buttons: []rowButton{
			viewButton("jobs.view", j.ID),
			editButton("jobs.edit", j.ID),
			deleteButton("jobs.delete", map[string]string{"id": j.ID, "company": j.Company, "position": j.Position}),
		},
	}
}

// JobTable renders the admin job table body.
func JobTable(jobs []models.Job) template.HTML {
	return execute("job-table", slice.Map(jobs, func(_ int, src models.Job) jobRow {
		return newJobRow(src)
	}))
}

type userRow struct {
	ID        string
	Name      string
	Initials  string
	Email     string
	Role      string
	RoleClass string
	Date      string
	Buttons   []rowButton
}

// UserTable renders the admin user table body.
func UserTable(users []models.User) template.HTML {
	return execute("user-table", slice.Map(users, func(_ int, u models.User) userRow {
		return userRow{
			ID:        u.ID,
			Name:      u.Name,
			Initials:  Initials(u.Name),
			Email:     u.Email,
			Role:      Capitalize(string(u.Role)),
			RoleClass: RoleClass(u.Role),
			Date:      FormatDate(u.CreatedAt),
			Buttons: []rowButton{
				editButton("users.edit", u.ID),
				deleteButton("users.delete", map[string]string{"id": u.ID, "name": u.Name, "email": u.Email}),
			},
		}
	}))
}

type activityRow struct {
	Title       string
	Description string
	Ago         string
	Style       ActivityStyle
	Last        bool
}

// ActivityFeed renders the recent activity timeline relative to now.
func ActivityFeed(items []models.Activity, now time.Time) template.HTML {
	return execute("activity-feed", slice.Map(items, func(i int, a models.Activity) activityRow {
		return activityRow{
			Title:       a.Title,
			Description: a.Description,
			Ago:         TimeAgo(a.CreatedAt.Time, now),
			Style:       activityStyle(a.Type),
			Last:        i == len(items)-1,
		}
	}))
}

type statCard struct {
	Key            string
	Label          string
	Total          int
	Growth         string
	Down           bool
	Icon           string
	IconBackground string
}

func newStatCard(key, label string, total int, growth float64, icon, bg string) statCard {
	return statCard{
		Key:            key,
		Label:          label,
		Total:          total,
		Growth:         strconv.FormatFloat(growth, 'f', -1, 64),
		Down:           growth < 0,
		Icon:           icon,
		IconBackground: bg,
	}
}

// StatsCards renders the three overview counters with their growth.
func StatsCards(s models.DashboardStats) template.HTML {
	return execute("stats-cards", []statCard{
		newStatCard("resumes", "Total Resumes", s.TotalResumes, s.ResumeGrowth, "fa-file-alt", "bg-primary-100 dark:bg-primary-900 text-primary-600 dark:text-primary-400"),
		newStatCard("jobs", "Total Jobs", s.TotalJobs, s.JobGrowth, "fa-briefcase", "bg-green-100 dark:bg-green-900 text-green-600 dark:text-green-400"),
		newStatCard("users", "Total Users", s.TotalUsers, s.UserGrowth, "fa-users", "bg-purple-100 dark:bg-purple-900 text-purple-600 dark:text-purple-400"),
	})
}

// ResumeDetails renders the admin resume modal body.
func ResumeDetails(r models.ResumeAnalysis) template.HTML {
	return execute("resume-details", newResumeRow(r))
}

// JobDetails renders the admin job modal body.
func JobDetails(j models.Job) template.HTML {
	return execute("job-details", newJobRow(j))
}

type jobFormView struct {
	ID           string
	Company      string
	Position     string
	Description  string
	AppliedDate  string
	Link         string
	Notes        string
	StatusSelect selectInput
	Error        string
}

// JobForm renders the admin create (nil job) or edit job form. msg is shown
// above the fields.
func JobForm(j *models.Job, msg string) template.HTML {
	v := jobFormView{StatusSelect: statusSelect("jobStatus", ""), Error: msg}
	if j != nil {
		v.ID = j.ID
		v.Company = j.Company
		v.Position = j.Position
		v.Description = j.Description
		v.AppliedDate = InputDate(j.AppliedDate)
		v.Link = j.Link
		v.Notes = j.Notes
		v.StatusSelect = statusSelect("jobStatus", string(j.Status))
	}
	return execute("job-form", v)
}

type userFormView struct {
	ID         string
	Name       string
	Email      string
	RoleSelect selectInput
	Error      string
}

var roleChoices = []option{
	{Value: string(models.RoleUser), Label: "User"},
	{Value: string(models.RoleAdmin), Label: "Admin"},
}

// UserForm renders the admin create (nil user) or edit user form. The
// password field only exists on create.
func UserForm(u *models.User, msg string) template.HTML {
	role := string(models.RoleUser)
	v := userFormView{Error: msg}
	if u != nil {
		v.ID, v.Name, v.Email = u.ID, u.Name, u.Email
		if u.Role != "" {
			role = string(u.Role)
		}
	}
	v.RoleSelect = selectInput{ID: "userRole", Name: "role", Label: "Role", Options: markSelected(roleChoices, role)}
	return execute("user-form", v)
}
