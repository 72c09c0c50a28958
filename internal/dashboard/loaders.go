package dashboard

import (
	"context"
	"net/url"

	"github.com/pkg/errors"

	"resume-web/internal/apiclient"
	"resume-web/internal/models"
	"resume-web/internal/page"
	"resume-web/internal/shared/telemetry"
	"resume-web/internal/view"
)

const (
	pathRole          = "/admin/dashboard"
	pathStats         = "/admin/dashboard-stats"
	pathActivity      = "/admin/recent-activity"
	pathResumes       = "/admin/resumes"
	pathResume        = "/admin/resumes/{id}"
	pathResumesFilter = "/admin/resumes/filter"
	pathJobs          = "/admin/jobs"
	pathJob           = "/admin/jobs/{id}"
	pathJobsFilter    = "/admin/jobs/filter"
	pathUsers         = "/admin/users"
	pathUser          = "/admin/users/{id}"
	pathLogout        = "/admin/logout"
)

const (
	regionStats    = "stats"
	regionActivity = "recentActivity"
	regionResumes  = "resumeTable"
	regionJobs     = "jobTable"
	regionUsers    = "userTable"

	textAdminName = "adminName"

	visibleSidebar  = "sidebar"
	visibleDropdown = "profileDropdown"
)

var errEnvelope = errors.New("backend reported failure")

func loadFailed(st *page.State, what string, err error) {
	telemetry.Error("load.failed", map[string]any{"page": st.Page, "sid": st.ID, "load": what, "error": err})
}

// checkRole sends anyone the backend does not accept as an admin to the landing page.
func checkRole(ctx context.Context, st *page.State) bool {
	res, err := st.API.Get(ctx, pathRole)
	if err != nil {
		telemetry.Info("auth.redirect", map[string]any{"page": st.Page, "sid": st.ID, "error": err})
		st.Redirect("/")
		return false
	}
	st.SetText(textAdminName, res.Get("admin.name").String())
	return true
}

// fetch GETs path and decodes the value at field into v. A false envelope
// success flag counts as a failure.
func fetch(ctx context.Context, st *page.State, what, path, field string, v any, opts ...apiclient.Option) bool {
	res, err := st.API.Get(ctx, path, opts...)
	if err == nil && !res.OK() {
		err = errEnvelope
	}
	if err == nil {
		err = res.Decode(field, v)
	}
	if err != nil {
		loadFailed(st, what, err)
		return false
	}
	return true
}

func loadStats(ctx context.Context, st *page.State) {
	var s models.DashboardStats
	if fetch(ctx, st, "stats", pathStats, "data", &s) {
		st.SetRegion(regionStats, view.StatsCards(s))
	}
}

func (c *Controller) loadActivity(ctx context.Context, st *page.State) {
	var items []models.Activity
	if fetch(ctx, st, "activity", pathActivity, "data", &items) {
		st.SetRegion(regionActivity, view.ActivityFeed(items, c.now()))
	}
}

func loadResumes(ctx context.Context, st *page.State) {
	var items []models.ResumeAnalysis
	if fetch(ctx, st, "resumes", pathResumes, "", &items) {
		st.SetRegion(regionResumes, view.ResumeTable(items))
	}
}

// ResumeFilter is the admin resume search.
type ResumeFilter struct {
	Search string
	ATS    string
	AI     string
	Date   string
}

// Query sends every parameter, blank ones included.
func (f ResumeFilter) Query() url.Values {
	return url.Values{
		"search": {f.Search},
		"ats":    {f.ATS},
		"ai":     {f.AI},
		"date":   {f.Date},
	}
}

func filterResumes(ctx context.Context, st *page.State, f ResumeFilter) {
	var items []models.ResumeAnalysis
	if fetch(ctx, st, "resumes.filter", pathResumesFilter, "resumes", &items, apiclient.WithQuery(f.Query())) {
		st.SetRegion(regionResumes, view.ResumeTable(items))
	}
}

func loadJobs(ctx context.Context, st *page.State) {
	var items []models.Job
	if fetch(ctx, st, "jobs", pathJobs, "", &items) {
		st.SetRegion(regionJobs, view.JobTable(items))
	}
}

// JobFilter is the admin job search.
type JobFilter struct {
	Search  string
	Status  string
	Company string
}

// Query sends only the parameters that are set.
func (f JobFilter) Query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Company != "" {
		q.Set("company", f.Company)
	}
	return q
}

func filterJobs(ctx context.Context, st *page.State, f JobFilter) {
	var items []models.Job
	if fetch(ctx, st, "jobs.filter", pathJobsFilter, "jobs", &items, apiclient.WithQuery(f.Query())) {
		st.SetRegion(regionJobs, view.JobTable(items))
	}
}

func loadUsers(ctx context.Context, st *page.State) {
	var items []models.User
	if fetch(ctx, st, "users", pathUsers, "", &items) {
		st.SetRegion(regionUsers, view.UserTable(items))
	}
}

func loadOne(ctx context.Context, st *page.State, path, field, id string, v any) error {
	res, err := st.API.Get(ctx, path, apiclient.WithPathParam("id", id))
	if err != nil {
		return err
	}
	return res.Decode(field, v)
}
