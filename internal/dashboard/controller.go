// Package dashboard is the admin panel: platform statistics, recent
// activity, and management of resumes, jobs and users.
package dashboard

import (
	"context"
	"io"
	"time"

	"resume-web/internal/page"
	"resume-web/internal/view"
)

const Name = "dashboard"

type Controller struct {
	now func() time.Time
}

func New() *Controller {
	return &Controller{now: time.Now}
}

func (c *Controller) Name() string { return Name }

// Init checks the admin role, then loads every section. A section whose
// fetch fails keeps its empty state.
func (c *Controller) Init(ctx context.Context, st *page.State) error {
	st.Section = view.SectionDashboard
	if !checkRole(ctx, st) {
		return nil
	}
	loadStats(ctx, st)
	c.loadActivity(ctx, st)
	loadResumes(ctx, st)
	loadJobs(ctx, st)
	loadUsers(ctx, st)
	return nil
}

func (c *Controller) Events() page.Dispatch {
	return page.Dispatch{
		"nav":                    c.navigate,
		"sidebar.open":           c.openSidebar,
		"sidebar.close":          c.closeSidebar,
		"profile.toggle":         c.toggleProfile,
		"resumes.filter":         c.filterResumes,
		"resumes.view":           c.viewResume,
		"resumes.delete":         c.deleteResume,
		"resumes.delete.confirm": c.confirmDeleteResume,
		"jobs.filter":            c.filterJobs,
		"jobs.view":              c.viewJob,
		"jobs.new":               c.newJob,
		"jobs.edit":              c.editJob,
		"jobs.save":              c.saveJob,
		"jobs.delete":            c.deleteJob,
		"jobs.delete.confirm":    c.confirmDeleteJob,
		"users.new":              c.newUser,
		"users.edit":             c.editUser,
		"users.save":             c.saveUser,
		"users.delete":           c.deleteUser,
		"users.delete.confirm":   c.confirmDeleteUser,
		"logout":                 c.logout,
		"logout.confirm":         c.confirmLogout,
	}
}

func (c *Controller) Render(w io.Writer, st *page.State, theme string) error {
	return view.DashboardPage(w, st, theme)
}
