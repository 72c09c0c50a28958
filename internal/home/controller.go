// Package home is the signed-in user's page: the resume analyzer, the
// analysis history and the job tracker.
package home

import (
	"context"
	"io"
	"time"

	"resume-web/internal/page"
	"resume-web/internal/view"
)

// Name identifies the page in sessions, logs and metrics.
const Name = "home"

type Controller struct {
	now func() time.Time
}

func New() *Controller {
	return &Controller{now: time.Now}
}

func (c *Controller) Name() string { return Name }

// Init gates the page on a session, then loads history and jobs.
func (c *Controller) Init(ctx context.Context, st *page.State) error {
	st.Tab = view.TabAnalyzer
	st.Filter = view.FilterAll
	if !checkAuth(ctx, st) {
		return nil
	}
	loadHistory(ctx, st)
	loadJobs(ctx, st)
	return nil
}

func (c *Controller) Events() page.Dispatch {
	return page.Dispatch{
		"tab.switch":             c.switchTab,
		"history.toggle":         c.toggleHistory,
		"history.view":           c.viewHistory,
		"history.delete":         c.deleteHistory,
		"history.delete.confirm": c.confirmDeleteHistory,
		"history.clear":          c.clearHistory,
		"history.clear.confirm":  c.confirmClearHistory,
		"analyze":                c.analyze,
		page.EventTooLarge:       c.uploadTooLarge,
		"result.download":        c.download,
		"jobs.form.toggle":       c.toggleJobForm,
		"jobs.add":               c.addJob,
		"jobs.filter":            c.filterJobs,
		"jobs.edit":              c.editJob,
		"jobs.update":            c.updateJob,
		"jobs.delete":            c.deleteJob,
		"jobs.delete.confirm":    c.confirmDeleteJob,
		"logout":                 c.logout,
		"logout.confirm":         c.confirmLogout,
	}
}

func (c *Controller) Render(w io.Writer, st *page.State, theme string) error {
	return view.HomePage(w, st, theme)
}
