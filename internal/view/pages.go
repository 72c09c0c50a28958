package view

import (
	"html/template"
	"io"

	"resume-web/internal/page"
	"resume-web/internal/shared/server/middleware"
)

// Home tabs.
const (
	TabAnalyzer = "analyzer"
	TabTracker  = "tracker"
)

// Dashboard sections.
const (
	SectionDashboard = "dashboard"
	SectionResumes   = "resumes"
	SectionJobs      = "jobs"
	SectionUsers     = "users"
)

// FilterAll shows every tracked job.
const FilterAll = "all"

type navItem struct {
	Value  string
	Label  string
	Icon   string
	Active bool
}

var sections = []struct {
	value, label, title, icon string
}{
	{SectionDashboard, "Dashboard", "Dashboard Overview", "fa-chart-line"},
	{SectionResumes, "Resumes", "Resume Analysis History", "fa-file-alt"},
	{SectionJobs, "Jobs", "Job Management", "fa-briefcase"},
	{SectionUsers, "Users", "User Management", "fa-users"},
}

// SectionTitle is the header title of a dashboard section, or "" when unknown.
func SectionTitle(section string) string {
	for _, s := range sections {
		if s.value == section {
			return s.title
		}
	}
	return ""
}

type pageView struct {
	Title  string
	Dark   bool
	S      *page.State
	Modal  template.HTML
	Toasts []page.Toast

	Tabs     []navItem
	Filters  []navItem
	JobCount string
	Busy     bool

	Nav     []navItem
	Section string
	Heading string
}

func newPageView(title string, st *page.State, theme string) pageView {
	return pageView{
		Title:  title,
		Dark:   theme != middleware.ThemeLight,
		S:      st,
		Modal:  st.Doc.Modal.Render(),
		Toasts: st.Doc.Toasts,
	}
}

func render(w io.Writer, name string, data pageView) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// HomePage writes the end-user page.
func HomePage(w io.Writer, st *page.State, theme string) error {
	v := newPageView("ResumeAI", st, theme)
	tab := st.Tab
	if tab != TabTracker {
		tab = TabAnalyzer
	}
	v.Tabs = []navItem{
		{Value: TabAnalyzer, Label: "Analyzer", Active: tab == TabAnalyzer},
		{Value: TabTracker, Label: "Job Tracker", Active: tab == TabTracker},
	}
	filter := st.Filter
	if filter == "" {
		filter = FilterAll
	}
	v.Filters = append(v.Filters, navItem{Value: FilterAll, Label: "All", Active: filter == FilterAll})
	for _, o := range statusChoices() {
		v.Filters = append(v.Filters, navItem{Value: o.Value, Label: o.Label, Active: filter == o.Value})
	}
	if n := st.Text("jobCount"); n != "" && n != "0" {
		v.JobCount = n
	}
	v.Busy = st.Upload.Busy()
	return render(w, "home-page", v)
}

// DashboardPage writes the admin page.
func DashboardPage(w io.Writer, st *page.State, theme string) error {
	v := newPageView("Admin Dashboard", st, theme)
	v.Section = st.Section
	if SectionTitle(v.Section) == "" {
		v.Section = SectionDashboard
	}
	v.Heading = SectionTitle(v.Section)
	for _, s := range sections {
		v.Nav = append(v.Nav, navItem{Value: s.value, Label: s.label, Icon: s.icon, Active: s.value == v.Section})
	}
	return render(w, "dashboard-page", v)
}

// LandingPage writes the public entry page.
func LandingPage(w io.Writer, st *page.State, theme string) error {
	return render(w, "landing-page", newPageView("ResumeAI", st, theme))
}
