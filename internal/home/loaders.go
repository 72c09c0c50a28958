package home

import (
	"context"
	"net/url"
	"strconv"

	"resume-web/internal/apiclient"
	"resume-web/internal/models"
	"resume-web/internal/page"
	"resume-web/internal/shared/telemetry"
	"resume-web/internal/view"
)

// Backend resources used by the home page.
const (
	pathAuth         = "/api/resume/auth"
	pathHistory      = "/api/resume"
	pathResume       = "/api/resume/{id}"
	pathDeleteResume = "/api/resume/deleteResume/{id}"
	pathClearHistory = "/api/resume/clearAllHistory"
	pathAnalyze      = "/api/resume/analyze"
	pathDownload     = "/api/resume/download"
	pathJobs         = "/api/jobs"
	pathJob          = "/api/jobs/{id}"
	pathJobsFilter   = "/api/jobs/filter"
	pathLogout       = "/api/logout"
)

// Document slots written by the loaders.
const (
	regionHistory = "historyContent"
	regionJobs    = "jobsList"
	regionOptions = "jobSelect"
	regionSummary = "jobSummary"
	regionResults = "results"

	textHistoryTotal = "historyTotal"
	textJobCount     = "jobCount"
	textAnalyzeError = "analyzeError"
	textImproved     = "grammarText"
	textSelectedJob  = "selectedJob"

	visibleClearBtn = "historyClearBtn"
	visibleJobForm  = "jobForm"
	visibleSidebar  = "historySidebar"
	visibleResults  = "resultsSection"
)

func loadFailed(st *page.State, what string, err error) {
	telemetry.Error("load.failed", map[string]any{"page": st.Page, "sid": st.ID, "load": what, "error": err})
}

// checkAuth sends visitors without a session back to the landing page.
func checkAuth(ctx context.Context, st *page.State) bool {
	if _, err := st.API.Get(ctx, pathAuth); err != nil {
		telemetry.Info("auth.redirect", map[string]any{"page": st.Page, "sid": st.ID, "error": err})
		st.Redirect("/")
		return false
	}
	return true
}

// loadHistory re-renders the history sidebar.
func loadHistory(ctx context.Context, st *page.State) {
	res, err := st.API.Get(ctx, pathHistory)
	if err != nil {
		loadFailed(st, "history", err)
		return
	}
	var items []models.ResumeAnalysis
	if err := res.Decode("", &items); err != nil {
		loadFailed(st, "history", err)
		return
	}
	st.SetText(textHistoryTotal, strconv.Itoa(len(items)))
	st.SetRegion(regionHistory, view.HistoryList(items))
	st.SetVisible(visibleClearBtn, len(items) > 0)
}

// loadJobs re-renders the tracker for the current filter. The analyzer job
// picker is only rebuilt from the unfiltered list.
func loadJobs(ctx context.Context, st *page.State) {
	var (
		res *apiclient.Response
		err error
	)
	if st.Filter == "" || st.Filter == view.FilterAll {
		res, err = st.API.Get(ctx, pathJobs)
	} else {
		res, err = st.API.Get(ctx, pathJobsFilter, apiclient.WithQuery(url.Values{"status": {st.Filter}}))
	}
	if err != nil {
		loadFailed(st, "jobs", err)
		return
	}
	var jobs []models.Job
	if err := res.Decode("", &jobs); err != nil {
		loadFailed(st, "jobs", err)
		return
	}
	if st.Filter == "" || st.Filter == view.FilterAll {
		st.SetRegion(regionOptions, view.JobOptions(jobs, st.Text(textSelectedJob)))
		st.SetRegion(regionSummary, view.JobSummary(jobs))
	}
	st.SetRegion(regionJobs, view.JobCards(jobs))
	st.SetText(textJobCount, strconv.Itoa(len(jobs)))
}

// loadResume fetches one analysis.
func loadResume(ctx context.Context, st *page.State, id string) (models.ResumeAnalysis, error) {
	var r models.ResumeAnalysis
	res, err := st.API.Get(ctx, pathResume, apiclient.WithPathParam("id", id))
	if err != nil {
		return r, err
	}
	err = res.Decode("resume", &r)
	return r, err
}

// loadJob fetches one tracked job.
func loadJob(ctx context.Context, st *page.State, id string) (models.Job, error) {
	var j models.Job
	res, err := st.API.Get(ctx, pathJob, apiclient.WithPathParam("id", id))
	if err != nil {
		return j, err
	}
	err = res.Decode("job", &j)
	return j, err
}

// showResult puts an analysis in the results section.
func showResult(st *page.State, r models.ResumeAnalysis) {
	st.SetRegion(regionResults, view.AnalysisResult(r))
	st.SetText(textImproved, r.AIImprovedText)
	st.SetVisible(visibleResults, true)
}
