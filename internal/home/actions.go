package home

import (
	"context"
	"net/http"
	"strings"

	"resume-web/internal/apiclient"
	"resume-web/internal/extract"
	"resume-web/internal/modal"
	"resume-web/internal/models"
	"resume-web/internal/page"
	"resume-web/internal/shared/telemetry"
	"resume-web/internal/validate"
	"resume-web/internal/view"
)

const (
	msgAnalyzeFailed = "Internal Server Error"
	msgMissingTitle  = "Missing Information!"
)

var jobFields = []string{"company", "position", "description", "status", "link", "notes"}

func (c *Controller) switchTab(_ context.Context, st *page.State, ev page.Event) error {
	if ev.Value("tab") == view.TabTracker {
		st.Tab = view.TabTracker
	} else {
		st.Tab = view.TabAnalyzer
	}
	return nil
}

func (c *Controller) toggleHistory(_ context.Context, st *page.State, _ page.Event) error {
	st.SetVisible(visibleSidebar, !st.Visible(visibleSidebar))
	return nil
}

func (c *Controller) toggleJobForm(_ context.Context, st *page.State, _ page.Event) error {
	st.SetVisible(visibleJobForm, !st.Visible(visibleJobForm))
	return nil
}

func (c *Controller) viewHistory(ctx context.Context, st *page.State, ev page.Event) error {
	r, err := loadResume(ctx, st, ev.Trimmed("id"))
	if err != nil {
		loadFailed(st, "resume", err)
		return nil
	}
	showResult(st, r)
	st.Tab = view.TabAnalyzer
	st.SetVisible(visibleSidebar, false)
	return nil
}

func confirmDelete(st *page.State, question, event, id string) {
	st.Doc.Modal.Show(modal.Build(
		"Are you sure?",
		view.ConfirmBody(view.Confirm{Question: question}),
		view.ConfirmActions(view.ConfirmAction{
			Event:     event,
			Fields:    map[string]string{"id": id},
			Label:     "Yes, delete it!",
			BusyLabel: "Deleting...",
		}),
	))
}

func (c *Controller) deleteHistory(_ context.Context, st *page.State, ev page.Event) error {
	confirmDelete(st, "This Resume will be permanently deleted", "history.delete.confirm", ev.Trimmed("id"))
	return nil
}

func (c *Controller) confirmDeleteHistory(ctx context.Context, st *page.State, ev page.Event) error {
	if _, err := st.API.Delete(ctx, pathDeleteResume, apiclient.WithPathParam("id", ev.Trimmed("id"))); err != nil {
		st.Toast(page.ToastError, "Error", apiclient.MessageOf(err, "The Resume could not be deleted"))
		return nil
	}
	st.Doc.Modal.Close()
	st.Toast(page.ToastSuccess, "Deleted!", "The Resume has been successfully deleted")
	loadHistory(ctx, st)
	return nil
}

func (c *Controller) clearHistory(_ context.Context, st *page.State, _ page.Event) error {
	st.Doc.Modal.Show(modal.Build(
		"Clear All History?",
		view.ConfirmBody(view.Confirm{Question: "All your resume analysis history will be permanently deleted"}),
		view.ConfirmActions(view.ConfirmAction{
			Event:     "history.clear.confirm",
			Label:     "Yes, clear it!",
			BusyLabel: "Clearing...",
		}),
	))
	return nil
}

func (c *Controller) confirmClearHistory(ctx context.Context, st *page.State, _ page.Event) error {
	if _, err := st.API.Delete(ctx, pathClearHistory); err != nil {
		st.Toast(page.ToastError, "Error", apiclient.MessageOf(err, "Your history could not be cleared"))
		return nil
	}
	st.Doc.Modal.Close()
	st.Toast(page.ToastSuccess, "History Cleared!", "Your resume history has been successfully deleted")
	loadHistory(ctx, st)
	return nil
}

// analyze drives the upload state machine through one submission.
func (c *Controller) analyze(ctx context.Context, st *page.State, ev page.Event) error {
	if st.Upload.Busy() {
		st.Toast(page.ToastInfo, "Please wait", "An analysis is already in progress")
		return nil
	}
	if err := st.MoveUpload(page.UploadValidating); err != nil {
		return err
	}
	jobID := ev.Trimmed("jobId")
	st.SetText(textSelectedJob, jobID)
	if err := validate.PDFUpload(ev.File, jobID); err != nil {
		return c.analyzeFailed(st, err.Error())
	}
	st.SetText(textAnalyzeError, "")

	if info, err := extract.InspectPDF(ctx, ev.File.Data); err != nil {
		telemetry.Info("resume.inspect_failed", map[string]any{"sid": st.ID, "error": err})
	} else {
		telemetry.Info("resume.inspected", map[string]any{"sid": st.ID, "pages": info.Pages, "bytes": info.Bytes})
	}

	if err := st.MoveUpload(page.UploadSubmitting); err != nil {
		return err
	}
	res, err := st.API.PostMultipart(ctx, pathAnalyze, map[string]string{"jobId": jobID}, apiclient.FilePart{
		Field:       page.FileField,
		FileName:    ev.File.FileName,
		ContentType: "application/pdf",
		Data:        ev.File.Data,
	})
	if err != nil {
		return c.analyzeFailed(st, apiclient.MessageOf(err, msgAnalyzeFailed))
	}
	if res.Get("status").Int() != http.StatusOK {
		msg := res.Get("message").String()
		if msg == "" {
			msg = msgAnalyzeFailed
		}
		return c.analyzeFailed(st, msg)
	}
	var r models.ResumeAnalysis
	if err := res.Decode("newResume", &r); err != nil {
		telemetry.Error("analyze.decode_failed", map[string]any{"sid": st.ID, "error": err})
		return c.analyzeFailed(st, msgAnalyzeFailed)
	}
	showResult(st, r)
	if err := st.MoveUpload(page.UploadDisplaying); err != nil {
		return err
	}
	loadHistory(ctx, st)
	return nil
}

// uploadTooLarge fails a submission whose body was too big to read.
func (c *Controller) uploadTooLarge(_ context.Context, st *page.State, _ page.Event) error {
	if st.Upload.Busy() {
		return nil
	}
	if err := st.MoveUpload(page.UploadValidating); err != nil {
		return err
	}
	return c.analyzeFailed(st, validate.MsgUploadTooLarge)
}

func (c *Controller) analyzeFailed(st *page.State, msg string) error {
	st.SetText(textAnalyzeError, msg)
	return st.MoveUpload(page.UploadFailed)
}

func (c *Controller) download(ctx context.Context, st *page.State, _ page.Event) error {
	text := st.Text(textImproved)
	if strings.TrimSpace(text) == "" {
		st.Toast(page.ToastError, "Nothing to download!", "")
		return nil
	}
	att, err := st.API.Download(ctx, pathDownload, map[string]string{"content": text})
	if err != nil {
		telemetry.Error("download.failed", map[string]any{"sid": st.ID, "error": err})
		st.Toast(page.ToastError, "Download failed", "")
		return nil
	}
	st.Attachment = att
	return nil
}

// jobInput reads the tracker form. The description is kept as typed and its
// length counts surrounding whitespace.
func jobInput(ev page.Event) validate.JobInput {
	return validate.JobInput{
		Company:     ev.Trimmed("company"),
		Position:    ev.Trimmed("position"),
		Description: ev.Value("description"),
		Status:      ev.Trimmed("status"),
		Link:        ev.Trimmed("link"),
		Notes:       ev.Trimmed("notes"),
	}
}

func formValues(ev page.Event, keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = ev.Value(k)
	}
	return out
}

func (c *Controller) addJob(ctx context.Context, st *page.State, ev page.Event) error {
	st.SetValues(formValues(ev, jobFields))
	st.ClearError("description")
	in := jobInput(ev)
	if in.Status == "" {
		in.Status = string(models.JobApplied)
	}
	if err := validate.NewJob(in); err != nil {
		if ve, ok := validate.AsError(err); ok && ve.Field != "" {
			st.SetError(ve.Field, ve.Message)
			return nil
		}
		st.Toast(page.ToastError, msgMissingTitle, err.Error())
		return nil
	}
	body := map[string]any{
		"company":     in.Company,
		"position":    in.Position,
		"description": in.Description,
		"status":      in.Status,
		"link":        in.Link,
		"notes":       in.Notes,
		"appliedDate": c.now().UnixMilli(),
	}
	if _, err := st.API.Post(ctx, pathJobs, body); err != nil {
		st.Toast(page.ToastError, "Error", apiclient.MessageOf(err, "The Job could not be published"))
		return nil
	}
	st.Toast(page.ToastSuccess, "Job Published!", "Your Job has been published successfully")
	st.Filter = view.FilterAll
	loadJobs(ctx, st)
	st.ClearValues(jobFields...)
	st.SetVisible(visibleJobForm, false)
	return nil
}

func (c *Controller) filterJobs(ctx context.Context, st *page.State, ev page.Event) error {
	status := ev.Trimmed("status")
	if status != view.FilterAll && !models.JobStatus(status).Valid() {
		status = view.FilterAll
	}
	st.Filter = status
	loadJobs(ctx, st)
	return nil
}

func showEditJob(st *page.State, j models.Job) {
	st.Doc.Modal.Show(modal.Build("Edit Job", view.HomeJobEditForm(j), view.SubmitActions("editJobForm", "Save Changes", "Saving...")))
}

func (c *Controller) editJob(ctx context.Context, st *page.State, ev page.Event) error {
	j, err := loadJob(ctx, st, ev.Trimmed("id"))
	if err != nil {
		loadFailed(st, "job", err)
		return nil
	}
	showEditJob(st, j)
	return nil
}

func (c *Controller) updateJob(ctx context.Context, st *page.State, ev page.Event) error {
	id := ev.Trimmed("id")
	in := jobInput(ev)
	if err := validate.EditJob(in); err != nil {
		showEditJob(st, models.Job{
			ID:          id,
			Company:     in.Company,
			Position:    in.Position,
			Description: in.Description,
			Status:      models.JobStatus(in.Status),
			Link:        in.Link,
			Notes:       in.Notes,
		})
		st.Toast(page.ToastError, msgMissingTitle, err.Error())
		return nil
	}
	body := map[string]string{
		"company":     in.Company,
		"position":    in.Position,
		"description": in.Description,
		"status":      in.Status,
		"link":        in.Link,
		"notes":       in.Notes,
	}
	if _, err := st.API.Put(ctx, pathJob, body, apiclient.WithPathParam("id", id)); err != nil {
		st.Toast(page.ToastError, "Error", apiclient.MessageOf(err, "Your changes could not be saved"))
		return nil
	}
	st.Doc.Modal.Close()
	st.Toast(page.ToastSuccess, "Updated Successfully", "Your changes have been saved")
	loadJobs(ctx, st)
	return nil
}

func (c *Controller) deleteJob(_ context.Context, st *page.State, ev page.Event) error {
	confirmDelete(st, "This Job will be permanently deleted", "jobs.delete.confirm", ev.Trimmed("id"))
	return nil
}

func (c *Controller) confirmDeleteJob(ctx context.Context, st *page.State, ev page.Event) error {
	if _, err := st.API.Delete(ctx, pathJob, apiclient.WithPathParam("id", ev.Trimmed("id"))); err != nil {
		st.Toast(page.ToastError, "Error", apiclient.MessageOf(err, "The Job could not be deleted"))
		return nil
	}
	st.Doc.Modal.Close()
	st.Toast(page.ToastSuccess, "Deleted!", "The Job has been successfully deleted")
	loadJobs(ctx, st)
	return nil
}

func (c *Controller) logout(_ context.Context, st *page.State, _ page.Event) error {
	st.Doc.Modal.Show(modal.Build(
		"Confirm Logout",
		view.ConfirmBody(view.Confirm{
			Question: "Are you sure you want to log out?",
			Detail:   "You’ll need to login again to continue.",
			Warning:  true,
		}),
		view.ConfirmActions(view.ConfirmAction{Event: "logout.confirm", Label: "Logout", BusyLabel: "Logging out...", Warning: true}),
	))
	return nil
}

func (c *Controller) confirmLogout(ctx context.Context, st *page.State, _ page.Event) error {
	if _, err := st.API.Post(ctx, pathLogout, nil); err != nil {
		st.Toast(page.ToastError, "Error", apiclient.MessageOf(err, "Logout failed"))
		return nil
	}
	st.Redirect("/")
	return nil
}
