package dashboard

import (
	"context"
	"time"

	"resume-web/internal/apiclient"
	"resume-web/internal/modal"
	"resume-web/internal/models"
	"resume-web/internal/page"
	"resume-web/internal/shared/telemetry"
	"resume-web/internal/validate"
	"resume-web/internal/view"
)

const msgIrreversible = "This action cannot be undone."

func (c *Controller) navigate(_ context.Context, st *page.State, ev page.Event) error {
	if section := ev.Trimmed("section"); view.SectionTitle(section) != "" {
		st.Section = section
	}
	st.SetVisible(visibleSidebar, false)
	return nil
}

func (c *Controller) openSidebar(_ context.Context, st *page.State, _ page.Event) error {
	st.SetVisible(visibleSidebar, true)
	return nil
}

func (c *Controller) closeSidebar(_ context.Context, st *page.State, _ page.Event) error {
	st.SetVisible(visibleSidebar, false)
	return nil
}

func (c *Controller) toggleProfile(_ context.Context, st *page.State, _ page.Event) error {
	st.SetVisible(visibleDropdown, !st.Visible(visibleDropdown))
	return nil
}

// reload refreshes a list and the aggregates after a write. Stats only move
// when records are created or deleted.
func (c *Controller) reload(ctx context.Context, st *page.State, list func(context.Context, *page.State), stats bool) {
	list(ctx, st)
	if stats {
		loadStats(ctx, st)
	}
	c.loadActivity(ctx, st)
}

func confirmDelete(st *page.State, question, detail, event string, fields map[string]string) {
	st.Doc.Modal.Show(modal.Build(
		"Confirm Delete",
		view.ConfirmBody(view.Confirm{Question: question, Detail: detail, Note: msgIrreversible}),
		view.ConfirmActions(view.ConfirmAction{
			Event:     event,
			Fields:    fields,
			Label:     "Delete",
			BusyLabel: "Deleting...",
		}),
	))
}

// writeFailed logs a rejected write and shows the server's message, or
// fallback when the backend sent none. Open dialogs stay open.
func writeFailed(st *page.State, what string, err error, fallback string) {
	telemetry.Error("write.failed", map[string]any{"page": st.Page, "sid": st.ID, "write": what, "error": err})
	st.Toast(page.ToastError, "Error", apiclient.MessageOf(err, fallback))
}

// Resumes.

func (c *Controller) filterResumes(ctx context.Context, st *page.State, ev page.Event) error {
	f := ResumeFilter{
		Search: ev.Trimmed("search"),
		ATS:    ev.Trimmed("ats"),
		AI:     ev.Trimmed("ai"),
		Date:   ev.Trimmed("date"),
	}
	st.SetValues(map[string]string{
		"resumeSearch": f.Search,
		"atsFilter":    f.ATS,
		"aiFilter":     f.AI,
		"dateFilter":   f.Date,
	})
	filterResumes(ctx, st, f)
	return nil
}

func (c *Controller) viewResume(ctx context.Context, st *page.State, ev page.Event) error {
	var r models.ResumeAnalysis
	if err := loadOne(ctx, st, pathResume, "resume", ev.Trimmed("id"), &r); err != nil {
		loadFailed(st, "resume", err)
		return nil
	}
	st.Doc.Modal.Show(modal.Build("Resume Analysis Details", view.ResumeDetails(r), view.CloseActions()))
	return nil
}

func (c *Controller) deleteResume(_ context.Context, st *page.State, ev page.Event) error {
	confirmDelete(st,
		"Are you sure you want to delete this resume?",
		"Resume of "+ev.Trimmed("userName"),
		"resumes.delete.confirm",
		map[string]string{"id": ev.Trimmed("id")},
	)
	return nil
}

func (c *Controller) confirmDeleteResume(ctx context.Context, st *page.State, ev page.Event) error {
	if _, err := st.API.Delete(ctx, pathResume, apiclient.WithPathParam("id", ev.Trimmed("id"))); err != nil {
		writeFailed(st, "resume.delete", err, "The resume could not be deleted")
		return nil
	}
	st.Doc.Modal.Close()
	c.reload(ctx, st, loadResumes, true)
	return nil
}

// Jobs.

func (c *Controller) filterJobs(ctx context.Context, st *page.State, ev page.Event) error {
	f := JobFilter{
		Search:  ev.Trimmed("search"),
		Status:  ev.Trimmed("status"),
		Company: ev.Trimmed("company"),
	}
	st.SetValues(map[string]string{
		"jobSearch":        f.Search,
		"jobStatusFilter":  f.Status,
		"jobCompanyFilter": f.Company,
	})
	filterJobs(ctx, st, f)
	return nil
}

func (c *Controller) viewJob(ctx context.Context, st *page.State, ev page.Event) error {
	var j models.Job
	if err := loadOne(ctx, st, pathJob, "job", ev.Trimmed("id"), &j); err != nil {
		loadFailed(st, "job", err)
		return nil
	}
	st.Doc.Modal.Show(modal.Build("Job Details", view.JobDetails(j), view.CloseActions()))
	return nil
}

func showJobForm(st *page.State, j *models.Job, msg string) {
	title, label, busy := "Create New Job", "Create", "Creating..."
	if j != nil && j.ID != "" {
		title, label, busy = "Edit Job", "Update", "Updating..."
	}
	st.Doc.Modal.Show(modal.Build(title, view.JobForm(j, msg), view.SubmitActions("jobForm", label, busy)))
}

func (c *Controller) newJob(_ context.Context, st *page.State, _ page.Event) error {
	showJobForm(st, nil, "")
	return nil
}

func (c *Controller) editJob(ctx context.Context, st *page.State, ev page.Event) error {
	var j models.Job
	if err := loadOne(ctx, st, pathJob, "job", ev.Trimmed("id"), &j); err != nil {
		loadFailed(st, "job", err)
		return nil
	}
	showJobForm(st, &j, "")
	return nil
}

func (c *Controller) saveJob(ctx context.Context, st *page.State, ev page.Event) error {
	id := ev.Trimmed("id")
	in := validate.AdminJobInput{
		Company:     ev.Trimmed("company"),
		Position:    ev.Trimmed("position"),
		Description: ev.Trimmed("description"),
		Status:      ev.Trimmed("status"),
		AppliedDate: ev.Trimmed("appliedDate"),
		Link:        ev.Trimmed("link"),
		Notes:       ev.Trimmed("notes"),
	}
	if err := validate.AdminJob(in); err != nil {
		typed := &models.Job{
			ID:          id,
			Company:     in.Company,
			Position:    in.Position,
			Description: in.Description,
			Status:      models.JobStatus(in.Status),
			Link:        in.Link,
			Notes:       in.Notes,
		}
		if d, perr := time.Parse("2006-01-02", in.AppliedDate); perr == nil {
			typed.AppliedDate = models.Timestamp{Time: d}
		}
		showJobForm(st, typed, err.Error())
		return nil
	}
	body := map[string]string{
		"company":     in.Company,
		"position":    in.Position,
		"description": in.Description,
		"status":      in.Status,
		"link":        in.Link,
		"notes":       in.Notes,
		"appliedDate": in.AppliedDate,
	}
	var err error
	if id != "" {
		_, err = st.API.Put(ctx, pathJob, body, apiclient.WithPathParam("id", id))
	} else {
		_, err = st.API.Post(ctx, pathJobs, body)
	}
	if err != nil {
		writeFailed(st, "job.save", err, "The job could not be saved")
		return nil
	}
	st.Doc.Modal.Close()
	c.reload(ctx, st, loadJobs, id == "")
	return nil
}

func (c *Controller) deleteJob(_ context.Context, st *page.State, ev page.Event) error {
	confirmDelete(st,
		"Are you sure you want to delete this job?",
		ev.Trimmed("company")+" - "+ev.Trimmed("position"),
		"jobs.delete.confirm",
		map[string]string{"id": ev.Trimmed("id")},
	)
	return nil
}

func (c *Controller) confirmDeleteJob(ctx context.Context, st *page.State, ev page.Event) error {
	if _, err := st.API.Delete(ctx, pathJob, apiclient.WithPathParam("id", ev.Trimmed("id"))); err != nil {
		writeFailed(st, "job.delete", err, "The job could not be deleted")
		return nil
	}
	st.Doc.Modal.Close()
	c.reload(ctx, st, loadJobs, true)
	return nil
}

// Users.

func showUserForm(st *page.State, u *models.User, msg string) {
	title, label, busy := "Create New User", "Create", "Creating..."
	if u != nil && u.ID != "" {
		title, label, busy = "Edit User", "Update", "Updating..."
	}
	st.Doc.Modal.Show(modal.Build(title, view.UserForm(u, msg), view.SubmitActions("userForm", label, busy)))
}

func (c *Controller) newUser(_ context.Context, st *page.State, _ page.Event) error {
	showUserForm(st, nil, "")
	return nil
}

func (c *Controller) editUser(ctx context.Context, st *page.State, ev page.Event) error {
	var u models.User
	if err := loadOne(ctx, st, pathUser, "user", ev.Trimmed("id"), &u); err != nil {
		loadFailed(st, "user", err)
		return nil
	}
	showUserForm(st, &u, "")
	return nil
}

func (c *Controller) saveUser(ctx context.Context, st *page.State, ev page.Event) error {
	id := ev.Trimmed("id")
	create := id == ""
	in := validate.UserInput{
		Name:     ev.Trimmed("name"),
		Email:    ev.Trimmed("email"),
		Password: ev.Value("password"),
		Role:     ev.Trimmed("role"),
	}
	typed := &models.User{ID: id, Name: in.Name, Email: in.Email, Role: models.Role(in.Role)}
	if err := validate.AdminUser(in, create); err != nil {
		showUserForm(st, typed, err.Error())
		return nil
	}
	if !create {
		body := map[string]string{"name": in.Name, "email": in.Email, "role": in.Role}
		if _, err := st.API.Put(ctx, pathUser, body, apiclient.WithPathParam("id", id)); err != nil {
			writeFailed(st, "user.update", err, "The user could not be updated")
			return nil
		}
		st.Doc.Modal.Close()
		c.reload(ctx, st, loadUsers, false)
		return nil
	}
	body := map[string]string{"name": in.Name, "email": in.Email, "password": in.Password, "role": in.Role}
	if _, err := st.API.Post(ctx, pathUsers, body); err != nil {
		writeFailed(st, "user.create", err, "The user could not be created")
		return nil
	}
	st.Doc.Modal.Close()
	c.reload(ctx, st, loadUsers, true)
	return nil
}

// deleteUser confirms from the row's own data, so nothing is fetched until
// the admin accepts.
func (c *Controller) deleteUser(_ context.Context, st *page.State, ev page.Event) error {
	confirmDelete(st,
		"Are you sure you want to delete this user?",
		ev.Trimmed("name")+" ("+ev.Trimmed("email")+")",
		"users.delete.confirm",
		map[string]string{"id": ev.Trimmed("id")},
	)
	return nil
}

func (c *Controller) confirmDeleteUser(ctx context.Context, st *page.State, ev page.Event) error {
	if _, err := st.API.Delete(ctx, pathUser, apiclient.WithPathParam("id", ev.Trimmed("id"))); err != nil {
		writeFailed(st, "user.delete", err, "The user could not be deleted")
		return nil
	}
	st.Doc.Modal.Close()
	c.reload(ctx, st, loadUsers, true)
	return nil
}

// Session.

func (c *Controller) logout(_ context.Context, st *page.State, _ page.Event) error {
	st.Doc.Modal.Show(modal.Build(
		"Confirm Logout",
		view.ConfirmBody(view.Confirm{
			Question: "Are you sure you want to logout?",
			Detail:   "You will need to login again to access the admin panel.",
			Warning:  true,
		}),
		view.ConfirmActions(view.ConfirmAction{Event: "logout.confirm", Label: "Logout", BusyLabel: "Logging out...", Warning: true}),
	))
	return nil
}

func (c *Controller) confirmLogout(ctx context.Context, st *page.State, _ page.Event) error {
	if _, err := st.API.Post(ctx, pathLogout, nil); err != nil {
		writeFailed(st, "logout", err, "Logout failed")
		return nil
	}
	st.Redirect("/")
	return nil
}
