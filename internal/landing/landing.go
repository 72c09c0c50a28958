// Package landing is the public entry page with the login and signup dialog.
package landing

import (
	"context"
	"io"
	"net/http"

	"resume-web/internal/apiclient"
	"resume-web/internal/modal"
	"resume-web/internal/models"
	"resume-web/internal/page"
	"resume-web/internal/shared/telemetry"
	"resume-web/internal/validate"
	"resume-web/internal/view"
)

const Name = "landing"

const (
	pathAuth   = "/api/resume/auth"
	pathLogin  = "/api/login"
	pathSignup = "/api/signup"

	visibleMenu = "mobileMenu"
)

type Controller struct{}

func New() *Controller { return &Controller{} }

func (c *Controller) Name() string { return Name }

// Init forwards visitors who already have a session to their page.
func (c *Controller) Init(ctx context.Context, st *page.State) error {
	res, err := st.API.Get(ctx, pathAuth)
	if err != nil {
		return nil
	}
	role := res.Get("user.role").String()
	if role == "" {
		return nil
	}
	st.Redirect(destination(role))
	return nil
}

func destination(role string) string {
	if models.Role(role) == models.RoleAdmin {
		return "/dashboard"
	}
	return "/home"
}

func (c *Controller) Events() page.Dispatch {
	return page.Dispatch{
		"menu.toggle": c.toggleMenu,
		"auth.open":   c.openAuth,
		"auth.switch": c.openAuth,
		"login":       c.login,
		"signup":      c.signup,
	}
}

func (c *Controller) Render(w io.Writer, st *page.State, theme string) error {
	return view.LandingPage(w, st, theme)
}

func (c *Controller) toggleMenu(_ context.Context, st *page.State, _ page.Event) error {
	st.SetVisible(visibleMenu, !st.Visible(visibleMenu))
	return nil
}

func showAuth(st *page.State, form string, in view.AuthInput) {
	if form != view.SignupForm {
		form = view.LoginForm
	}
	st.Doc.Modal.Show(modal.Build(view.AuthTitle(form), view.AuthForm(form, in), ""))
}

// openAuth mounts the dialog, or swaps the form inside it.
func (c *Controller) openAuth(_ context.Context, st *page.State, ev page.Event) error {
	showAuth(st, ev.Trimmed("form"), view.AuthInput{})
	st.SetVisible(visibleMenu, false)
	return nil
}

func (c *Controller) login(ctx context.Context, st *page.State, ev page.Event) error {
	email := ev.Trimmed("loginEmail")
	password := ev.Value("loginPassword")
	if err := validate.Login(email, password); err != nil {
		showAuth(st, view.LoginForm, view.AuthInput{Email: email, Error: err.Error()})
		return nil
	}
	res, err := st.API.Post(ctx, pathLogin, map[string]string{"loginEmail": email, "loginPassword": password})
	if err == nil && res.Get("status").Int() == http.StatusOK {
		st.Redirect(destination(res.Get("user.role").String()))
		return nil
	}
	if err != nil {
		telemetry.Info("login.rejected", map[string]any{"sid": st.ID, "error": err})
	}
	showAuth(st, view.LoginForm, view.AuthInput{Email: email})
	st.Toast(page.ToastError, "Invalid credentials", "The email or password you entered is incorrect")
	return nil
}

func (c *Controller) signup(ctx context.Context, st *page.State, ev page.Event) error {
	in := validate.SignupInput{
		Name:            ev.Trimmed("name"),
		Email:           ev.Trimmed("email"),
		Password:        ev.Value("password"),
		ConfirmPassword: ev.Value("confirmPassword"),
	}
	shown := view.AuthInput{Name: in.Name, Email: in.Email, Strength: validate.PasswordStrength(in.Password)}
	if err := validate.Signup(in); err != nil {
		ve, _ := validate.AsError(err)
		switch {
		case ve != nil && ve.Field == "confirmPassword":
			shown.ConfirmError = ve.Message
		case ve != nil && ve.Field == "signupEmail":
			shown.EmailError = ve.Message
		default:
			shown.Error = err.Error()
		}
		showAuth(st, view.SignupForm, shown)
		return nil
	}
	res, err := st.API.Post(ctx, pathSignup, map[string]string{"name": in.Name, "email": in.Email, "password": in.Password})
	if err == nil && !res.OK() {
		err = &apiclient.Error{Method: http.MethodPost, Path: pathSignup, Status: int(res.Get("status").Int()), Message: res.Get("message").String()}
	}
	if err != nil {
		telemetry.Info("signup.rejected", map[string]any{"sid": st.ID, "error": err})
		showAuth(st, view.SignupForm, shown)
		st.Toast(page.ToastError, "Oops!", apiclient.MessageOf(err, "Signup failed"))
		return nil
	}
	showAuth(st, view.LoginForm, view.AuthInput{Email: in.Email})
	st.Toast(page.ToastSuccess, "Signup Successful!", "Your account has been created successfully")
	return nil
}
