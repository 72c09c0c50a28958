package view

import (
	"html/template"

	"resume-web/internal/validate"
)

// Confirm is the body of a confirmation dialog.
type Confirm struct {
	Question string
	Detail   string
	Note     string
	// Warning switches the icon and colours from delete red to logout yellow.
	Warning bool
}

// ConfirmBody renders a confirmation question.
func ConfirmBody(c Confirm) template.HTML {
	return execute("confirm-body", c)
}

// ConfirmAction is the button that confirms a dialog. Fields are posted
// along with Event.
type ConfirmAction struct {
	Event     string
	Fields    map[string]string
	Label     string
	BusyLabel string
	Warning   bool
}

// ConfirmActions renders Cancel plus the confirm button.
func ConfirmActions(a ConfirmAction) template.HTML {
	return execute("confirm-actions", a)
}

// SubmitActions renders Cancel plus a button submitting the form with id form.
func SubmitActions(form, label, busyLabel string) template.HTML {
	return execute("submit-actions", map[string]string{"Form": form, "Label": label, "BusyLabel": busyLabel})
}

// CloseActions renders a single Close button.
func CloseActions() template.HTML {
	return execute("close-actions", nil)
}

// Auth forms.
const (
	LoginForm  = "login"
	SignupForm = "signup"
)

// AuthTitle is the auth dialog heading for form.
func AuthTitle(form string) string {
	if form == SignupForm {
		return "Create Account"
	}
	return "Welcome Back"
}

// AuthInput is what the auth dialog shows again after a rejected submit.
// Passwords are never echoed.
type AuthInput struct {
	Name         string
	Email        string
	Error        string
	EmailError   string
	ConfirmError string
	Strength     validate.Strength
}

type strengthView struct {
	Level string
	Width string
	Label string
}

var strengthWidths = map[validate.Strength]string{
	validate.StrengthWeak:   "25%",
	validate.StrengthFair:   "50%",
	validate.StrengthGood:   "75%",
	validate.StrengthStrong: "100%",
}

// AuthForm renders the login or signup form body.
func AuthForm(form string, in AuthInput) template.HTML {
	if form != SignupForm {
		return execute("login-form", in)
	}
	data := struct {
		AuthInput
		Strength *strengthView
	}{AuthInput: in}
	if in.Strength != validate.StrengthNone {
		data.Strength = &strengthView{Level: string(in.Strength), Width: strengthWidths[in.Strength], Label: in.Strength.Label()}
	}
	return execute("signup-form", data)
}
